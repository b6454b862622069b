package application

import (
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
)

// Field rules applied by the services once the target resource has been
// loaded and the caller authorized. Lengths count runes.
const (
	ruleEmail       = "email"
	rulePassword    = "min=8,max=72"
	ruleName        = "max=100"
	ruleTitle       = "min=1,max=200"
	ruleDescription = "max=500"
	ruleCategory    = "min=1,max=100"
)

var fieldRules = validator.New()

// checkField validates a single value against tag and reports a failure as
// InvalidInput "<field> <msg>".
func checkField(field string, value any, tag, msg string) error {
	if err := fieldRules.Var(value, tag); err != nil {
		return apperr.InvalidInput(field + " " + msg)
	}
	return nil
}
