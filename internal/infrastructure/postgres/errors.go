package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// translate maps driver errors onto the apperr taxonomy.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.Wrap(apperr.ErrNotFound, entity+" not found", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperr.Wrap(apperr.ErrConflict, conflictMessage(entity, pgErr), err)
		case codeForeignKeyViolation:
			return apperr.Wrap(apperr.ErrInvalidInput, "referenced record does not exist", err)
		}
	}
	return apperr.Internal("database error", err)
}

func conflictMessage(entity string, pgErr *pgconn.PgError) string {
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return "email already registered"
	case strings.Contains(pgErr.ConstraintName, "name"):
		return entity + " name already exists"
	default:
		return entity + " already exists"
	}
}

// likePattern escapes LIKE metacharacters in q and wraps it for a substring match.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
