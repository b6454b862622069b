package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-blog-backend/config"
	"github.com/oksasatya/go-blog-backend/internal/container"
	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
	"github.com/oksasatya/go-blog-backend/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type server struct {
	t      *testing.T
	c      *container.Container
	calls  *repoCalls
	engine *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret", JWTTTL: time.Hour, BcryptCost: bcrypt.MinCost}
	c := container.NewInMemory(cfg, nil)
	calls := &repoCalls{}
	c.Users = countingUsers{next: c.Users, calls: calls}
	c.Posts = countingPosts{next: c.Posts, calls: calls}
	c.Categories = countingCategories{next: c.Categories, calls: calls}
	return &server{t: t, c: c, calls: calls, engine: NewEngine(c)}
}

func (s *server) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.serve(req)
}

func (s *server) serve(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

// account registers email and logs in, returning the user id and token.
func (s *server) account(email string) (int64, string) {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/users", "", map[string]any{"email": email, "name": "n", "password": "secret-pass"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var u entity.User
	require.NoError(s.t, json.Unmarshal(env.Data, &u))
	return u.ID, s.login(email)
}

func (s *server) login(email string) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/login", "", map[string]any{"email": email, "password": "secret-pass"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func (s *server) promote(id int64) {
	s.t.Helper()
	ctx := context.Background()
	u, err := s.c.Users.GetByID(ctx, id)
	require.NoError(s.t, err)
	u.Role = entity.RoleAdmin
	require.NoError(s.t, s.c.Users.Update(ctx, u))
}

func (s *server) createPost(token, title string) int64 {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/posts", token, map[string]any{"title": title, "content": "body"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var p entity.Post
	require.NoError(s.t, json.Unmarshal(env.Data, &p))
	return p.ID
}

func TestLogin(t *testing.T) {
	s := newServer(t)
	id, token := s.account("a@example.com")
	assert.NotEmpty(t, token)

	identity, err := s.c.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, identity.UserID)

	w, env := s.do(http.MethodPost, "/api/login", "", map[string]any{"email": "a@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", env.Message)
	assert.NotContains(t, w.Body.String(), "token")

	w, _ = s.do(http.MethodPost, "/api/login", "", map[string]any{"email": "ghost@example.com", "password": "secret-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/api/login", "", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister(t *testing.T) {
	s := newServer(t)

	w, env := s.do(http.MethodPost, "/api/users", "", map[string]any{"email": "a@example.com", "password": "secret-pass", "role": "ADMIN"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	var u entity.User
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, entity.RoleUser, u.Role)

	w, _ = s.do(http.MethodPost, "/api/users", "", map[string]any{"email": "a@example.com", "password": "secret-pass"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = s.do(http.MethodPost, "/api/users", "", map[string]any{"email": "b@example.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(env.Error), "password")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newServer(t)
	for _, path := range []string{"/api/posts", "/api/users", "/api/posts/1"} {
		w, _ := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	w, _ := s.do(http.MethodPost, "/api/categories", "", map[string]any{"name": "go"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/api/posts", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostOwnership(t *testing.T) {
	s := newServer(t)
	_, tokenA := s.account("a@example.com")
	_, tokenB := s.account("b@example.com")
	adminID, _ := s.account("root@example.com")
	s.promote(adminID)
	tokenAdmin := s.login("root@example.com")

	postID := s.createPost(tokenA, "first")
	path := "/api/posts/" + itoa(postID)

	w, env := s.do(http.MethodPut, path, tokenB, map[string]any{"title": "hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, env.Success)

	w, env = s.do(http.MethodGet, path, tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p entity.Post
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "first", p.Title)

	w, env = s.do(http.MethodPut, path, tokenAdmin, map[string]any{"title": "moderated"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "moderated", p.Title)

	w, _ = s.do(http.MethodPut, path, tokenA, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodDelete, path, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodDelete, path, tokenA, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvalidAndMissingIDs(t *testing.T) {
	s := newServer(t)
	_, token := s.account("a@example.com")

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/posts/abc"},
		{http.MethodPut, "/api/posts/abc"},
		{http.MethodDelete, "/api/posts/0"},
		{http.MethodDelete, "/api/posts/-3"},
		{http.MethodGet, "/api/users/abc"},
		{http.MethodPut, "/api/users/0"},
		{http.MethodDelete, "/api/users/x1"},
		{http.MethodGet, "/api/categories/1.5"},
		{http.MethodPut, "/api/categories/-1"},
		{http.MethodDelete, "/api/categories/9999999999999999999"},
	} {
		s.calls.reset()
		w, env := s.do(tc.method, tc.path, token, map[string]any{"title": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.Equal(t, "id must be a positive integer", env.Message, tc.path)
		assert.Zero(t, s.calls.count(), "repository touched for %s %s", tc.method, tc.path)
	}

	w, _ := s.do(http.MethodDelete, "/api/posts/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodPut, "/api/categories/999", token, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateChecksAccessBeforeBody(t *testing.T) {
	s := newServer(t)
	idA, tokenA := s.account("a@example.com")
	_, tokenB := s.account("b@example.com")
	postPath := "/api/posts/" + itoa(s.createPost(tokenA, "first"))
	userPath := "/api/users/" + itoa(idA)

	w, env := s.do(http.MethodPost, "/api/categories", tokenA, map[string]any{"name": "golang"})
	require.Equal(t, http.StatusCreated, w.Code)
	var cat entity.Category
	require.NoError(t, json.Unmarshal(env.Data, &cat))
	catPath := "/api/categories/" + itoa(cat.ID)

	longTitle := strings.Repeat("t", 201)
	for _, tc := range []struct {
		name string
		path string
		body any
	}{
		{"post title too long", postPath, map[string]any{"title": longTitle}},
		{"post wrong type", postPath, map[string]any{"published": "yes"}},
		{"post bad category", postPath, map[string]any{"categoryId": 0}},
		{"user short password", userPath, map[string]any{"password": "short"}},
		{"user bad email", userPath, map[string]any{"email": "nope"}},
		{"user wrong type", userPath, map[string]any{"isBlocked": "no"}},
		{"category too long", catPath, map[string]any{"name": strings.Repeat("c", 101)}},
		{"category wrong type", catPath, map[string]any{"name": 5}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := s.do(http.MethodPut, tc.path, tokenB, tc.body)
			assert.Equal(t, http.StatusForbidden, w.Code, "non-owner")

			w, _ = s.do(http.MethodPut, tc.path, tokenA, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "owner")
		})
	}

	for _, path := range []string{"/api/posts/999", "/api/users/999", "/api/categories/999"} {
		w, _ := s.do(http.MethodPut, path, tokenA, map[string]any{"published": "yes", "title": longTitle, "password": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	req := httptest.NewRequest(http.MethodPut, postPath, strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokenB)
	w, _ = s.serve(req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(http.MethodGet, postPath, tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p entity.Post
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "first", p.Title)
}

func TestListPostsEmpty(t *testing.T) {
	s := newServer(t)
	_, token := s.account("a@example.com")

	w, env := s.do(http.MethodGet, "/api/posts", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no posts found", env.Message)

	s.createPost(token, "one")
	w, _ = s.do(http.MethodGet, "/api/posts", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchPosts(t *testing.T) {
	s := newServer(t)
	_, token := s.account("a@example.com")
	s.createPost(token, "Goroutines explained")
	s.createPost(token, "Borrow checker")

	w, env := s.do(http.MethodGet, "/api/posts/search?q=gorout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []entity.Post
	require.NoError(t, json.Unmarshal(env.Data, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Goroutines explained", posts[0].Title)

	w, _ = s.do(http.MethodGet, "/api/posts/search", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserManagement(t *testing.T) {
	s := newServer(t)
	idA, tokenA := s.account("a@example.com")
	_, tokenB := s.account("b@example.com")
	adminID, _ := s.account("root@example.com")
	s.promote(adminID)
	tokenAdmin := s.login("root@example.com")
	pathA := "/api/users/" + itoa(idA)

	w, _ := s.do(http.MethodPut, pathA, tokenB, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPut, pathA, tokenA, map[string]any{"isBlocked": false})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPut, pathA, tokenA, map[string]any{"name": "Alice"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPut, pathA, tokenAdmin, map[string]any{"isBlocked": true})
	require.Equal(t, http.StatusOK, w.Code)

	// Tokens issued after the block carry it and are refused.
	blocked := s.login("a@example.com")
	w, env := s.do(http.MethodGet, "/api/posts", blocked, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "account is blocked", env.Message)

	w, _ = s.do(http.MethodGet, "/api/users", tokenB, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodDelete, pathA, tokenAdmin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, pathA, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategories(t *testing.T) {
	s := newServer(t)
	_, tokenA := s.account("a@example.com")
	_, tokenB := s.account("b@example.com")

	w, env := s.do(http.MethodPost, "/api/categories", tokenA, map[string]any{"name": "golang"})
	require.Equal(t, http.StatusCreated, w.Code)
	var cat entity.Category
	require.NoError(t, json.Unmarshal(env.Data, &cat))
	path := "/api/categories/" + itoa(cat.ID)

	w, _ = s.do(http.MethodPost, "/api/categories", tokenB, map[string]any{"name": "golang"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPut, path, tokenB, map[string]any{"name": "mine"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPost, "/api/posts", tokenB, map[string]any{"title": "t", "content": "c", "categoryId": 77})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, "/api/posts", tokenB, map[string]any{"title": "t", "content": "c", "categoryId": cat.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = s.do(http.MethodDelete, path, tokenA, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var cats []entity.Category
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &cats))
	}
	assert.Empty(t, cats)
}

func TestUploadAvatarWithoutStorage(t *testing.T) {
	s := newServer(t)
	id, token := s.account("a@example.com")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="avatar"; filename="me.png"`)
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/users/"+itoa(id)+"/avatar", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w, env := s.serve(req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "avatar storage is not configured", env.Message)

	req = httptest.NewRequest(http.MethodPut, "/api/users/"+itoa(id)+"/avatar", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w, _ = s.serve(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDebugVarsDisabledByDefault(t *testing.T) {
	s := newServer(t)
	w, _ := s.do(http.MethodGet, "/api/debug/vars", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	cfg := &config.Config{JWTSecret: "x", DebugMetricsEnabled: true}
	engine := NewEngine(container.NewInMemory(cfg, nil))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "memstats")
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
