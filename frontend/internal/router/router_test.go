package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/itchan-dev/postadmin/frontend/internal/handler"
	"github.com/itchan-dev/postadmin/frontend/internal/manage"
	"github.com/itchan-dev/postadmin/frontend/internal/markdown"
	"github.com/itchan-dev/postadmin/frontend/internal/setup"
	"github.com/itchan-dev/postadmin/frontend/internal/store"
	"github.com/itchan-dev/postadmin/frontend/templates"
	"github.com/itchan-dev/postadmin/shared/config"
	"github.com/itchan-dev/postadmin/shared/domain"
	"github.com/itchan-dev/postadmin/shared/middleware/ratelimiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticStore struct {
	posts domain.Posts
}

func (s *staticStore) GetAllPosts(ctx context.Context) error { return nil }
func (s *staticStore) EditPost(ctx context.Context, id domain.PostId, description string) error {
	return nil
}
func (s *staticStore) DeletePost(ctx context.Context, id domain.PostId) error {
	s.posts = s.posts.Without(id)
	return nil
}
func (s *staticStore) Snapshot() store.State { return store.State{Posts: s.posts} }

func setupTestRouter(t *testing.T, limiter *ratelimiter.KeyedRateLimiter) http.Handler {
	t.Helper()
	tmpls, err := templates.Load(templates.FS)
	require.NoError(t, err)

	pub := config.Public{InitialLoadWait: time.Second, SessionTTL: time.Hour}
	st := &staticStore{posts: domain.Posts{{Id: "p1"}, {Id: "p2"}}}
	deps := &setup.Dependencies{
		Handler:     handler.New(tmpls, pub, markdown.New(), manage.NewSessions(st, 0)),
		RateLimiter: limiter,
		Public:      pub,
	}
	return SetupRouter(deps)
}

func postForm(router http.Handler, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestSetupRouter_Health(t *testing.T) {
	router := setupTestRouter(t, ratelimiter.FivePerSecond())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "script-src 'none'")
}

func TestSetupRouter_Metrics(t *testing.T) {
	router := setupTestRouter(t, ratelimiter.FivePerSecond())
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "postadmin_http_requests_total")
}

func TestSetupRouter_PostsSetsCookies(t *testing.T) {
	router := setupTestRouter(t, ratelimiter.FivePerSecond())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/posts", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	names := map[string]bool{}
	for _, c := range rr.Result().Cookies() {
		names[c.Name] = true
	}
	assert.True(t, names["postadmin_session"])
	assert.True(t, names["csrf_token"])
}

func TestSetupRouter_Index(t *testing.T) {
	router := setupTestRouter(t, ratelimiter.FivePerSecond())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/posts", rr.Header().Get("Location"))
}

func TestSetupRouter_CSRF(t *testing.T) {
	router := setupTestRouter(t, ratelimiter.FivePerSecond())
	csrfCookie := &http.Cookie{Name: "csrf_token", Value: "tok"}

	rr := postForm(router, "/posts/p1/delete", url.Values{})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = postForm(router, "/posts/p1/delete", url.Values{"csrf_token": {"wrong"}}, csrfCookie)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = postForm(router, "/posts/p1/delete", url.Values{"csrf_token": {"tok"}}, csrfCookie)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestSetupRouter_RateLimit(t *testing.T) {
	router := setupTestRouter(t, ratelimiter.New(0, 1, time.Hour))
	csrfCookie := &http.Cookie{Name: "csrf_token", Value: "tok"}
	form := url.Values{"csrf_token": {"tok"}}

	assert.Equal(t, http.StatusSeeOther, postForm(router, "/posts/p1/delete", form, csrfCookie).Code)
	assert.Equal(t, http.StatusTooManyRequests, postForm(router, "/posts/p2/delete", form, csrfCookie).Code)

	// reads are never limited
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/posts", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSetupRouter_NotFound(t *testing.T) {
	router := setupTestRouter(t, ratelimiter.FivePerSecond())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
