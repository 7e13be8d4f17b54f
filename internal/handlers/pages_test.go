package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/joblane/joblane-api/internal/constants"
	"github.com/joblane/joblane-api/internal/middleware"
	"github.com/joblane/joblane-api/internal/repository"
	"github.com/joblane/joblane-api/internal/services"
	"github.com/joblane/joblane-api/internal/validation"
)

func setupPageRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db := openTestDB(t)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	authService := services.NewAuthService(userRepo, sessionRepo)

	pageHandler := NewPageHandler(authService, zap.NewNop())

	r := gin.New()
	r.LoadHTMLGlob("../../templates/*.html")
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.LoadSession(authService, zap.NewNop()))

	r.GET("/login", middleware.RedirectIfAuthenticated(), pageHandler.LoginPage)
	r.POST("/login", middleware.RedirectIfAuthenticated(), pageHandler.LoginSubmit)
	r.GET("/sign-up", middleware.RedirectIfAuthenticated(), pageHandler.SignupPage)
	r.POST("/sign-up", middleware.RedirectIfAuthenticated(), pageHandler.SignupSubmit)
	r.GET("/protected", middleware.RequireAuthPage(), pageHandler.ProtectedPage)

	return r
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPages_ProtectedRedirectsAnonymous(t *testing.T) {
	r := setupPageRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestPages_SignupFlow(t *testing.T) {
	r := setupPageRouter(t)

	w := postForm(t, r, "/sign-up", url.Values{
		"firstName":       {"Alice"},
		"lastName":        {"Smith"},
		"email":           {"alice@example.com"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
	}, nil)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/protected", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The cookie now opens the protected page.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice Smith")

	// And signed-in users are bounced off the login page.
	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/protected", rec.Header().Get("Location"))
}

func TestPages_SignupSurfacesFirstFieldError(t *testing.T) {
	r := setupPageRouter(t)

	w := postForm(t, r, "/sign-up", url.Values{
		"firstName":       {"Alice"},
		"lastName":        {"Smith"},
		"email":           {"alice@example.com"},
		"password":        {"secret1"},
		"confirmPassword": {"other1"},
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), validation.MsgPasswordMismatch)
}

func TestPages_LoginWrongPassword(t *testing.T) {
	r := setupPageRouter(t)

	signup := postForm(t, r, "/sign-up", url.Values{
		"firstName":       {"Alice"},
		"lastName":        {"Smith"},
		"email":           {"alice@example.com"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
	}, nil)
	require.Equal(t, http.StatusFound, signup.Code)

	w := postForm(t, r, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrongpass"},
	}, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password.")
}

func TestPages_LoginSuccess(t *testing.T) {
	r := setupPageRouter(t)

	signup := postForm(t, r, "/sign-up", url.Values{
		"firstName":       {"Alice"},
		"lastName":        {"Smith"},
		"email":           {"alice@example.com"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
	}, nil)
	require.Equal(t, http.StatusFound, signup.Code)

	w := postForm(t, r, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"secret1"},
	}, nil)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/protected", w.Header().Get("Location"))
}
