package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/joblane/joblane-api/internal/config"
	"github.com/joblane/joblane-api/internal/constants"
	apierrors "github.com/joblane/joblane-api/internal/errors"
	"github.com/joblane/joblane-api/internal/middleware"
	"github.com/joblane/joblane-api/internal/models"
	"github.com/joblane/joblane-api/internal/repository"
	"github.com/joblane/joblane-api/internal/services"
	"github.com/joblane/joblane-api/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	userRepo    repository.UserRepository
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Account{},
		&models.Verification{},
		&models.Organization{},
		&models.Member{},
		&models.Invitation{},
		&models.JobList{},
		&models.JobApplication{},
		&models.UserResume{},
		&models.UserNotificationSetting{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db := openTestDB(t)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	authService := services.NewAuthService(userRepo, sessionRepo)
	oauthService := services.NewOAuthService(&config.Config{}, userRepo)
	handler := NewAuthHandler(authService, oauthService, zap.NewNop())

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		userRepo:    userRepo,
	}
}

func newAuthRouter(env authTestEnv) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.LoadSession(env.authService, zap.NewNop()))

	r.POST("/api/auth/sign-up/email", env.handler.SignupEmail)
	r.POST("/api/auth/sign-in/email", env.handler.SigninEmail)
	r.POST("/api/auth/sign-out", env.handler.SignOut)
	r.GET("/api/auth/get-session", env.handler.GetSession)
	r.GET("/api/auth/verify-email", env.handler.VerifyEmail)
	r.GET("/api/me/ping", middleware.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signupPayload() map[string]string {
	return map[string]string{
		"firstName":       "Alice",
		"lastName":        "Smith",
		"email":           "alice@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/sign-up/email", signupPayload(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		User *struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
		Session *struct {
			ID string `json:"id"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	require.NotNil(t, resp.Session)
	assert.Equal(t, "Alice Smith", resp.User.Name)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, w.Result().Cookies(), "signup should set the session cookie")

	// User, credential account and verification row are all created.
	var accountCount, verificationCount int64
	env.db.Model(&models.Account{}).Where("user_id = ?", resp.User.ID).Count(&accountCount)
	env.db.Model(&models.Verification{}).Where("identifier = ?", "alice@example.com").Count(&verificationCount)
	assert.Equal(t, int64(1), accountCount)
	assert.Equal(t, int64(1), verificationCount)
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/sign-up/email", signupPayload(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/sign-up/email", signupPayload(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Signup_ValidationErrors(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	payload := signupPayload()
	payload["confirmPassword"] = "different1"

	w := postJSON(t, r, "/api/auth/sign-up/email", payload, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Details validation.FieldErrors `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	msg, ok := resp.Details.ByPath("confirmPassword")
	require.True(t, ok)
	assert.Equal(t, validation.MsgPasswordMismatch, msg)
}

func TestAuthHandler_Signin(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/sign-up/email", signupPayload(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/sign-in/email", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestAuthHandler_Signin_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/sign-up/email", signupPayload(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/sign-in/email", map[string]string{
		"email":    "alice@example.com",
		"password": "wrongpass",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetSession(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	// Unauthenticated: both halves null, not a 401.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/get-session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null,"session":null}`, w.Body.String())

	// After signup the cookie resolves to the user.
	signup := postJSON(t, r, "/api/auth/sign-up/email", signupPayload(), nil)
	require.Equal(t, http.StatusCreated, signup.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/get-session", nil)
	for _, c := range signup.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User *struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestAuthHandler_NotAuthenticatedBody(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	req := httptest.NewRequest(http.MethodGet, "/api/me/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apierrors.NotAuthenticatedBody, w.Body.String())
}

func TestAuthHandler_SignOut(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	signup := postJSON(t, r, "/api/auth/sign-up/email", signupPayload(), nil)
	require.Equal(t, http.StatusCreated, signup.Code)
	cookies := signup.Result().Cookies()

	w := postJSON(t, r, "/api/auth/sign-out", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// The session row is gone; the cookie no longer authenticates.
	var count int64
	env.db.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	signup := postJSON(t, r, "/api/auth/sign-up/email", signupPayload(), nil)
	require.Equal(t, http.StatusCreated, signup.Code)

	var verification models.Verification
	require.NoError(t, env.db.Where("identifier = ?", "alice@example.com").First(&verification).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify-email?token="+verification.Value, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	user, err := env.userRepo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)

	// The token is consumed; a second attempt fails.
	req = httptest.NewRequest(http.MethodGet, "/api/auth/verify-email?token="+verification.Value, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
