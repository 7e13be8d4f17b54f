package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/joblane/joblane-api/internal/constants"
	"github.com/joblane/joblane-api/internal/dto"
	apierrors "github.com/joblane/joblane-api/internal/errors"
	"github.com/joblane/joblane-api/internal/middleware"
	"github.com/joblane/joblane-api/internal/services"
	"github.com/joblane/joblane-api/internal/utils"
	"github.com/joblane/joblane-api/internal/validation"
)

const oauthStateKey = "oauth_state"

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService  *services.AuthService
	oauthService *services.OAuthService
	logger       *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, oauthService *services.OAuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		oauthService: oauthService,
		logger:       logger,
	}
}

// SignupEmail registers a new user with email and password.
func (h *AuthHandler) SignupEmail(c *gin.Context) {
	var req validation.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, fieldErrs := validation.ValidateSignup(req)
	if len(fieldErrs) > 0 {
		apierrors.BadRequestWithDetails(c, "Validation failed", fieldErrs)
		return
	}

	user, err := h.authService.Signup(input)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	session, err := h.authService.CreateSession(user, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		h.logger.Error("failed to create session after signup", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}
	middleware.StoreSession(c, session, h.logger)

	c.JSON(http.StatusCreated, dto.SessionEnvelope{
		User:    ptr(dto.ToUserDTO(*user)),
		Session: ptr(dto.ToSessionDTO(*session)),
	})
}

// SigninEmail authenticates with email and password.
func (h *AuthHandler) SigninEmail(c *gin.Context) {
	var req validation.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, fieldErrs := validation.ValidateLogin(req)
	if len(fieldErrs) > 0 {
		apierrors.BadRequestWithDetails(c, "Validation failed", fieldErrs)
		return
	}

	user, err := h.authService.Login(input)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	session, err := h.authService.CreateSession(user, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		h.logger.Error("failed to create session after login", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}
	middleware.StoreSession(c, session, h.logger)

	c.JSON(http.StatusOK, dto.SessionEnvelope{
		User:    ptr(dto.ToUserDTO(*user)),
		Session: ptr(dto.ToSessionDTO(*session)),
	})
}

// SignOut deletes the session row and drops the cookie.
func (h *AuthHandler) SignOut(c *gin.Context) {
	sess := sessions.Default(c)
	if token, ok := sess.Get(constants.SessionValueToken).(string); ok && token != "" {
		if err := h.authService.SignOut(token); err != nil {
			h.logger.Warn("failed to delete session row", zap.Error(err))
		}
	}
	middleware.ClearSession(c, h.logger)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSession returns the current user and session, or nulls.
func (h *AuthHandler) GetSession(c *gin.Context) {
	envelope := dto.SessionEnvelope{}
	if user, ok := middleware.GetUser(c); ok {
		envelope.User = ptr(dto.ToUserDTO(*user))
	}
	if session, ok := middleware.GetSession(c); ok {
		envelope.Session = ptr(dto.ToSessionDTO(*session))
	}
	c.JSON(http.StatusOK, envelope)
}

// VerifyEmail consumes a verification token and marks the email verified.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		apierrors.BadRequest(c, "Missing verification token")
		return
	}

	user, err := h.authService.VerifyEmail(token)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

// SigninSocial redirects to the provider's consent screen.
func (h *AuthHandler) SigninSocial(c *gin.Context) {
	provider := c.Query("provider")

	state := utils.NewID()
	sess := sessions.Default(c)
	sess.Set(oauthStateKey, state)
	if err := sess.Save(); err != nil {
		h.logger.Error("failed to persist oauth state", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	url, err := h.oauthService.AuthURL(provider, state)
	if err != nil {
		apierrors.BadRequest(c, "Unknown provider")
		return
	}

	c.Redirect(http.StatusFound, url)
}

// OAuthCallback completes the code exchange and signs the user in.
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")

	sess := sessions.Default(c)
	wantState, _ := sess.Get(oauthStateKey).(string)
	sess.Delete(oauthStateKey)
	if err := sess.Save(); err != nil {
		h.logger.Warn("failed to drop oauth state", zap.Error(err))
	}

	if wantState == "" || c.Query("state") != wantState {
		apierrors.BadRequest(c, "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		apierrors.BadRequest(c, "Missing authorization code")
		return
	}

	user, err := h.oauthService.HandleCallback(c.Request.Context(), provider, code)
	if err != nil {
		if errors.Is(err, services.ErrUnknownProvider) {
			apierrors.BadRequest(c, "Unknown provider")
			return
		}
		h.logger.Error("oauth callback failed", zap.Error(err))
		apierrors.InternalError(c, "Sign-in failed")
		return
	}

	session, err := h.authService.CreateSession(user, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		h.logger.Error("failed to create session after oauth", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}
	middleware.StoreSession(c, session, h.logger)

	c.Redirect(http.StatusFound, "/protected")
}

// respondAuthError maps auth service errors to HTTP responses.
func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "An account with this email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.RespondWithError(c, http.StatusUnauthorized,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, "Invalid email or password"))
	case errors.Is(err, services.ErrVerificationNotFound):
		apierrors.NotFound(c, "Verification token not found")
	case errors.Is(err, services.ErrVerificationExpired):
		apierrors.BadRequest(c, "Verification token expired")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		h.logger.Error("auth operation failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}

func ptr[T any](v T) *T { return &v }
