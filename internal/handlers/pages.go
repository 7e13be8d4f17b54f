package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/joblane/joblane-api/internal/middleware"
	"github.com/joblane/joblane-api/internal/services"
	"github.com/joblane/joblane-api/internal/validation"
)

// PageHandler serves the server-rendered login, sign-up and protected
// pages.
type PageHandler struct {
	authService *services.AuthService
	logger      *zap.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(authService *services.AuthService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		authService: authService,
		logger:      logger,
	}
}

// LoginPage renders the login form.
func (h *PageHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// LoginSubmit validates the form and signs the user in.
func (h *PageHandler) LoginSubmit(c *gin.Context) {
	form := validation.LoginInput{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	input, fieldErrs := validation.ValidateLogin(form)
	if len(fieldErrs) > 0 {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"email": form.Email,
			"error": fieldErrs.First(),
		})
		return
	}

	user, err := h.authService.Login(input)
	if err != nil {
		status := http.StatusUnauthorized
		msg := "Invalid email or password."
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.Error("login failed", zap.Error(err))
			status = http.StatusInternalServerError
			msg = "Something went wrong. Try again."
		}
		c.HTML(status, "login.html", gin.H{
			"email": form.Email,
			"error": msg,
		})
		return
	}

	session, err := h.authService.CreateSession(user, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"email": form.Email,
			"error": "Something went wrong. Try again.",
		})
		return
	}
	middleware.StoreSession(c, session, h.logger)

	c.Redirect(http.StatusFound, "/protected")
}

// SignupPage renders the sign-up form.
func (h *PageHandler) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

// SignupSubmit validates the form and creates the account.
func (h *PageHandler) SignupSubmit(c *gin.Context) {
	form := validation.SignupInput{
		FirstName:       c.PostForm("firstName"),
		LastName:        c.PostForm("lastName"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirmPassword"),
	}

	render := func(status int, message string) {
		c.HTML(status, "signup.html", gin.H{
			"firstName": form.FirstName,
			"lastName":  form.LastName,
			"email":     form.Email,
			"error":     message,
		})
	}

	input, fieldErrs := validation.ValidateSignup(form)
	if len(fieldErrs) > 0 {
		render(http.StatusBadRequest, fieldErrs.First())
		return
	}

	user, err := h.authService.Signup(input)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			render(http.StatusConflict, "An account with this email already exists.")
			return
		}
		h.logger.Error("signup failed", zap.Error(err))
		render(http.StatusInternalServerError, "Something went wrong. Try again.")
		return
	}

	session, err := h.authService.CreateSession(user, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		render(http.StatusInternalServerError, "Something went wrong. Try again.")
		return
	}
	middleware.StoreSession(c, session, h.logger)

	c.Redirect(http.StatusFound, "/protected")
}

// ProtectedPage renders the signed-in landing page.
func (h *PageHandler) ProtectedPage(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	c.HTML(http.StatusOK, "protected.html", gin.H{
		"name":  user.Name,
		"email": user.Email,
	})
}
