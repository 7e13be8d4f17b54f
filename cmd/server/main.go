package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/joblane/joblane-api/internal/config"
	"github.com/joblane/joblane-api/internal/constants"
	"github.com/joblane/joblane-api/internal/database"
	"github.com/joblane/joblane-api/internal/handlers"
	"github.com/joblane/joblane-api/internal/logging"
	"github.com/joblane/joblane-api/internal/middleware"
	"github.com/joblane/joblane-api/internal/repository"
	"github.com/joblane/joblane-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	db := database.GetDB()

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	jobRepo := repository.NewJobRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	authService := services.NewAuthService(userRepo, sessionRepo)
	oauthService := services.NewOAuthService(cfg, userRepo)
	orgService := services.NewOrganizationService(orgRepo)
	jobService := services.NewJobService(jobRepo, orgRepo)
	profileService := services.NewProfileService(profileRepo)

	authHandler := handlers.NewAuthHandler(authService, oauthService, logger)
	orgHandler := handlers.NewOrganizationHandler(orgService, authService, logger)
	jobHandler := handlers.NewJobHandler(jobService, logger)
	meHandler := handlers.NewMeHandler(profileService, logger)
	pageHandler := handlers.NewPageHandler(authService, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.VerifyOrigin(cfg.AuthBaseURL))
	if cfg.IsProduction() {
		r.Use(middleware.Compress())
	}

	store := cookie.NewStore([]byte(cfg.AuthSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(constants.SessionLifetime / time.Second),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.LoadSession(authService, logger))

	var loginLimiter gin.HandlerFunc
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		loginLimiter = middleware.RateLimit(rdb, middleware.DefaultRateLimitConfig(), logger)
		logger.Info("login rate limiting enabled", zap.String("redis", cfg.RedisAddr))
	}
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if loginLimiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{loginLimiter, h}
	}

	r.LoadHTMLGlob("templates/*.html")

	// Pages
	r.GET("/login", middleware.RedirectIfAuthenticated(), pageHandler.LoginPage)
	r.POST("/login", middleware.RedirectIfAuthenticated(), pageHandler.LoginSubmit)
	r.GET("/sign-up", middleware.RedirectIfAuthenticated(), pageHandler.SignupPage)
	r.POST("/sign-up", middleware.RedirectIfAuthenticated(), pageHandler.SignupSubmit)
	r.GET("/protected", middleware.RequireAuthPage(), pageHandler.ProtectedPage)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/sign-up/email", limited(authHandler.SignupEmail)...)
			auth.POST("/sign-in/email", limited(authHandler.SigninEmail)...)
			auth.GET("/sign-in/social", authHandler.SigninSocial)
			auth.GET("/callback/:provider", authHandler.OAuthCallback)
			auth.POST("/sign-out", authHandler.SignOut)
			auth.GET("/get-session", authHandler.GetSession)
			auth.GET("/verify-email", authHandler.VerifyEmail)
		}

		orgs := api.Group("/organizations")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.Create)
			orgs.GET("", orgHandler.List)
			orgs.GET("/:id", orgHandler.Get)
			orgs.PATCH("/:id", orgHandler.Update)
			orgs.DELETE("/:id", orgHandler.Delete)
			orgs.POST("/:id/invitations", orgHandler.Invite)
			orgs.POST("/:id/set-active", orgHandler.SetActive)
			orgs.DELETE("/:id/members/:user_id", orgHandler.RemoveMember)
			orgs.POST("/:id/jobs", jobHandler.Create)
		}

		invitations := api.Group("/invitations")
		invitations.Use(middleware.RequireAuth())
		{
			invitations.GET("", orgHandler.MyInvitations)
			invitations.POST("/:id/accept", orgHandler.AcceptInvitation)
			invitations.POST("/:id/reject", orgHandler.RejectInvitation)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.List)
			jobs.GET("/:id", jobHandler.Get)
			jobs.PATCH("/:id", middleware.RequireAuth(), jobHandler.Update)
			jobs.DELETE("/:id", middleware.RequireAuth(), jobHandler.Delete)
			jobs.POST("/:id/apply", middleware.RequireAuth(), jobHandler.Apply)
			jobs.GET("/:id/applications", middleware.RequireAuth(), jobHandler.ListApplications)
			jobs.PATCH("/:id/applications/:user_id", middleware.RequireAuth(), jobHandler.UpdateApplication)
		}

		me := api.Group("/me")
		me.Use(middleware.RequireAuth())
		{
			me.GET("/resume", meHandler.GetResume)
			me.PUT("/resume", meHandler.PutResume)
			me.GET("/notification-settings", meHandler.GetNotificationSettings)
			me.PUT("/notification-settings", meHandler.PutNotificationSettings)
		}
	}

	addr := ":" + strconv.Itoa(cfg.Port)
	logger.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
