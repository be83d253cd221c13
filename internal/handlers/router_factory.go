package handlers

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"speakroots/internal/config"
	"speakroots/internal/middleware"
	"speakroots/internal/observability"
	"speakroots/internal/services"
	"speakroots/internal/version"
)

// ServiceName identifies the server in traces and the version endpoint
const ServiceName = "speakroots-server"

// NewRouter creates the gin engine with all middleware and routes
func NewRouter(
	cfg *config.Config,
	quizService services.QuizServiceInterface,
	dispatcher *services.Dispatcher,
	plays *services.PlaySessionManager,
	logger *observability.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))

	// Health check endpoint (defined before any middleware)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": ServiceName})
	})

	router.Use(observability.GinMiddlewareWithErrorHandling(ServiceName)...)
	router.Use(middleware.CircuitBreaker(cfg.Server.CircuitBreakerThreshold, cfg.Server.CircuitBreakerTimeout))

	// Disable automatic redirection for trailing slashes, which is better for APIs
	router.RedirectTrailingSlash = false

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	secret := cfg.Server.SessionSecret
	if secret == "" {
		// Sessions then only survive until restart
		secret = uuid.NewString()
		logger.Warn(context.Background(), "server.session_secret is not set, using a random secret")
	}
	store := cookie.NewStore([]byte(secret))
	sessionOpts := sessions.Options{
		Path:     config.SessionPath,
		MaxAge:   int(config.SessionMaxAge.Seconds()),
		HttpOnly: config.SessionHTTPOnly,
		Secure:   config.SessionSecure,
	}
	if cfg.Server.Debug {
		sessionOpts.SameSite = http.SameSiteDefaultMode
	} else {
		sessionOpts.SameSite = http.SameSiteLaxMode
		sessionOpts.Secure = true
	}
	store.Options(sessionOpts)
	router.Use(sessions.Sessions(config.SessionName, store))

	secureConfig := secure.DefaultConfig()
	secureConfig.SSLRedirect = false
	secureConfig.IsDevelopment = cfg.Server.Debug
	secureConfig.ContentSecurityPolicy = config.DefaultCSP
	router.Use(secure.New(secureConfig))

	dailyHandler := NewDailyHandler(quizService, cfg, logger)
	poolHandler := NewPoolHandler(quizService, cfg, logger)
	eventHandler := NewEventHandler(dispatcher, logger)
	playHandler := NewPlayHandler(plays, cfg, logger)
	routeListing := NewRouteListingHandler(ServiceName)

	v1 := router.Group("/v1")
	{
		v1.GET("/version", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"server": version.Get(ServiceName),
				"store":  cfg.Store.Backend,
			})
		})
		v1.GET("/routes", routeListing.GetRouteListingJSON)

		v1.GET("/levels", poolHandler.ListLevels)
		v1.GET("/pools/:level", poolHandler.GetPool)

		daily := v1.Group("/daily")
		{
			daily.GET("/indexes", dailyHandler.GetIndexes)
			daily.GET("/quiz", dailyHandler.GetSessionQuiz)
			daily.GET("/quiz/:level", dailyHandler.GetQuiz)
			daily.POST("/quiz/:level/score", dailyHandler.SubmitScore)
		}

		v1.PUT("/session/level", dailyHandler.SetSessionLevel)
		v1.POST("/events", eventHandler.Dispatch)
		v1.GET("/play/:level", playHandler.Play)

		admin := v1.Group("/admin", RequireAdmin(cfg))
		{
			admin.DELETE("/pools/:level", poolHandler.InvalidatePool)
		}
	}

	routeListing.CollectRoutes(router)
	logger.Debug(context.Background(), "Routes registered", map[string]interface{}{"routes": routeListing.String()})

	return router
}
