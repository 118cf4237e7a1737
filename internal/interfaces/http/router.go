package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authusecases "helpdesk/internal/application/auth/usecases"
	reportusecases "helpdesk/internal/application/report/usecases"
	ticketservices "helpdesk/internal/application/ticket/services"
	ticketusecases "helpdesk/internal/application/ticket/usecases"
	userusecases "helpdesk/internal/application/user/usecases"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/ratelimit"
	"helpdesk/internal/infrastructure/repository"
	"helpdesk/internal/infrastructure/services"
	"helpdesk/internal/interfaces/http/handlers"
	"helpdesk/internal/interfaces/http/middleware"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/logger"
)

// Router wires every handler, use case, and repository together and
// owns the gin engine.
type Router struct {
	engine          *gin.Engine
	authHandler     *handlers.AuthHandler
	ticketHandler   *handlers.TicketHandler
	userHandler     *handlers.UserHandler
	reportHandler   *handlers.ReportHandler
	authMiddleware  *middleware.AuthMiddleware
	rateLimiter     ratelimit.RateLimiter
	rateLimitConfig ratelimit.RateLimitConfig
	allowedOrigins  []string
	logger          logger.Interface
}

// NewRouter builds the full dependency graph. The redis client may be
// nil, in which case rate limiting is disabled.
func NewRouter(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	userRepo := repository.NewUserRepository(gormDB)
	ticketRepo := repository.NewTicketRepository(gormDB)
	historyRepo := repository.NewTicketHistoryRepository(gormDB)
	watcherRepo := repository.NewWatcherRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)

	txManager := db.NewTransactionManager(gormDB)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService, err := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	if err != nil {
		return nil, err
	}

	keyAllocator := services.NewTicketKeyAllocator(ticketRepo, historyRepo, txManager, log)
	balancer := ticketservices.NewAssignmentBalancer(userRepo, ticketRepo, log)

	loginUC := authusecases.NewLoginUseCase(userRepo, tokenRepo, hasher, jwtService, log)
	refreshUC := authusecases.NewRefreshTokenUseCase(userRepo, tokenRepo, jwtService, txManager, log)
	logoutUC := authusecases.NewLogoutUseCase(tokenRepo, jwtService, log)
	logoutAllUC := authusecases.NewLogoutAllUseCase(tokenRepo, log)

	createTicketUC := ticketusecases.NewCreateTicketUseCase(keyAllocator, balancer, watcherRepo, log)
	updateTicketUC := ticketusecases.NewUpdateTicketUseCase(ticketRepo, historyRepo, txManager, log)
	deleteTicketUC := ticketusecases.NewDeleteTicketUseCase(ticketRepo, historyRepo, txManager, log)
	getTicketUC := ticketusecases.NewGetTicketUseCase(ticketRepo, watcherRepo, log)
	listTicketsUC := ticketusecases.NewListTicketsUseCase(ticketRepo, log)
	getHistoryUC := ticketusecases.NewGetHistoryUseCase(ticketRepo, historyRepo, log)
	watchUC := ticketusecases.NewWatchTicketUseCase(ticketRepo, watcherRepo, log)
	unwatchUC := ticketusecases.NewUnwatchTicketUseCase(watcherRepo, log)

	listUsersUC := userusecases.NewListUsersUseCase(userRepo, log)
	updateRoleUC := userusecases.NewUpdateUserRoleUseCase(userRepo, log)

	reportUC := reportusecases.NewGetTicketReportUseCase(ticketRepo, userRepo, log)

	var limiter ratelimit.RateLimiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisRateLimiter(redisClient)
	}

	return &Router{
		engine:          engine,
		authHandler:     handlers.NewAuthHandler(loginUC, refreshUC, logoutUC, logoutAllUC, log),
		ticketHandler:   handlers.NewTicketHandler(createTicketUC, updateTicketUC, deleteTicketUC, getTicketUC, listTicketsUC, getHistoryUC, watchUC, unwatchUC, log),
		userHandler:     handlers.NewUserHandler(listUsersUC, updateRoleUC, log),
		reportHandler:   handlers.NewReportHandler(reportUC, log),
		authMiddleware:  middleware.NewAuthMiddleware(jwtService, log),
		rateLimiter:     limiter,
		rateLimitConfig: ratelimit.RateLimitConfig{RequestsPerMinute: 60, RequestsPerHour: 1000},
		allowedOrigins:  cfg.Server.AllowedOrigins,
		logger:          log,
	}, nil
}

// SetupRoutes registers the middleware chain and every API route.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")

	authGroup := api.Group("/auth")
	{
		limit := middleware.RateLimit(r.rateLimiter, r.rateLimitConfig, r.logger)
		authGroup.POST("/login", limit, r.authHandler.Login)
		authGroup.POST("/refresh", limit, r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/logout-all", r.authMiddleware.RequireAuth(), r.authHandler.LogoutAll)
	}

	tickets := api.Group("/tickets")
	tickets.Use(r.authMiddleware.RequireAuth())
	{
		tickets.POST("", r.ticketHandler.Create)
		tickets.GET("", r.ticketHandler.List)
		tickets.GET("/:id", r.ticketHandler.Get)
		tickets.PATCH("/:id", r.ticketHandler.Update)
		tickets.DELETE("/:id", r.ticketHandler.Delete)
		tickets.GET("/:id/history", r.ticketHandler.History)
		tickets.POST("/:id/watch", r.ticketHandler.Watch)
		tickets.DELETE("/:id/watch", r.ticketHandler.Unwatch)
	}

	users := api.Group("/users")
	users.Use(r.authMiddleware.RequireAuth(), authorization.RequireAdmin())
	{
		users.GET("", r.userHandler.List)
		users.PUT("/:id/role", r.userHandler.UpdateRole)
	}

	reports := api.Group("/reports")
	reports.Use(r.authMiddleware.RequireAuth(), authorization.RequireAdmin())
	{
		reports.GET("/tickets", r.reportHandler.TicketReport)
	}
}

// Engine returns the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
