package router

import (
	"github.com/gin-gonic/gin"

	"github.com/passkeep/passkeep-server/internal/api/rest/handler"
	"github.com/passkeep/passkeep-server/internal/api/rest/middleware"
	"github.com/passkeep/passkeep-server/internal/logger"
	"github.com/passkeep/passkeep-server/internal/service"
)

// Router wires HTTP handlers and middleware into a gin engine.
type Router struct {
	authService    handler.AuthService
	userService    handler.UserService
	accountService handler.AccountService
	tokenService   *service.TokenService
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	userService handler.UserService,
	accountService handler.AccountService,
	tokenService *service.TokenService,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		userService:    userService,
		accountService: accountService,
		tokenService:   tokenService,
		logger:         logger,
	}
}

// Register builds the gin engine with logging on every route and token
// authentication on everything except register and login.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	userHandler := handler.NewUser(r.userService, r.logger)
	accountHandler := handler.NewAccount(r.accountService, r.logger)

	engine := gin.New()
	engine.Use(gin.Recovery(), logging.Handle)

	engine.POST("/register", authHandler.Register)
	engine.POST("/login", authHandler.Login)

	authorized := engine.Group("/", authenticate.Handle)

	authorized.GET("/ping", authHandler.Ping)
	authorized.POST("/logout", authHandler.Logout)
	authorized.POST("/change-password", authHandler.ChangePassword)
	authorized.POST("/change-password/:id", authHandler.ChangeUserPassword)

	authorized.GET("/users", userHandler.List)
	authorized.GET("/users/:id", userHandler.Get)
	authorized.PUT("/users/:id", userHandler.Update)
	authorized.DELETE("/users/:id", userHandler.Delete)
	authorized.POST("/users/:id/make-admin", userHandler.MakeAdmin)

	authorized.GET("/accounts", accountHandler.List)
	authorized.POST("/accounts", accountHandler.Create)
	authorized.GET("/accounts/:id", accountHandler.Get)
	authorized.PUT("/accounts/:id", accountHandler.Update)
	authorized.DELETE("/accounts/:id", accountHandler.Delete)
	authorized.PUT("/account/reset-password/:id", accountHandler.ResetPassword)

	return engine
}
