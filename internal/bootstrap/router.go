package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fmi-projects/project-management-api/config"
	httpapi "github.com/fmi-projects/project-management-api/internal/api/http"
	"github.com/fmi-projects/project-management-api/internal/api/http/middleware"
	authhttp "github.com/fmi-projects/project-management-api/internal/auth/http"
	authmw "github.com/fmi-projects/project-management-api/internal/auth/middleware"
	authrepo "github.com/fmi-projects/project-management-api/internal/auth/repository"
	authsvc "github.com/fmi-projects/project-management-api/internal/auth/service"
	categoryhttp "github.com/fmi-projects/project-management-api/internal/categories/http"
	categoryrepo "github.com/fmi-projects/project-management-api/internal/categories/repository"
	categorysvc "github.com/fmi-projects/project-management-api/internal/categories/service"
	commenthttp "github.com/fmi-projects/project-management-api/internal/comments/http"
	commentrepo "github.com/fmi-projects/project-management-api/internal/comments/repository"
	commentsvc "github.com/fmi-projects/project-management-api/internal/comments/service"
	projecthttp "github.com/fmi-projects/project-management-api/internal/projects/http"
	projectrepo "github.com/fmi-projects/project-management-api/internal/projects/repository"
	projectsvc "github.com/fmi-projects/project-management-api/internal/projects/service"
	userhttp "github.com/fmi-projects/project-management-api/internal/users/http"
	userrepo "github.com/fmi-projects/project-management-api/internal/users/repository"
	usersvc "github.com/fmi-projects/project-management-api/internal/users/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Log         zerolog.Logger
	DB          *sql.DB
	Redis       *redis.Client // nil disables the login lockout
	Config      *config.Config
	BcryptCost  int // 0 means bcrypt.DefaultCost
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	cfg := dep.Config

	issuer, err := authsvc.NewTokenIssuer(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	r.Use(middleware.RequestIDMiddleware(dep.Log))

	var dbPinger, redisPinger httpapi.Pinger
	if dep.DB != nil {
		dbPinger = dep.DB
	}
	var limiter authsvc.Limiter = authsvc.NoopLimiter{}
	if dep.Redis != nil {
		redisPinger = httpapi.PingFunc(func(ctx context.Context) error { return dep.Redis.Ping(ctx).Err() })
		limiter = authsvc.NewLockoutLimiter(dep.Redis, cfg.Auth.MaxLoginFailures, cfg.Auth.LockoutWindow)
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dbPinger, redisPinger)
	healthHandler.RegisterRoutes(r)

	userRepo := userrepo.NewUserRepository(dep.DB)
	authService := authsvc.NewAuthService(userRepo, authrepo.NewTokenRepository(dep.DB), issuer, limiter, dep.BcryptCost)

	api := r.Group("/api")

	tokenLimit := middleware.NewIPRateLimiter(cfg.Auth.RatePerSecond, cfg.Auth.RateBurst)
	authhttp.New(authService).Register(api, tokenLimit.Middleware())

	protected := api.Group("")
	protected.Use(authmw.BearerAuth(authService))

	userhttp.New(usersvc.NewUserService(userRepo, dep.BcryptCost)).
		Register(protected.Group("/users"))
	categoryhttp.New(categorysvc.NewCategoryService(categoryrepo.NewCategoryRepository(dep.DB))).
		Register(protected.Group("/categories"))
	projecthttp.New(projectsvc.NewProjectService(projectrepo.NewProjectRepository(dep.DB))).
		Register(protected.Group("/projects"))
	commenthttp.New(commentsvc.NewCommentService(commentrepo.NewCommentRepository(dep.DB))).
		Register(protected.Group("/comments"))

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.HeaderRequestID)
	c.ExposeHeaders = []string{middleware.HeaderRequestID}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
