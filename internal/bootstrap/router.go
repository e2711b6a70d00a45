package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	httpapi "github.com/project-pulse/pulse-backend/internal/api/http"
	"github.com/project-pulse/pulse-backend/internal/api/http/middleware"
	projectshttp "github.com/project-pulse/pulse-backend/internal/projects/http"
	"github.com/project-pulse/pulse-backend/internal/projects/repository"
	"github.com/project-pulse/pulse-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	DB             *pgxpool.Pool
	Logger         *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	projectRepo := repository.NewRepo(dep.DB, dep.Logger)
	projectService := service.NewProjectService(projectRepo, dep.Logger)

	projectsGroup := api.Group("/projects")
	projectshttp.New(projectService).Register(projectsGroup)

	return r
}
