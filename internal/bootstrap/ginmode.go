package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/fmi-projects/project-management-api/config"
)

// SetGinMode switches gin to release mode in production and leaves the
// default debug mode elsewhere.
func SetGinMode(cfg *config.Config) {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case cfg.App.Environment == "test":
		gin.SetMode(gin.TestMode)
	}
}
