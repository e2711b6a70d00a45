package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode switches gin out of debug mode outside development.
func SetGinMode(env string) {
	switch env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
}
