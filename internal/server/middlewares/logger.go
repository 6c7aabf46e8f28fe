package middlewares

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger logs one line per request through the shared zap logger.
func Logger() gin.HandlerFunc {
	return ginzap.GinzapWithConfig(zap.S().Desugar().Named("http"), &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
	})
}
