package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "demo-user-service/pkg/errors"
)

// HelloHandler serves the diagnostic endpoints of demo1.
type HelloHandler struct {
	log *zap.Logger
}

// NewHelloHandler creates a new HelloHandler instance
func NewHelloHandler(log *zap.Logger) *HelloHandler {
	return &HelloHandler{log: log}
}

// Hello handles GET /hello
func (h *HelloHandler) Hello(c *gin.Context) {
	h.log.Info("Hello from demo1")
	c.String(http.StatusOK, "Hello from demo1")
}

// GenerateError handles GET /errors/:type. It deliberately triggers runtime
// failures so the recovery and logging paths can be observed in a live
// deployment.
func (h *HelloHandler) GenerateError(c *gin.Context) {
	errType := strings.ToLower(c.Param("type"))
	h.log.Info("generating error", zap.String("type", errType))

	switch errType {
	case "arithmetic":
		divisor := 0
		c.String(http.StatusOK, "%d", 1/divisor) // panics: division by zero
	case "null":
		var s *string
		c.String(http.StatusOK, *s) // panics: nil dereference
	case "array":
		arr := make([]int, 1)
		idx := 2
		c.String(http.StatusOK, "%d", arr[idx]) // panics: index out of range
	default:
		err := apperrors.NewValidation("type", "unknown error type: "+errType)
		h.log.Error("unknown error type requested", zap.String("type", errType))
		respondError(c, err, "Failed to generate error")
	}
}
