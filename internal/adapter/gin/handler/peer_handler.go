package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Greeter produces the demo2 greeting, folding the peer call outcome into
// plain text.
type Greeter interface {
	Hello(ctx context.Context) string
}

// PeerHandler serves demo2's /hello endpoint.
type PeerHandler struct {
	greeter Greeter
	log     *zap.Logger
}

// NewPeerHandler creates a new PeerHandler instance
func NewPeerHandler(greeter Greeter, log *zap.Logger) *PeerHandler {
	return &PeerHandler{greeter: greeter, log: log}
}

// Hello handles GET /hello. It always responds 200: the peer call swallows
// its own failures into the greeting text.
func (h *PeerHandler) Hello(c *gin.Context) {
	h.log.Info("Hello from demo2")
	c.String(http.StatusOK, h.greeter.Hello(c.Request.Context()))
}
