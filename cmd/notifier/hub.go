package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/service"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/jwt"
)

const sessionUserKey = "user_id"

// Hub holds the websocket sessions, keyed by user id through session
// metadata. One user may hold several sessions (multiple tabs); a push goes
// to all of them.
type Hub struct {
	m          *melody.Melody
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

func NewHub(jwtManager *jwt.Manager, logger *zap.Logger) *Hub {
	m := melody.New()
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	namedLogger := logger.Named("Hub")

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get(sessionUserKey)
		namedLogger.Debug("Client disconnected", zap.Any("user_id", userID))
	})
	m.HandleError(func(s *melody.Session, err error) {
		namedLogger.Warn("Websocket error", zap.Error(err))
	})

	return &Hub{
		m:          m,
		jwtManager: jwtManager,
		logger:     namedLogger,
	}
}

// HandleWS upgrades GET /ws?token=... to a websocket session bound to the
// token's subject.
func (h *Hub) HandleWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		service.AbortWithError(c, http.StatusUnauthorized, "missing token")
		return
	}

	payload, err := h.jwtManager.Parse(token)
	if err != nil {
		service.AbortWithError(c, http.StatusUnauthorized, "invalid token")
		return
	}
	sub, _ := payload["sub"].(string)
	if _, err := primitive.ObjectIDFromHex(sub); err != nil {
		service.AbortWithError(c, http.StatusUnauthorized, "invalid token subject")
		return
	}

	if err := h.m.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{
		sessionUserKey: sub,
	}); err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
	}
}

// Push sends the payload to every session belonging to the user.
func (h *Hub) Push(userID string, payload []byte) error {
	return h.m.BroadcastFilter(payload, func(s *melody.Session) bool {
		id, ok := s.Get(sessionUserKey)
		return ok && id == userID
	})
}

// Close tears down all sessions.
func (h *Hub) Close() error {
	return h.m.Close()
}
