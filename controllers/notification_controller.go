package controllers

import (
	"hotel/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// NotificationController upgrades admin connections to the booking event
// feed.
type NotificationController struct {
	m   *melody.Melody
	log logger.Logger
}

func NewNotificationController(m *melody.Melody, log logger.Logger) *NotificationController {
	if log == nil {
		log = logger.NewNop()
	}
	m.HandleConnect(func(s *melody.Session) {
		log.Info("event feed connected", map[string]interface{}{"remote": s.Request.RemoteAddr})
	})
	m.HandleDisconnect(func(s *melody.Session) {
		log.Info("event feed disconnected", map[string]interface{}{"remote": s.Request.RemoteAddr})
	})
	return &NotificationController{m: m, log: log}
}

func (nc *NotificationController) Subscribe(c *gin.Context) {
	if err := nc.m.HandleRequest(c.Writer, c.Request); err != nil {
		nc.log.Warn("websocket upgrade failed", map[string]interface{}{"error": err.Error()})
	}
}
