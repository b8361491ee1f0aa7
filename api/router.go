package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the lobby routes and the websocket endpoint.
func NewRouter(h *Handler, ws http.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), CORS())

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	if ws != nil {
		r.GET("/ws", gin.WrapF(ws))
	}

	api := r.Group("/api")
	api.GET("/rooms", h.ListRooms)
	api.POST("/rooms", h.CreateRoom)
	api.POST("/rooms/:id/start", h.StartRoom)
	api.GET("/history", h.History)
	return r
}
