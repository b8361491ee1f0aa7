package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"twilight-battle-server/auth"
	"twilight-battle-server/config"
	"twilight-battle-server/lobby"
	"twilight-battle-server/roomerrors"
	"twilight-battle-server/storage"
)

// Rooms is the part of the lobby registry the HTTP surface uses.
type Rooms interface {
	List() []lobby.RoomInfo
	Create() *lobby.Table
	Get(code string) (*lobby.Table, error)
}

// Identifier resolves a bearer token to a user.
type Identifier interface {
	Identify(token string) (auth.Identity, error)
}

// Handler holds dependencies for API handlers.
type Handler struct {
	Config       *config.Config
	Rooms        Rooms
	HistoryStore storage.HistoryStore
	Identity     Identifier
}

// NewHandler creates a new API handler with the given dependencies.
// history and identity may be nil.
func NewHandler(cfg *config.Config, rooms Rooms, history storage.HistoryStore, identity Identifier) *Handler {
	return &Handler{
		Config:       cfg,
		Rooms:        rooms,
		HistoryStore: history,
		Identity:     identity,
	}
}

// CORS sets CORS headers and answers preflight requests.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// extractUserID validates the Authorization header and returns the user ID, or empty string on failure.
func (h *Handler) extractUserID(c *gin.Context) string {
	if h.Identity == nil {
		return ""
	}
	token, ok := auth.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		return ""
	}
	id, err := h.Identity.Identify(token)
	if err != nil {
		return ""
	}
	return id.UserID
}

// ListRooms returns every live room.
func (h *Handler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.Rooms.List()})
}

// CreateRoom opens an empty room. Players join it over the websocket.
func (h *Handler) CreateRoom(c *gin.Context) {
	t := h.Rooms.Create()
	c.JSON(http.StatusCreated, gin.H{"roomId": t.Code, "room": t.Info()})
}

// StartRoom starts the match in a room that has enough players.
func (h *Handler) StartRoom(c *gin.Context) {
	t, err := h.Rooms.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": lobby.ErrorCode(err)})
		return
	}
	if err := t.Do(lobby.Intent{Type: lobby.IntentStart}); err != nil {
		status := http.StatusConflict
		if errors.Is(err, roomerrors.ErrRoomClosed) {
			status = http.StatusGone
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": lobby.ErrorCode(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": t.Info()})
}

// History returns the match history for the authenticated user.
func (h *Handler) History(c *gin.Context) {
	userID := h.extractUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 || limit > storage.DefaultHistoryLimit {
		limit = storage.DefaultHistoryLimit
	}

	list := []storage.MatchRecord{}
	if h.HistoryStore != nil {
		var err error
		list, err = h.HistoryStore.ListByUserID(c.Request.Context(), userID, limit)
		if err != nil {
			slog.Error("ListByUserID", "tag", "api", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
			return
		}
	}
	c.JSON(http.StatusOK, list)
}
