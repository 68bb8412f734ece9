package realtime

import (
	"net/http"
	"strings"

	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const maxViewsPerClient = 16

// userIDKey is the gin context key the auth middleware stores the session user under
const userIDKey = "userID"

// Handler upgrades HTTP requests into view subscriptions
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. An empty allowedOrigins accepts any origin.
func NewHandler(hub *Hub, allowedOrigins []string, logger zerolog.Logger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				return allowed[r.Header.Get("Origin")]
			},
		},
		logger: logger,
	}
}

// ParseViews reads the view query parameters, keeping unique absolute paths
func ParseViews(raw []string) ([]string, error) {
	seen := make(map[string]bool)
	views := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		if !strings.HasPrefix(v, "/") {
			return nil, apperrors.NewValidationError("view", "view must be an absolute path")
		}
		seen[v] = true
		views = append(views, v)
	}
	if len(views) == 0 {
		return nil, apperrors.NewValidationError("view", "at least one view is required")
	}
	if len(views) > maxViewsPerClient {
		return nil, apperrors.NewValidationError("view", "too many views")
	}
	return views, nil
}

// AuthorizeViews resolves dashboard subscriptions against the session user.
// "/dashboard" becomes the caller's own dashboard; another user's dashboard is refused.
func AuthorizeViews(views []string, userID string) ([]string, error) {
	own := DashboardView(userID)
	seen := make(map[string]bool, len(views))
	out := make([]string, 0, len(views))
	for _, v := range views {
		if v == DashboardPrefix || strings.HasPrefix(v, DashboardPrefix+"/") {
			if userID == "" {
				return nil, apperrors.ErrNotAuthenticated
			}
			if v == DashboardPrefix {
				v = own
			}
			if v != own {
				return nil, apperrors.NewForbiddenError("Cannot subscribe to another user's dashboard")
			}
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}

// Subscribe handles GET /ws?view=/college/1&view=/dashboard
func (h *Handler) Subscribe(c *gin.Context) {
	userID := c.GetString(userIDKey)
	views, err := ParseViews(c.QueryArray("view"))
	if err == nil {
		views, err = AuthorizeViews(views, userID)
	}
	if err != nil {
		c.Error(err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		views:  views,
		userID: userID,
		logger: h.logger,
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
