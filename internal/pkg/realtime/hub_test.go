package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	// stands in for the auth middleware: ?as= names the session user
	router.GET("/ws", func(c *gin.Context) {
		if user := c.Query("as"); user != "" {
			c.Set(userIDKey, user)
		}
	}, NewHandler(hub, nil, zerolog.Nop()).Subscribe)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, server
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(message, &event))
	return event
}

func TestInvalidateReachesSubscribersOfTheView(t *testing.T) {
	hub, server := newTestServer(t)

	college := dial(t, server, "view=/college/1&view=/dashboard&as=u1")
	other := dial(t, server, "view=/college/2")

	require.Eventually(t, func() bool {
		return hub.ClientsCount("/college/1") == 1 && hub.ClientsCount("/college/2") == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, hub.ClientsCount(DashboardView("u1")))

	hub.Invalidate("/college/1")

	event := readEvent(t, college)
	assert.Equal(t, EventInvalidate, event.Type)
	assert.Equal(t, "/college/1", event.View)

	require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err)
}

func TestPublishCarriesPayload(t *testing.T) {
	hub, server := newTestServer(t)

	feed := dial(t, server, "view="+FeedView)
	require.Eventually(t, func() bool { return hub.ClientsCount(FeedView) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(FeedView, EventReviewCreated, map[string]string{"id": "r1"})

	event := readEvent(t, feed)
	assert.Equal(t, EventReviewCreated, event.Type)
	assert.Equal(t, map[string]any{"id": "r1"}, event.Payload)
}

func TestClientsAreRemovedOnDisconnect(t *testing.T) {
	hub, server := newTestServer(t)

	conn := dial(t, server, "view=/college/3")
	require.Eventually(t, func() bool { return hub.ClientsCount("/college/3") == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientsCount("/college/3") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSubscribeRejectsMissingView(t *testing.T) {
	_, server := newTestServer(t)

	resp, err := http.Get(server.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEqual(t, http.StatusSwitchingProtocols, resp.StatusCode)
}

func TestInvalidateAfterShutdownDoesNotBlock(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	for i := 0; i < broadcastBuffer*2; i++ {
		hub.Invalidate(DashboardView("u1"))
	}
}

func TestParseViews(t *testing.T) {
	views, err := ParseViews([]string{"/college/1", " /college/1 ", "", "/dashboard"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/college/1", "/dashboard"}, views)

	tests := []struct {
		name string
		raw  []string
	}{
		{"empty", nil},
		{"relative", []string{"college/1"}},
		{"too many", func() []string {
			out := make([]string, maxViewsPerClient+1)
			for i := range out {
				out[i] = "/college/" + string(rune('a'+i))
			}
			return out
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseViews(tt.raw)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestDashboardIsScopedToSessionUser(t *testing.T) {
	hub, server := newTestServer(t)

	jane := dial(t, server, "view=/dashboard&as=jane")
	john := dial(t, server, "view=/dashboard&as=john")
	require.Eventually(t, func() bool {
		return hub.ClientsCount(DashboardView("jane")) == 1 && hub.ClientsCount(DashboardView("john")) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, hub.ClientsCount(DashboardPrefix))

	hub.Invalidate(DashboardView("jane"))

	event := readEvent(t, jane)
	assert.Equal(t, DashboardView("jane"), event.View)

	require.NoError(t, john.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := john.ReadMessage()
	assert.Error(t, err)
}

func TestSubscribeRefusesDashboardWithoutMatchingSession(t *testing.T) {
	_, server := newTestServer(t)
	base := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?"

	for _, query := range []string{"view=/dashboard", "view=" + DashboardView("jane"), "view=" + DashboardView("jane") + "&as=john"} {
		conn, resp, err := websocket.DefaultDialer.Dial(base+query, nil)
		if conn != nil {
			conn.Close()
		}
		assert.ErrorIs(t, err, websocket.ErrBadHandshake, query)
		if resp != nil {
			resp.Body.Close()
		}
	}
}

func TestAuthorizeViews(t *testing.T) {
	tests := []struct {
		name    string
		views   []string
		userID  string
		want    []string
		wantErr error
	}{
		{"public views need no session", []string{"/college/1", FeedView}, "", []string{"/college/1", FeedView}, nil},
		{"bare dashboard is the caller's", []string{"/dashboard", "/college/1"}, "u1", []string{DashboardView("u1"), "/college/1"}, nil},
		{"own dashboard by id", []string{DashboardView("u1"), "/dashboard"}, "u1", []string{DashboardView("u1")}, nil},
		{"dashboard without session", []string{"/dashboard"}, "", nil, apperrors.ErrNotAuthenticated},
		{"someone else's dashboard", []string{DashboardView("u2")}, "u1", nil, apperrors.ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AuthorizeViews(tt.views, tt.userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
