package hub

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uploadhub/uploadhub/config"
	"github.com/uploadhub/uploadhub/infra"
)

func newTestHubServer(t *testing.T) (*GroupHub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewGroupHub(infra.InitLoggerClient(&config.EnvConfig{}))

	r := gin.New()
	r.GET("/hub/group", func(c *gin.Context) {
		// The identity middleware normally resolves this.
		if user := c.Query("user"); user != "" {
			c.Set("user_name", user)
		}
		h.HandleConnection(c)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return h, srv
}

func dialHub(t *testing.T, srv *httptest.Server, user string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/hub/group?user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readServerMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestJoinAlertsOtherMembersOnly(t *testing.T) {
	_, srv := newTestHubServer(t)

	alice := dialHub(t, srv, "alice")
	require.NoError(t, alice.WriteJSON(ClientMessage{Method: MethodJoinGroup, Group: "team"}))

	// Give the join a moment to register before the second member arrives.
	time.Sleep(100 * time.Millisecond)

	bob := dialHub(t, srv, "bob")
	require.NoError(t, bob.WriteJSON(ClientMessage{Method: MethodJoinGroup, Group: "team"}))

	msg := readServerMessage(t, alice)
	assert.Equal(t, EventGroupAlert, msg.Event)
	assert.Equal(t, "bob has joined team", msg.Message)

	// The joiner hears nothing about their own join.
	require.NoError(t, bob.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	var stray ServerMessage
	assert.Error(t, bob.ReadJSON(&stray))
}

func TestGroupMessageReachesAllMembers(t *testing.T) {
	_, srv := newTestHubServer(t)

	alice := dialHub(t, srv, "alice")
	require.NoError(t, alice.WriteJSON(ClientMessage{Method: MethodJoinGroup, Group: "team"}))
	time.Sleep(100 * time.Millisecond)

	bob := dialHub(t, srv, "bob")
	require.NoError(t, bob.WriteJSON(ClientMessage{Method: MethodJoinGroup, Group: "team"}))

	// Drain bob's join alert off alice's connection.
	_ = readServerMessage(t, alice)

	require.NoError(t, bob.WriteJSON(ClientMessage{Method: MethodGroupMessage, Group: "team"}))

	got := readServerMessage(t, alice)
	assert.Equal(t, EventGroupMessage, got.Event)
	assert.Empty(t, got.Message)

	// The sender receives the broadcast too.
	got = readServerMessage(t, bob)
	assert.Equal(t, EventGroupMessage, got.Event)
}

func TestLeaveAlertsRemainingMembers(t *testing.T) {
	_, srv := newTestHubServer(t)

	alice := dialHub(t, srv, "alice")
	require.NoError(t, alice.WriteJSON(ClientMessage{Method: MethodJoinGroup, Group: "team"}))
	time.Sleep(100 * time.Millisecond)

	bob := dialHub(t, srv, "bob")
	require.NoError(t, bob.WriteJSON(ClientMessage{Method: MethodJoinGroup, Group: "team"}))
	_ = readServerMessage(t, alice)

	require.NoError(t, bob.WriteJSON(ClientMessage{Method: MethodLeaveGroup, Group: "team"}))

	msg := readServerMessage(t, alice)
	assert.Equal(t, EventGroupAlert, msg.Event)
	assert.Equal(t, "bob has left team", msg.Message)
}

func TestDisconnectSynthesizesLeavesForEveryGroup(t *testing.T) {
	h, srv := newTestHubServer(t)

	alice := dialHub(t, srv, "alice")
	require.NoError(t, alice.WriteJSON(ClientMessage{Method: MethodJoinGroup, Group: "alpha"}))
	require.NoError(t, alice.WriteJSON(ClientMessage{Method: MethodJoinGroup, Group: "beta"}))
	time.Sleep(100 * time.Millisecond)

	bob := dialHub(t, srv, "bob")
	require.NoError(t, bob.WriteJSON(ClientMessage{Method: MethodJoinGroup, Group: "alpha"}))
	require.NoError(t, bob.WriteJSON(ClientMessage{Method: MethodJoinGroup, Group: "beta"}))

	// alpha then beta join alerts.
	_ = readServerMessage(t, alice)
	_ = readServerMessage(t, alice)

	require.NoError(t, bob.Close())

	// Groups are dissolved in sorted order, so alpha's alert comes first.
	msg := readServerMessage(t, alice)
	assert.Equal(t, "bob has left alpha", msg.Message)
	msg = readServerMessage(t, alice)
	assert.Equal(t, "bob has left beta", msg.Message)

	assert.Eventually(t, func() bool {
		return len(h.Registry.Members("alpha")) == 1 && len(h.Registry.Members("beta")) == 1
	}, 2*time.Second, 20*time.Millisecond)
}
