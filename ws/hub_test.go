package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teyuna/config"
	"teyuna/service"
	"teyuna/utils"
)

func TestTruncateMessageASCII(t *testing.T) {
	assert.Equal(t, "hola", truncateMessage("hola", 500))
	assert.Equal(t, "ho", truncateMessage("hola", 2))
}

// 多字节字符只能整个保留或整个丢掉，截完必须还是合法 UTF-8
func TestTruncateMessageMultibyte(t *testing.T) {
	long := strings.Repeat("祖", 600)
	got := truncateMessage(long, 500)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 500, utf8.RuneCountInString(got))

	mixed := "a祖b祖"
	assert.Equal(t, "a祖b", truncateMessage(mixed, 3))
	assert.True(t, utf8.ValidString(truncateMessage(mixed, 2)))
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestWebSocketAuthPingChat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.C.AccessSecret = "ws-test-secret"

	engine := service.Sessions.Create(1, "host", 4)

	r := gin.New()
	r.GET("/ws/game/:token", HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/game/" + engine.Token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	token, err := utils.GenerateAccessToken(1, "host")
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "auth", "token": token}))

	assert.Equal(t, "connected", readMessage(t, conn)["type"])
	assert.Equal(t, "player_connected", readMessage(t, conn)["type"])

	// 心跳
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	assert.Equal(t, "pong", readMessage(t, conn)["type"])

	// 超长聊天消息被截断，而且截完仍是合法 UTF-8
	require.NoError(t, conn.WriteJSON(map[string]string{
		"type":    "chat",
		"message": strings.Repeat("祖", 600),
	}))
	chat := readMessage(t, conn)
	assert.Equal(t, "chat", chat["type"])
	text, _ := chat["message"].(string)
	assert.True(t, utf8.ValidString(text))
	assert.Equal(t, 500, utf8.RuneCountInString(text))
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.C.AccessSecret = "ws-test-secret"

	engine := service.Sessions.Create(2, "host", 4)

	r := gin.New()
	r.GET("/ws/game/:token", HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/game/" + engine.Token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "auth", "token": "not-a-jwt"}))
	assert.Equal(t, "error", readMessage(t, conn)["type"])
}
