package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"teyuna/dto"
	"teyuna/service"
	"teyuna/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// 聊天消息的最大长度（按字符数）
const maxChatLength = 500

// truncateMessage 按字符截断，不会把多字节字符切成半个。
func truncateMessage(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// gameRoom 一局游戏的所有观战连接。每个房间一把自己的锁，
// 不同对局的广播互不阻塞。
type gameRoom struct {
	mu    sync.Mutex
	conns []dto.PlayerConn
}

// hub 对局 token -> 房间。这把读写锁只保护映射表。
var hub = struct {
	sync.RWMutex
	rooms map[string]*gameRoom
}{rooms: make(map[string]*gameRoom)}

func roomOf(token string) *gameRoom {
	hub.RLock()
	room, ok := hub.rooms[token]
	hub.RUnlock()
	if ok {
		return room
	}

	hub.Lock()
	defer hub.Unlock()
	if room, ok := hub.rooms[token]; ok {
		return room
	}
	room = &gameRoom{}
	hub.rooms[token] = room
	return room
}

// buildMessage 统一的消息格式：type + 任意负载字段
func buildMessage(msgType string, data map[string]interface{}) []byte {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["type"] = msgType
	msg, _ := json.Marshal(data)
	return msg
}

// send 给单个连接发消息。单发和广播共用房间锁，
// 保证同一条连接上不会出现并发写。
func (r *gameRoom) send(conn *websocket.Conn, message []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conn.WriteMessage(websocket.TextMessage, message)
}

// broadcast 给房间里所有连接发消息，发不出去的连接当场移除。
func (r *gameRoom) broadcast(message []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newList := r.conns[:0]
	for _, pc := range r.conns {
		if err := pc.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			zap.L().Debug("广播失败，移除连接", zap.Int64("user_id", pc.UserID))
			pc.Conn.Close()
		} else {
			newList = append(newList, pc)
		}
	}
	r.conns = newList
}

func (r *gameRoom) add(pc dto.PlayerConn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 同一用户重连时替换旧连接
	for i := range r.conns {
		if r.conns[i].UserID == pc.UserID {
			r.conns[i].Conn.Close()
			r.conns[i] = pc
			return
		}
	}
	r.conns = append(r.conns, pc)
}

func (r *gameRoom) remove(conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newList := r.conns[:0]
	for _, pc := range r.conns {
		if pc.Conn != conn {
			newList = append(newList, pc)
		}
	}
	r.conns = newList
}

// BroadcastGameUpdate 把一次成功动作后的最新公开状态推给整局的连接。
// 引擎自己不推送，由控制器在动作成功后调用这里。
func BroadcastGameUpdate(token, updateType string, state *dto.GameStateResponse) {
	roomOf(token).broadcast(buildMessage("game_update", map[string]interface{}{
		"update": updateType,
		"state":  state,
	}))
}

type authMessage struct {
	Token string `mapstructure:"token"`
}

// HandleWebSocket 观战连接入口。客户端连上后第一条消息必须是
// {"type":"auth","token":"<jwt>"}，之后才会收到对局更新。
func HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("WebSocket 升级失败", zap.Error(err))
		return
	}
	defer conn.Close()

	gameToken := c.Param("token")
	if _, ok := service.Sessions.Get(gameToken); !ok {
		conn.WriteMessage(websocket.TextMessage, buildMessage("error", map[string]interface{}{
			"message": "对局不存在",
		}))
		return
	}

	// 等认证消息
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return
	}
	var msgMap map[string]interface{}
	if err := json.Unmarshal(raw, &msgMap); err != nil || msgMap["type"] != "auth" {
		conn.WriteMessage(websocket.TextMessage, buildMessage("error", map[string]interface{}{
			"message": "需要先认证",
		}))
		return
	}
	var auth authMessage
	if err := mapstructure.Decode(msgMap, &auth); err != nil || auth.Token == "" {
		conn.WriteMessage(websocket.TextMessage, buildMessage("error", map[string]interface{}{
			"message": "需要先认证",
		}))
		return
	}
	claims, err := utils.ParseAccessToken(auth.Token)
	if err != nil {
		conn.WriteMessage(websocket.TextMessage, buildMessage("error", map[string]interface{}{
			"message": "令牌无效",
		}))
		return
	}

	room := roomOf(gameToken)
	room.add(dto.PlayerConn{
		UserID:   claims.UserID,
		Username: claims.Username,
		Conn:     conn,
		Online:   true,
	})
	defer func() {
		room.remove(conn)
		room.broadcast(buildMessage("player_disconnected", map[string]interface{}{
			"user_id": claims.UserID,
		}))
	}()

	room.send(conn, buildMessage("connected", map[string]interface{}{
		"user_id":    claims.UserID,
		"game_token": gameToken,
	}))
	room.broadcast(buildMessage("player_connected", map[string]interface{}{
		"user_id": claims.UserID,
	}))

	zap.L().Info("观战连接建立",
		zap.String("token", gameToken),
		zap.Int64("user_id", claims.UserID))

	listenLoop(room, conn, claims.UserID)
}

// listenLoop 处理客户端后续消息。对局动作走 HTTP 接口，
// 这里只有心跳和聊天。
func listenLoop(room *gameRoom, conn *websocket.Conn, userID int64) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msgMap map[string]interface{}
		if err := json.Unmarshal(raw, &msgMap); err != nil {
			continue
		}

		switch msgMap["type"] {
		case "ping":
			room.send(conn, buildMessage("pong", nil))

		case "chat":
			var chat dto.ChatMessage
			if err := mapstructure.Decode(msgMap, &chat); err != nil {
				continue
			}
			chat.Message = truncateMessage(chat.Message, maxChatLength)
			room.broadcast(buildMessage("chat", map[string]interface{}{
				"user_id": userID,
				"message": chat.Message,
			}))
		}
	}
}
