package dto

import "github.com/gorilla/websocket"

// PlayerConn 一条挂在对局上的连接
type PlayerConn struct {
	UserID   int64
	Username string
	Conn     *websocket.Conn
	Online   bool
}

// ChatMessage 客户端发来的聊天消息，经 mapstructure 解码
type ChatMessage struct {
	Message string `mapstructure:"message"`
}
