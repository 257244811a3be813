package router

import (
	"github.com/gin-gonic/gin"

	"teyuna/controller"
	"teyuna/middleware"
	"teyuna/ws"
)

func InitRouter(r *gin.Engine) {
	// 用户接口
	auth := r.Group("/auth")
	{
		auth.POST("/register", controller.Register)
		auth.POST("/login", controller.Login)
		auth.POST("/refresh", controller.RefreshToken)
		auth.GET("/me", middleware.AuthMiddleware(), controller.Me)
		auth.GET("/leaderboard", controller.Leaderboard)
	}

	// 对局接口，全部要求已登录
	games := r.Group("/games", middleware.AuthMiddleware())
	{
		games.POST("", controller.CreateGame)
		games.GET("", controller.ListMyGames)
		games.POST("/join", controller.JoinGame)
		games.GET("/:token", controller.GetGame)
		games.POST("/:token/start", controller.StartGame)
		games.POST("/:token/roll", controller.RollDice)
		games.POST("/:token/build", controller.Build)
		games.POST("/:token/buy-card", controller.BuyDevelopmentCard)
		games.POST("/:token/end-turn", controller.EndTurn)
	}

	// WebSocket 观战路由，认证在第一条消息里完成
	r.GET("/ws/game/:token", ws.HandleWebSocket)
}
