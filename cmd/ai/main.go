package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"teyuna/agent"
	"teyuna/logger"
)

func main() {
	var (
		baseURL  = flag.String("server", "http://127.0.0.1:8000", "后端地址")
		token    = flag.String("game", "", "要加入的对局 token，留空则新建一局")
		username = flag.String("user", "ai_bot", "AI 用户名")
		password = flag.String("password", "ai-bot-password", "AI 密码")
	)
	flag.Parse()

	logger.Init()
	defer zap.L().Sync()

	client := agent.NewClient(*baseURL)

	// 没注册过就先注册
	if err := client.Login(*username, *password); err != nil {
		email := fmt.Sprintf("%s@teyuna.local", *username)
		if err := client.Register(*username, email, *password); err != nil {
			zap.L().Fatal("登录和注册都失败", zap.Error(err))
		}
	}

	if me, err := client.Me(); err == nil {
		zap.L().Info("登录成功",
			zap.String("username", me.Username),
			zap.Int("games_played", me.GamesPlayed),
			zap.Int("games_won", me.GamesWon))
	}

	gameToken := *token
	if gameToken == "" {
		created, err := client.CreateGame(4)
		if err != nil {
			zap.L().Fatal("创建对局失败", zap.Error(err))
		}
		gameToken = created.Token
		zap.L().Info("创建了新对局，等其他人加入", zap.String("token", gameToken))
	} else {
		if _, err := client.JoinGame(gameToken); err != nil {
			zap.L().Fatal("加入对局失败", zap.Error(err))
		}
		zap.L().Info("加入对局", zap.String("token", gameToken))
	}

	bot := agent.New(client, gameToken)
	if err := bot.Run(); err != nil {
		zap.L().Fatal("AI 运行失败", zap.Error(err))
	}
}
