package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teyuna/config"
	"teyuna/logger"
	"teyuna/repository"
	"teyuna/router"
)

func main() {
	logger.Init()
	defer zap.L().Sync()

	if err := config.Load(); err != nil {
		zap.L().Fatal("配置加载失败", zap.Error(err))
	}

	repository.InitRedis(config.C.RedisAddr, config.C.RedisPassword, config.C.RedisDB)
	repository.InitMySQL(config.C.MySQLDSN)

	r := gin.Default()

	// 允许所有来源的跨域请求
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          config.C.CORSMaxAge,
	}))

	router.InitRouter(r)

	zap.L().Info("服务启动", zap.String("addr", config.C.ListenAddr))
	if err := r.Run(config.C.ListenAddr); err != nil {
		zap.L().Fatal("服务退出", zap.Error(err))
	}
}
