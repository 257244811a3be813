package logger

import "go.uber.org/zap"

// Init 初始化全局 zap logger，之后各处直接用 zap.L()。
func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}
