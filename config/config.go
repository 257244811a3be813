package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config 进程配置，全部来自环境变量，默认值够本地开发用。
type Config struct {
	ListenAddr    string        `env:"LISTEN_ADDR" envDefault:":8000"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	MySQLDSN      string        `env:"MYSQL_DSN" envDefault:"root:root@tcp(127.0.0.1:3306)/teyuna?parseTime=true"`
	AccessSecret  string        `env:"JWT_ACCESS_SECRET" envDefault:"access-secret"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET" envDefault:"refresh-secret"`
	CORSMaxAge    time.Duration `env:"CORS_MAX_AGE" envDefault:"12h"`
}

// C 全局配置实例
var C Config

// Load 解析环境变量。
func Load() error {
	if err := env.Parse(&C); err != nil {
		return fmt.Errorf("解析环境变量失败: %w", err)
	}
	return nil
}
