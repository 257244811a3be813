package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"teyuna/dto"
)

var (
	Rdb *redis.Client
	Ctx = context.Background()
)

// InitRedis 初始化 Redis 连接，连不上直接退出。
func InitRedis(addr, password string, db int) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := Rdb.Ping(Ctx).Result(); err != nil {
		zap.L().Fatal("Redis 连接失败", zap.String("addr", addr), zap.Error(err))
	}
	zap.L().Info("✅ Redis 连接成功", zap.String("addr", addr))
}

func gameStateKey(token string) string {
	return fmt.Sprintf("game:%s:state", token)
}

// SaveGameSnapshot 把整局快照写进 Redis，每次成功的动作之后都会调用，
// 保证下一次读到的一定是最新状态。
func SaveGameSnapshot(snap *dto.GameSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("快照序列化失败: %w", err)
	}
	if err := Rdb.Set(Ctx, gameStateKey(snap.Token), data, 0).Err(); err != nil {
		return fmt.Errorf("快照写入 Redis 失败: %w", err)
	}
	return nil
}

// LoadGameSnapshot 读取一局快照，没有时返回 (nil, nil)。
func LoadGameSnapshot(token string) (*dto.GameSnapshot, error) {
	data, err := Rdb.Get(Ctx, gameStateKey(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("快照读取失败: %w", err)
	}

	var snap dto.GameSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("快照解析失败: %w", err)
	}
	return &snap, nil
}

// DeleteGameSnapshot 删除一局快照。
func DeleteGameSnapshot(token string) error {
	return Rdb.Del(Ctx, gameStateKey(token)).Err()
}
