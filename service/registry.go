package service

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"teyuna/repository"
)

// SessionRegistry 维护 token 到引擎实例的映射。
// 这把锁只保护映射表本身，每局游戏的动作由各自引擎里的锁串行化，
// 不同对局之间完全并行。
type SessionRegistry struct {
	mu    sync.Mutex
	games map[string]*GameEngine
}

// Sessions 进程内唯一的会话注册表
var Sessions = NewSessionRegistry()

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{games: make(map[string]*GameEngine)}
}

// Create 新建一局游戏并注册，返回引擎。token 取 uuid 去掉连字符后的前 8 位。
func (r *SessionRegistry) Create(hostID int64, hostName string, maxPlayers int) *GameEngine {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	engine := NewGameEngine(token, hostID, hostName, maxPlayers)

	r.mu.Lock()
	r.games[token] = engine
	r.mu.Unlock()

	zap.L().Info("创建对局", zap.String("token", token), zap.Int64("host", hostID))
	return engine
}

// Get 按 token 取引擎。本地没有时尝试从 Redis 快照恢复（比如进程重启后）。
func (r *SessionRegistry) Get(token string) (*GameEngine, bool) {
	r.mu.Lock()
	if engine, ok := r.games[token]; ok {
		r.mu.Unlock()
		return engine, true
	}
	r.mu.Unlock()

	snap, err := repository.LoadGameSnapshot(token)
	if err != nil || snap == nil {
		return nil, false
	}

	engine := RestoreEngine(snap)

	r.mu.Lock()
	defer r.mu.Unlock()
	// 并发恢复时以先放进去的为准
	if existing, ok := r.games[token]; ok {
		return existing, true
	}
	r.games[token] = engine
	zap.L().Info("从快照恢复对局", zap.String("token", token))
	return engine, true
}

// Remove 注销一局游戏。
func (r *SessionRegistry) Remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, token)
}

// GamesOf 列出某个用户参与的所有对局。
func (r *SessionRegistry) GamesOf(userID int64) []*GameEngine {
	r.mu.Lock()
	engines := make([]*GameEngine, 0, len(r.games))
	for _, e := range r.games {
		engines = append(engines, e)
	}
	r.mu.Unlock()

	var result []*GameEngine
	for _, e := range engines {
		if e.IsParticipant(userID) {
			result = append(result, e)
		}
	}
	return result
}
