package service

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"teyuna/entities"
)

// GameEngine 一局游戏的权威状态机。一个实例独占自己的全部可变状态，
// 所有动作都在同一把锁里执行；不同对局互不影响，各自并行。
// 动作全部 fail-closed：前置条件不满足时直接返回类型化错误，状态不动。
type GameEngine struct {
	mu  sync.Mutex
	rng *rand.Rand

	Token           string
	MaxPlayers      int
	Status          entities.GameStatus
	CurrentTurn     int
	WinnerID        int64
	Players         []*entities.Player
	Board           *entities.Board
	DevelopmentDeck []entities.DevelopmentCardType
	LastDiceRoll    []int
	GameLog         []entities.LogEntry
	CreatedAt       time.Time
}

// NewGameEngine 创建一局新游戏：生成棋盘、洗好发展卡堆，
// 房主占 0 号行动顺位和第一个颜色。
func NewGameEngine(token string, hostID int64, hostName string, maxPlayers int) *GameEngine {
	return newGameEngine(token, hostID, hostName, maxPlayers,
		rand.New(rand.NewSource(uint64(time.Now().UnixNano()))))
}

func newGameEngine(token string, hostID int64, hostName string, maxPlayers int, rng *rand.Rand) *GameEngine {
	e := &GameEngine{
		rng:        rng,
		Token:      token,
		MaxPlayers: maxPlayers,
		Status:     entities.StatusWaiting,
		Board:      generateBoard(rng),
		CreatedAt:  time.Now(),
	}

	deck := NewDevelopmentDeck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	e.DevelopmentDeck = deck

	host := &entities.Player{
		UserID:    hostID,
		Username:  hostName,
		Color:     entities.AvailableColors[0],
		TurnOrder: 0,
		IsHost:    true,
	}
	e.Players = append(e.Players, host)
	e.appendLog(entities.LogEntry{Type: entities.LogPlayerJoin, PlayerID: hostID})

	return e
}

// Join 加入对局。重复加入的用户直接拿回自己已有的座位，不报错也不重复占位。
func (e *GameEngine) Join(userID int64, username string) (*entities.Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p := e.playerByUserID(userID); p != nil {
		return p, nil
	}

	if e.Status != entities.StatusWaiting {
		return nil, entities.NewGameError(entities.ErrCapacityExceeded, "对局已经开始或结束")
	}
	if len(e.Players) >= e.MaxPlayers {
		return nil, entities.NewGameError(entities.ErrCapacityExceeded, "房间已满")
	}

	// 取调色板里第一个没被占用的颜色
	used := make(map[entities.PlayerColor]bool)
	for _, p := range e.Players {
		used[p.Color] = true
	}
	var color entities.PlayerColor
	for _, c := range entities.AvailableColors {
		if !used[c] {
			color = c
			break
		}
	}
	if color == "" {
		return nil, entities.NewGameError(entities.ErrCapacityExceeded, "没有可用颜色")
	}

	player := &entities.Player{
		UserID:    userID,
		Username:  username,
		Color:     color,
		TurnOrder: len(e.Players),
	}
	e.Players = append(e.Players, player)
	e.appendLog(entities.LogEntry{Type: entities.LogPlayerJoin, PlayerID: userID})

	zap.L().Info("玩家加入对局",
		zap.String("token", e.Token),
		zap.Int64("user_id", userID),
		zap.Int("players", len(e.Players)))

	return player, nil
}

// Start 开始对局，只有房主能调用，至少要 3 名玩家。
// 这是唯一一次随机化行动顺位的地方。
func (e *GameEngine) Start(userID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Status != entities.StatusWaiting {
		return entities.NewGameError(entities.ErrPrecondition, "对局不在等待状态")
	}
	host := e.playerByUserID(userID)
	if host == nil || !host.IsHost {
		return entities.NewGameError(entities.ErrPrecondition, "只有房主才能开始游戏")
	}
	if len(e.Players) < 3 {
		return entities.NewGameError(entities.ErrPrecondition, "至少需要 3 名玩家")
	}

	// 打乱顺位但不动 Players 切片本身，胜利判定仍按加入顺序遍历
	order := e.rng.Perm(len(e.Players))
	for i, p := range e.Players {
		p.TurnOrder = order[i]
	}

	e.Status = entities.StatusActive
	e.CurrentTurn = 0

	byOrder := make([]int64, len(e.Players))
	for _, p := range e.Players {
		byOrder[p.TurnOrder] = p.UserID
	}
	e.appendLog(entities.LogEntry{Type: entities.LogGameStarted, TurnOrder: byOrder})

	zap.L().Info("对局开始", zap.String("token", e.Token), zap.Int("players", len(e.Players)))
	return nil
}

// RollDice 掷两个骰子。只有当前顺位的玩家可以掷。
// 点数和不是 7 时立刻按棋盘分发资源；是 7 时跳过分发。
func (e *GameEngine) RollDice(userID int64) (int, int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Status != entities.StatusActive {
		return 0, 0, entities.NewGameError(entities.ErrPrecondition, "对局未开始")
	}
	current := e.currentPlayer()
	if current == nil || current.UserID != userID {
		return 0, 0, entities.NewGameError(entities.ErrPrecondition, "还没轮到你")
	}

	die1 := e.rng.Intn(6) + 1
	die2 := e.rng.Intn(6) + 1
	e.applyRoll(current, die1, die2)
	return die1, die2, nil
}

// applyRoll 记录一次掷骰结果并触发资源分发，掷骰本身与结算拆开便于测试。
func (e *GameEngine) applyRoll(player *entities.Player, die1, die2 int) {
	total := die1 + die2
	e.LastDiceRoll = []int{die1, die2}
	e.appendLog(entities.LogEntry{
		Type:     entities.LogDiceRoll,
		PlayerID: player.UserID,
		Dice:     []int{die1, die2},
		Total:    total,
	})

	// 7 意味着要移动征服者（由外部流程处理），不分发资源
	if total != 7 {
		e.distributeResources(total)
	}
}

// distributeResources 给所有与命中地块几何相邻、且有建筑的顶点主人发资源。
// 圆屋 1 份、神庙 2 份；被征服者压住的地块不产出。
// 同一次掷骰命中多块地时各块独立结算，份额叠加。
func (e *GameEngine) distributeResources(total int) {
	for i := range e.Board.Hexes {
		hex := &e.Board.Hexes[i]
		if hex.NumberToken != total || hex.HasConquistador {
			continue
		}
		resource, ok := hex.Terrain.Resource()
		if !ok {
			continue
		}
		for _, vid := range hex.VertexIDs {
			vertex := e.Board.VertexByID(vid)
			if vertex == nil || vertex.Building == "" || vertex.PlayerID == 0 {
				continue
			}
			player := e.playerByUserID(vertex.PlayerID)
			if player == nil {
				continue
			}
			amount := 1
			if vertex.Building == entities.BuildingTemplo {
				amount = 2
			}
			player.Resources.Add(resource, amount)
		}
	}
}

// Build 建造。造价与放置原子结算：放不下就一分资源都不扣。
func (e *GameEngine) Build(userID int64, building entities.BuildingType, positionID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Status != entities.StatusActive {
		return entities.NewGameError(entities.ErrPrecondition, "对局未开始")
	}
	player := e.playerByUserID(userID)
	if player == nil {
		return entities.NewGameError(entities.ErrPrecondition, "你不在这局游戏里")
	}

	cost, ok := BuildingCosts[building]
	if !ok {
		return entities.NewGameError(entities.ErrPrecondition, fmt.Sprintf("未知建筑类型 %s", building))
	}
	if !player.Resources.CanAfford(cost) {
		return entities.NewGameError(entities.ErrInsufficientRes, "资源不足")
	}

	// 先校验位置，全部通过后才落子、扣资源
	switch building {
	case entities.BuildingCamino:
		edge := e.Board.EdgeByID(positionID)
		if edge == nil {
			return entities.NewGameError(entities.ErrInvalidPosition, "边不存在")
		}
		if edge.HasRoad {
			return entities.NewGameError(entities.ErrInvalidPosition, "这条边已经有道路")
		}
		edge.HasRoad = true
		edge.PlayerID = userID

	case entities.BuildingBohio:
		vertex := e.Board.VertexByID(positionID)
		if vertex == nil {
			return entities.NewGameError(entities.ErrInvalidPosition, "顶点不存在")
		}
		if vertex.Building != "" {
			return entities.NewGameError(entities.ErrInvalidPosition, "这个顶点已经有建筑")
		}
		vertex.Building = entities.BuildingBohio
		vertex.PlayerID = userID
		player.VictoryPoints++

	case entities.BuildingTemplo:
		vertex := e.Board.VertexByID(positionID)
		if vertex == nil {
			return entities.NewGameError(entities.ErrInvalidPosition, "顶点不存在")
		}
		// 神庙只能升级自己已有的圆屋，不退圆屋的造价
		if vertex.Building != entities.BuildingBohio || vertex.PlayerID != userID {
			return entities.NewGameError(entities.ErrInvalidPosition, "这里没有你的圆屋可升级")
		}
		vertex.Building = entities.BuildingTemplo
		player.VictoryPoints++
	}

	player.Resources.Deduct(cost)
	e.appendLog(entities.LogEntry{
		Type:     entities.LogBuild,
		PlayerID: userID,
		Building: building,
		Position: positionID,
	})

	e.recomputeLongestRoad()
	e.checkVictory()
	return nil
}

// BuyDevelopmentCard 购买一张发展卡。抽到胜利点卡立即永久计分，
// 抽到战士卡计入最大军队的统计。
func (e *GameEngine) BuyDevelopmentCard(userID int64) (entities.DevelopmentCardType, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Status != entities.StatusActive {
		return "", entities.NewGameError(entities.ErrPrecondition, "对局未开始")
	}
	player := e.playerByUserID(userID)
	if player == nil {
		return "", entities.NewGameError(entities.ErrPrecondition, "你不在这局游戏里")
	}
	if !player.Resources.CanAfford(DevelopmentCardCost) {
		return "", entities.NewGameError(entities.ErrInsufficientRes, "资源不足")
	}
	if len(e.DevelopmentDeck) == 0 {
		return "", entities.NewGameError(entities.ErrDeckExhausted, "发展卡已经抽完")
	}

	player.Resources.Deduct(DevelopmentCardCost)

	card := e.DevelopmentDeck[len(e.DevelopmentDeck)-1]
	e.DevelopmentDeck = e.DevelopmentDeck[:len(e.DevelopmentDeck)-1]
	player.DevelopmentCards = append(player.DevelopmentCards, card)

	switch card {
	case entities.CardAvanceAncestral:
		player.VictoryCards++
	case entities.CardGuerreroNaoma:
		player.WarriorCards++
		e.recomputeLargestArmy()
	}

	e.appendLog(entities.LogEntry{Type: entities.LogBuyCard, PlayerID: userID, Card: card})
	e.checkVictory()
	return card, nil
}

// EndTurn 结束当前回合。只推进回合计数并清掉上一次掷骰，
// 不做胜利判定——分数只会在建造和买卡时变化。
func (e *GameEngine) EndTurn(userID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Status != entities.StatusActive {
		return entities.NewGameError(entities.ErrPrecondition, "对局未开始")
	}
	current := e.currentPlayer()
	if current == nil || current.UserID != userID {
		return entities.NewGameError(entities.ErrPrecondition, "还没轮到你")
	}

	e.CurrentTurn++
	e.LastDiceRoll = nil
	e.appendLog(entities.LogEntry{
		Type:     entities.LogEndTurn,
		PlayerID: userID,
		NewTurn:  e.CurrentTurn,
	})
	return nil
}

// checkVictory 按加入顺序扫描，第一个总分到 10 的玩家立刻获胜，
// 同一次扫描里不再继续找更高分的人。
func (e *GameEngine) checkVictory() {
	for _, p := range e.Players {
		total := p.TotalPoints()
		if total < VictoryPointsToWin {
			continue
		}
		e.Status = entities.StatusFinished
		e.WinnerID = p.UserID
		e.appendLog(entities.LogEntry{
			Type:     entities.LogGameWon,
			WinnerID: p.UserID,
			Points:   total,
		})
		zap.L().Info("对局结束",
			zap.String("token", e.Token),
			zap.Int64("winner", p.UserID),
			zap.Int("points", total))
		return
	}
}

// recomputeLongestRoad 重算最长道路归属：长度至少 5，
// 且必须严格超过现任持有者才能易主，平局维持现状。
func (e *GameEngine) recomputeLongestRoad() {
	lengths := make(map[int64]int, len(e.Players))
	var holder *entities.Player
	for _, p := range e.Players {
		lengths[p.UserID] = LongestRoadLength(e.Board, p.UserID)
		if p.HasLongestPath {
			holder = p
		}
	}

	threshold := LongestRoadMinimum
	if holder != nil {
		threshold = lengths[holder.UserID] + 1
	}

	var best *entities.Player
	bestLen := threshold - 1
	for _, p := range e.Players {
		if lengths[p.UserID] > bestLen {
			best = p
			bestLen = lengths[p.UserID]
		}
	}

	if best == nil || best == holder {
		return
	}
	if holder != nil {
		holder.HasLongestPath = false
	}
	best.HasLongestPath = true
}

// recomputeLargestArmy 重算最大军队归属，规则与最长道路一致：
// 至少 3 张战士卡，严格多于现任持有者才易主。
func (e *GameEngine) recomputeLargestArmy() {
	var holder *entities.Player
	for _, p := range e.Players {
		if p.HasLargestArmy {
			holder = p
		}
	}

	threshold := LargestArmyMinimum
	if holder != nil {
		threshold = holder.WarriorCards + 1
	}

	var best *entities.Player
	bestCount := threshold - 1
	for _, p := range e.Players {
		if p.WarriorCards > bestCount {
			best = p
			bestCount = p.WarriorCards
		}
	}

	if best == nil || best == holder {
		return
	}
	if holder != nil {
		holder.HasLargestArmy = false
	}
	best.HasLargestArmy = true
}

func (e *GameEngine) playerByUserID(userID int64) *entities.Player {
	for _, p := range e.Players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// currentPlayer 当前顺位的玩家：turn_order == current_turn mod 人数
func (e *GameEngine) currentPlayer() *entities.Player {
	if len(e.Players) == 0 {
		return nil
	}
	idx := e.CurrentTurn % len(e.Players)
	for _, p := range e.Players {
		if p.TurnOrder == idx {
			return p
		}
	}
	return nil
}

func (e *GameEngine) appendLog(entry entities.LogEntry) {
	e.GameLog = append(e.GameLog, entry)
}
