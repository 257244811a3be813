package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"teyuna/entities"
)

func newTestEngine(seed uint64, maxPlayers int) *GameEngine {
	return newGameEngine("testgame", 1, "host", maxPlayers, rand.New(rand.NewSource(seed)))
}

// newActiveEngine 三人对局，已开始
func newActiveEngine(t *testing.T, seed uint64) *GameEngine {
	t.Helper()
	e := newTestEngine(seed, 4)
	_, err := e.Join(2, "ana")
	require.NoError(t, err)
	_, err = e.Join(3, "beto")
	require.NoError(t, err)
	require.NoError(t, e.Start(1))
	return e
}

func TestJoinAssignsColorsAndOrder(t *testing.T) {
	e := newTestEngine(1, 4)

	p2, err := e.Join(2, "ana")
	require.NoError(t, err)
	p3, err := e.Join(3, "beto")
	require.NoError(t, err)

	colors := map[entities.PlayerColor]bool{}
	for _, p := range e.Players {
		assert.False(t, colors[p.Color], "颜色不能重复")
		colors[p.Color] = true
	}
	assert.Equal(t, 1, p2.TurnOrder)
	assert.Equal(t, 2, p3.TurnOrder)
}

func TestJoinIdempotent(t *testing.T) {
	e := newTestEngine(1, 4)

	first, err := e.Join(2, "ana")
	require.NoError(t, err)
	again, err := e.Join(2, "ana")
	require.NoError(t, err)

	assert.Same(t, first, again, "重复加入返回同一个座位")
	assert.Len(t, e.Players, 2)
}

func TestJoinCapacity(t *testing.T) {
	e := newTestEngine(1, 3)
	_, err := e.Join(2, "ana")
	require.NoError(t, err)
	_, err = e.Join(3, "beto")
	require.NoError(t, err)

	_, err = e.Join(4, "cata")
	assert.Equal(t, entities.ErrCapacityExceeded, entities.KindOf(err))
	assert.Len(t, e.Players, 3)
}

func TestJoinAfterStartFails(t *testing.T) {
	e := newActiveEngine(t, 1)
	_, err := e.Join(9, "tarde")
	assert.Equal(t, entities.ErrCapacityExceeded, entities.KindOf(err))
}

func TestStartRequiresHost(t *testing.T) {
	e := newTestEngine(1, 4)
	e.Join(2, "ana")
	e.Join(3, "beto")

	err := e.Start(2)
	assert.Equal(t, entities.ErrPrecondition, entities.KindOf(err))
	assert.Equal(t, entities.StatusWaiting, e.Status)
}

func TestStartRequiresThreePlayers(t *testing.T) {
	e := newTestEngine(1, 4)
	e.Join(2, "ana")

	err := e.Start(1)
	assert.Equal(t, entities.ErrPrecondition, entities.KindOf(err))
	assert.Equal(t, entities.StatusWaiting, e.Status)
}

// 场景：4 人房开 3 人局，开始后状态变 active，顺位是这三个人的某个排列
func TestStartShufflesTurnOrder(t *testing.T) {
	e := newActiveEngine(t, 5)

	assert.Equal(t, entities.StatusActive, e.Status)
	assert.Zero(t, e.CurrentTurn)

	seen := map[int]bool{}
	for _, p := range e.Players {
		assert.GreaterOrEqual(t, p.TurnOrder, 0)
		assert.Less(t, p.TurnOrder, 3)
		assert.False(t, seen[p.TurnOrder])
		seen[p.TurnOrder] = true
	}

	last := e.GameLog[len(e.GameLog)-1]
	assert.Equal(t, entities.LogGameStarted, last.Type)
	assert.ElementsMatch(t, []int64{1, 2, 3}, last.TurnOrder)
}

func TestRollDiceTurnGate(t *testing.T) {
	e := newActiveEngine(t, 2)
	current := e.currentPlayer()

	var other *entities.Player
	for _, p := range e.Players {
		if p != current {
			other = p
			break
		}
	}

	_, _, err := e.RollDice(other.UserID)
	assert.Equal(t, entities.ErrPrecondition, entities.KindOf(err))
	assert.Empty(t, e.LastDiceRoll, "失败的动作不留痕迹")

	die1, die2, err := e.RollDice(current.UserID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, die1, 1)
	assert.LessOrEqual(t, die1, 6)
	assert.GreaterOrEqual(t, die2, 1)
	assert.LessOrEqual(t, die2, 6)
	assert.Equal(t, []int{die1, die2}, e.LastDiceRoll)
}

func TestRollSevenSkipsDistribution(t *testing.T) {
	e := newActiveEngine(t, 3)
	current := e.currentPlayer()

	// 放几个建筑，保证有东西可以分
	for i := range e.Board.Vertices {
		if e.Board.Vertices[i].Building == "" {
			e.Board.Vertices[i].Building = entities.BuildingBohio
			e.Board.Vertices[i].PlayerID = current.UserID
			break
		}
	}
	before := make(map[int64]entities.ResourceSet)
	for _, p := range e.Players {
		before[p.UserID] = p.Resources
	}

	e.applyRoll(current, 3, 4)

	for _, p := range e.Players {
		assert.Equal(t, before[p.UserID], p.Resources, "掷出 7 不分发任何资源")
	}
	assert.Equal(t, []int{3, 4}, e.LastDiceRoll)
}

// 场景：同一个点数命中两块地，两块地上都有自己的建筑，两份产出叠加
func TestDistributionAcrossTwoHexes(t *testing.T) {
	e := newActiveEngine(t, 4)
	player := e.Players[1]

	// 找一个出现在两块地上的点数
	byToken := make(map[int][]*entities.HexTile)
	for i := range e.Board.Hexes {
		hex := &e.Board.Hexes[i]
		if hex.NumberToken != 0 {
			byToken[hex.NumberToken] = append(byToken[hex.NumberToken], hex)
		}
	}
	var token int
	var pair []*entities.HexTile
	for n, hexes := range byToken {
		if len(hexes) == 2 {
			token, pair = n, hexes
			break
		}
	}
	require.NotZero(t, token)

	// 两块地上各放一个圆屋，顶点不能是同一个
	first := pair[0].VertexIDs[0]
	second := -1
	for _, vid := range pair[1].VertexIDs {
		if vid != first {
			second = vid
			break
		}
	}
	require.NotEqual(t, -1, second)
	e.Board.Vertices[first].Building = entities.BuildingBohio
	e.Board.Vertices[first].PlayerID = player.UserID
	e.Board.Vertices[second].Building = entities.BuildingBohio
	e.Board.Vertices[second].PlayerID = player.UserID

	e.distributeResources(token)

	total := player.Resources.Gold + player.Resources.Stone + player.Resources.Cotton +
		player.Resources.Maize + player.Resources.Wood
	assert.Equal(t, 2, total, "两块地各出一份")
}

func TestDistributionTempleYieldsDouble(t *testing.T) {
	e := newActiveEngine(t, 6)
	player := e.Players[0]

	var hex *entities.HexTile
	for i := range e.Board.Hexes {
		if e.Board.Hexes[i].NumberToken != 0 {
			hex = &e.Board.Hexes[i]
			break
		}
	}
	require.NotNil(t, hex)
	resource, ok := hex.Terrain.Resource()
	require.True(t, ok)

	vid := hex.VertexIDs[0]
	e.Board.Vertices[vid].Building = entities.BuildingTemplo
	e.Board.Vertices[vid].PlayerID = player.UserID

	e.distributeResources(hex.NumberToken)
	assert.Equal(t, 2, player.Resources.Get(resource))
}

func TestDistributionSkipsConquistadorHex(t *testing.T) {
	e := newActiveEngine(t, 7)
	player := e.Players[0]

	var hex *entities.HexTile
	for i := range e.Board.Hexes {
		if e.Board.Hexes[i].NumberToken != 0 {
			hex = &e.Board.Hexes[i]
			break
		}
	}
	require.NotNil(t, hex)

	vid := hex.VertexIDs[0]
	e.Board.Vertices[vid].Building = entities.BuildingBohio
	e.Board.Vertices[vid].PlayerID = player.UserID

	// 把征服者挪到这块地上，产出被压制
	hex.HasConquistador = true
	e.distributeResources(hex.NumberToken)

	assert.Equal(t, entities.ResourceSet{}, player.Resources)
}

// 场景：恰好有 1 石 1 木，修一条路后两种资源都清零
func TestBuildRoadDeductsExactCost(t *testing.T) {
	e := newActiveEngine(t, 8)
	player := e.Players[0]
	player.Resources = entities.ResourceSet{Stone: 1, Wood: 1}

	require.NoError(t, e.Build(player.UserID, entities.BuildingCamino, 0))

	assert.Equal(t, entities.ResourceSet{}, player.Resources)
	edge := e.Board.EdgeByID(0)
	assert.True(t, edge.HasRoad)
	assert.Equal(t, player.UserID, edge.PlayerID)
}

func TestBuildRoadOccupiedEdge(t *testing.T) {
	e := newActiveEngine(t, 9)
	p1, p2 := e.Players[0], e.Players[1]
	p1.Resources = entities.ResourceSet{Stone: 1, Wood: 1}
	p2.Resources = entities.ResourceSet{Stone: 1, Wood: 1}

	require.NoError(t, e.Build(p1.UserID, entities.BuildingCamino, 10))

	err := e.Build(p2.UserID, entities.BuildingCamino, 10)
	assert.Equal(t, entities.ErrInvalidPosition, entities.KindOf(err))
	assert.Equal(t, entities.ResourceSet{Stone: 1, Wood: 1}, p2.Resources, "放不下就一分不扣")
	assert.Equal(t, p1.UserID, e.Board.EdgeByID(10).PlayerID)
}

func TestBuildInsufficientResources(t *testing.T) {
	e := newActiveEngine(t, 10)
	player := e.Players[0]

	before := e.Snapshot()
	err := e.Build(player.UserID, entities.BuildingBohio, 0)

	assert.Equal(t, entities.ErrInsufficientRes, entities.KindOf(err))
	assert.Equal(t, before, e.Snapshot(), "失败的动作不改变任何状态")
}

func TestBuildBohioAwardsPoint(t *testing.T) {
	e := newActiveEngine(t, 11)
	player := e.Players[0]
	player.Resources = entities.ResourceSet{Stone: 1, Wood: 1, Cotton: 1, Maize: 1}

	require.NoError(t, e.Build(player.UserID, entities.BuildingBohio, 5))

	assert.Equal(t, 1, player.VictoryPoints)
	assert.Equal(t, entities.BuildingBohio, e.Board.VertexByID(5).Building)
	assert.Equal(t, entities.ResourceSet{}, player.Resources)
}

// 场景：有 3 金 2 玉米和自己的圆屋，升级成神庙后建筑分从 1 变 2
func TestBuildTemploUpgrade(t *testing.T) {
	e := newActiveEngine(t, 12)
	player := e.Players[0]
	player.Resources = entities.ResourceSet{Stone: 1, Wood: 1, Cotton: 1, Maize: 1}
	require.NoError(t, e.Build(player.UserID, entities.BuildingBohio, 20))
	require.Equal(t, 1, player.VictoryPoints)

	player.Resources = entities.ResourceSet{Gold: 3, Maize: 2}
	require.NoError(t, e.Build(player.UserID, entities.BuildingTemplo, 20))

	assert.Equal(t, entities.BuildingTemplo, e.Board.VertexByID(20).Building)
	assert.Equal(t, 2, player.VictoryPoints)
	assert.Equal(t, entities.ResourceSet{}, player.Resources)
}

func TestBuildTemploRequiresOwnBohio(t *testing.T) {
	e := newActiveEngine(t, 13)
	p1, p2 := e.Players[0], e.Players[1]
	p2.Resources = entities.ResourceSet{Gold: 3, Maize: 2}

	// 空顶点不能直接建神庙
	err := e.Build(p2.UserID, entities.BuildingTemplo, 30)
	assert.Equal(t, entities.ErrInvalidPosition, entities.KindOf(err))

	// 别人的圆屋也不行
	e.Board.Vertices[30].Building = entities.BuildingBohio
	e.Board.Vertices[30].PlayerID = p1.UserID
	err = e.Build(p2.UserID, entities.BuildingTemplo, 30)
	assert.Equal(t, entities.ErrInvalidPosition, entities.KindOf(err))
	assert.Equal(t, entities.ResourceSet{Gold: 3, Maize: 2}, p2.Resources)
}

func TestBuyDevelopmentCard(t *testing.T) {
	e := newActiveEngine(t, 14)
	player := e.Players[0]
	player.Resources = entities.ResourceSet{Gold: 1, Cotton: 1, Maize: 1}
	e.DevelopmentDeck = []entities.DevelopmentCardType{entities.CardGuerreroNaoma}

	card, err := e.BuyDevelopmentCard(player.UserID)
	require.NoError(t, err)

	assert.Equal(t, entities.CardGuerreroNaoma, card)
	assert.Equal(t, []entities.DevelopmentCardType{entities.CardGuerreroNaoma}, player.DevelopmentCards)
	assert.Equal(t, 1, player.WarriorCards)
	assert.Equal(t, entities.ResourceSet{}, player.Resources)
	assert.Empty(t, e.DevelopmentDeck)
}

func TestBuyDevelopmentCardDeckExhausted(t *testing.T) {
	e := newActiveEngine(t, 15)
	player := e.Players[0]
	player.Resources = entities.ResourceSet{Gold: 1, Cotton: 1, Maize: 1}
	e.DevelopmentDeck = nil

	_, err := e.BuyDevelopmentCard(player.UserID)
	assert.Equal(t, entities.ErrDeckExhausted, entities.KindOf(err))
	assert.Equal(t, entities.ResourceSet{Gold: 1, Cotton: 1, Maize: 1}, player.Resources)
}

func TestBuyDevelopmentCardInsufficient(t *testing.T) {
	e := newActiveEngine(t, 16)
	player := e.Players[0]

	_, err := e.BuyDevelopmentCard(player.UserID)
	assert.Equal(t, entities.ErrInsufficientRes, entities.KindOf(err))
}

// 场景：9 分的玩家抽到胜利点卡，立刻获胜
func TestVictoryByDevelopmentCard(t *testing.T) {
	e := newActiveEngine(t, 17)
	player := e.Players[1]
	player.VictoryPoints = 9
	player.Resources = entities.ResourceSet{Gold: 1, Cotton: 1, Maize: 1}
	e.DevelopmentDeck = []entities.DevelopmentCardType{entities.CardAvanceAncestral}

	card, err := e.BuyDevelopmentCard(player.UserID)
	require.NoError(t, err)

	assert.Equal(t, entities.CardAvanceAncestral, card)
	assert.Equal(t, 1, player.VictoryCards)
	assert.Equal(t, entities.StatusFinished, e.Status)
	assert.Equal(t, player.UserID, e.WinnerID)

	last := e.GameLog[len(e.GameLog)-1]
	assert.Equal(t, entities.LogGameWon, last.Type)
	assert.Equal(t, 10, last.Points)
}

func TestVictoryOnlyOnBuildOrBuy(t *testing.T) {
	e := newActiveEngine(t, 18)
	current := e.currentPlayer()
	current.VictoryPoints = 10

	_, _, err := e.RollDice(current.UserID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusActive, e.Status, "掷骰不触发胜利判定")

	require.NoError(t, e.EndTurn(current.UserID))
	assert.Equal(t, entities.StatusActive, e.Status, "结束回合不触发胜利判定")

	// 下一次建造才会结算
	current.Resources = entities.ResourceSet{Stone: 1, Wood: 1}
	require.NoError(t, e.Build(current.UserID, entities.BuildingCamino, 0))
	assert.Equal(t, entities.StatusFinished, e.Status)
	assert.Equal(t, current.UserID, e.WinnerID)
}

func TestVictoryFirstInJoinOrderWins(t *testing.T) {
	e := newActiveEngine(t, 19)
	// 两个人同时到 10 分，按加入顺序靠前的赢
	e.Players[0].VictoryPoints = 9
	e.Players[2].VictoryPoints = 11
	e.Players[0].Resources = entities.ResourceSet{Stone: 1, Wood: 1, Cotton: 1, Maize: 1}

	require.NoError(t, e.Build(e.Players[0].UserID, entities.BuildingBohio, 40))

	assert.Equal(t, e.Players[0].UserID, e.WinnerID)
}

func TestEndTurnAdvancesAndClearsRoll(t *testing.T) {
	e := newActiveEngine(t, 20)
	current := e.currentPlayer()

	_, _, err := e.RollDice(current.UserID)
	require.NoError(t, err)
	require.NotEmpty(t, e.LastDiceRoll)

	require.NoError(t, e.EndTurn(current.UserID))

	assert.Equal(t, 1, e.CurrentTurn)
	assert.Empty(t, e.LastDiceRoll)
	assert.NotEqual(t, current.UserID, e.currentPlayer().UserID)

	// 上一个人不能再结束别人的回合
	err = e.EndTurn(current.UserID)
	assert.Equal(t, entities.ErrPrecondition, entities.KindOf(err))
}

func TestActionsFailWhenNotActive(t *testing.T) {
	e := newTestEngine(21, 4)

	_, _, err := e.RollDice(1)
	assert.Equal(t, entities.ErrPrecondition, entities.KindOf(err))
	err = e.Build(1, entities.BuildingCamino, 0)
	assert.Equal(t, entities.ErrPrecondition, entities.KindOf(err))
	_, err = e.BuyDevelopmentCard(1)
	assert.Equal(t, entities.ErrPrecondition, entities.KindOf(err))
	err = e.EndTurn(1)
	assert.Equal(t, entities.ErrPrecondition, entities.KindOf(err))
}

func TestResourcesNeverNegative(t *testing.T) {
	e := newActiveEngine(t, 22)
	current := e.currentPlayer()

	// 随便打一串动作，失败的忽略
	for turn := 0; turn < 30; turn++ {
		e.RollDice(current.UserID)
		e.Build(current.UserID, entities.BuildingCamino, turn)
		e.BuyDevelopmentCard(current.UserID)
		e.EndTurn(current.UserID)
		if e.Status != entities.StatusActive {
			break
		}
		current = e.currentPlayer()

		for _, p := range e.Players {
			assert.GreaterOrEqual(t, p.Resources.Gold, 0)
			assert.GreaterOrEqual(t, p.Resources.Stone, 0)
			assert.GreaterOrEqual(t, p.Resources.Cotton, 0)
			assert.GreaterOrEqual(t, p.Resources.Maize, 0)
			assert.GreaterOrEqual(t, p.Resources.Wood, 0)
		}
	}
}

func TestLargestArmyAward(t *testing.T) {
	e := newActiveEngine(t, 23)
	player := e.Players[2]
	player.WarriorCards = 2
	player.Resources = entities.ResourceSet{Gold: 1, Cotton: 1, Maize: 1}
	e.DevelopmentDeck = []entities.DevelopmentCardType{entities.CardGuerreroNaoma}

	_, err := e.BuyDevelopmentCard(player.UserID)
	require.NoError(t, err)

	assert.Equal(t, 3, player.WarriorCards)
	assert.True(t, player.HasLargestArmy)
	assert.Equal(t, 2, player.TotalPoints(), "最大军队值 2 分")
}

func TestLongestRoadAward(t *testing.T) {
	e := newActiveEngine(t, 24)
	player := e.Players[0]
	player.Resources = entities.ResourceSet{Stone: 5, Wood: 5}

	// 0 号地块周边的 0..4 号边是一条连续的链
	for edgeID := 0; edgeID < 5; edgeID++ {
		require.NoError(t, e.Build(player.UserID, entities.BuildingCamino, edgeID))
	}

	assert.True(t, player.HasLongestPath)
	assert.Equal(t, 2, player.TotalPoints())
}

func TestSnapshotRoundTrip(t *testing.T) {
	e := newActiveEngine(t, 25)
	e.Players[0].Resources = entities.ResourceSet{Gold: 2, Wood: 1}

	snap := e.Snapshot()
	restored := RestoreEngine(snap)

	assert.Equal(t, snap, restored.Snapshot(), "快照恢复后再导出应一致")

	// 快照是深拷贝，改引擎不影响已导出的快照
	e.Players[0].Resources.Gold = 99
	assert.Equal(t, 2, snap.Players[0].Resources.Gold)
}

func TestStateResponseHidesHands(t *testing.T) {
	e := newActiveEngine(t, 26)
	e.Players[0].DevelopmentCards = []entities.DevelopmentCardType{entities.CardSabiduriaMama}

	resp := e.StateResponse()

	assert.Equal(t, 1, resp.Players[0].DevelopmentCardsCount)
	assert.Equal(t, 25, resp.DeckRemaining)
	assert.NotZero(t, resp.CurrentPlayerID)
}
