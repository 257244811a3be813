package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teyuna/dto"
	"teyuna/entities"
	"teyuna/middleware"
	"teyuna/repository"
	"teyuna/service"
	"teyuna/ws"
)

func CreateGame(c *gin.Context) {
	var req dto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_players 必须在 3 到 4 之间"})
		return
	}

	userID, username := middleware.CurrentUser(c)
	engine := service.Sessions.Create(userID, username, req.MaxPlayers)
	saveSnapshot(engine)

	state := engine.StateResponse()
	c.JSON(http.StatusCreated, gin.H{
		"status_code": http.StatusCreated,
		"msg":         "对局创建成功",
		"data": dto.CreateGameResponse{
			Token:          state.Token,
			Status:         string(state.Status),
			MaxPlayers:     state.MaxPlayers,
			CurrentPlayers: len(state.Players),
		},
	})
}

func JoinGame(c *gin.Context) {
	var req dto.JoinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}

	engine, ok := service.Sessions.Get(req.Token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "对局不存在"})
		return
	}

	userID, username := middleware.CurrentUser(c)
	if _, err := engine.Join(userID, username); err != nil {
		respondGameError(c, err)
		return
	}

	afterAction(engine, "player_joined")
	respondState(c, engine)
}

func GetGame(c *gin.Context) {
	engine, ok := engineFromPath(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUser(c)
	if !engine.IsParticipant(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "你不在这局游戏里"})
		return
	}
	respondState(c, engine)
}

func ListMyGames(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	var games []dto.CreateGameResponse
	for _, engine := range service.Sessions.GamesOf(userID) {
		state := engine.StateResponse()
		games = append(games, dto.CreateGameResponse{
			Token:          state.Token,
			Status:         string(state.Status),
			MaxPlayers:     state.MaxPlayers,
			CurrentPlayers: len(state.Players),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        games,
	})
}

func StartGame(c *gin.Context) {
	engine, ok := engineFromPath(c)
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUser(c)
	if err := engine.Start(userID); err != nil {
		respondGameError(c, err)
		return
	}

	afterAction(engine, "game_started")
	respondState(c, engine)
}

func RollDice(c *gin.Context) {
	engine, ok := engineFromPath(c)
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUser(c)
	die1, die2, err := engine.RollDice(userID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	afterAction(engine, "dice_rolled")
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        dto.RollDiceResponse{Dice1: die1, Dice2: die2, Total: die1 + die2},
	})
}

func Build(c *gin.Context) {
	engine, ok := engineFromPath(c)
	if !ok {
		return
	}

	var req dto.BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}

	userID, _ := middleware.CurrentUser(c)
	if err := engine.Build(userID, req.BuildingType, *req.PositionID); err != nil {
		respondGameError(c, err)
		return
	}

	afterAction(engine, "build")
	recordIfFinished(engine)
	respondState(c, engine)
}

func BuyDevelopmentCard(c *gin.Context) {
	engine, ok := engineFromPath(c)
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUser(c)
	card, err := engine.BuyDevelopmentCard(userID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	afterAction(engine, "card_bought")
	recordIfFinished(engine)
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        dto.BuyCardResponse{Card: card},
	})
}

func EndTurn(c *gin.Context) {
	engine, ok := engineFromPath(c)
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUser(c)
	if err := engine.EndTurn(userID); err != nil {
		respondGameError(c, err)
		return
	}

	afterAction(engine, "turn_ended")
	respondState(c, engine)
}

func engineFromPath(c *gin.Context) (*service.GameEngine, bool) {
	token := c.Param("token")
	engine, ok := service.Sessions.Get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "对局不存在"})
		return nil, false
	}
	return engine, true
}

func respondState(c *gin.Context, engine *service.GameEngine) {
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        engine.StateResponse(),
	})
}

// respondGameError 按错误分类回不同的提示，
// 让前端能区分「不是你的回合」和「资源不够」。
func respondGameError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	if entities.KindOf(err) == "" {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"kind":  string(entities.KindOf(err)),
	})
}

// afterAction 成功的变更动作之后：写快照、广播最新状态。
func afterAction(engine *service.GameEngine, updateType string) {
	saveSnapshot(engine)
	ws.BroadcastGameUpdate(engine.Token, updateType, engine.StateResponse())
}

func saveSnapshot(engine *service.GameEngine) {
	if err := repository.SaveGameSnapshot(engine.Snapshot()); err != nil {
		zap.L().Error("快照写入失败", zap.String("token", engine.Token), zap.Error(err))
	}
}

// recordIfFinished 胜负分出的那一次动作之后更新用户战绩。
// 结束后的对局不再接受任何动作，所以这里只会执行一次。
func recordIfFinished(engine *service.GameEngine) {
	snap := engine.Snapshot()
	if snap.Status != entities.StatusFinished || snap.WinnerID == 0 {
		return
	}

	var participants []int64
	var winnerPoints int
	for _, p := range snap.Players {
		participants = append(participants, p.UserID)
		if p.UserID == snap.WinnerID {
			winnerPoints = p.TotalPoints()
		}
	}
	if err := repository.RecordGameResult(participants, snap.WinnerID, winnerPoints); err != nil {
		zap.L().Error("战绩更新失败", zap.String("token", engine.Token), zap.Error(err))
	}
}
