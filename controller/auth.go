package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teyuna/dto"
	"teyuna/middleware"
	"teyuna/repository"
	"teyuna/service"
	"teyuna/utils"
)

func Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}

	user, err := service.Register(req.Username, req.Email, req.Password)
	if err != nil {
		zap.L().Warn("注册失败", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "注册失败，用户名或邮箱可能已被占用"})
		return
	}

	issueTokens(c, user.ID, user.Username)
}

func Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}

	user, err := service.Authenticate(req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户名或密码错误"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	issueTokens(c, user.ID, user.Username)
}

func RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}

	claims, err := utils.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "刷新令牌无效"})
		return
	}

	issueTokens(c, claims.UserID, claims.Username)
}

// Me 返回当前登录用户的资料和战绩。
func Me(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	user, err := repository.GetUserByID(userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data": dto.UserResponse{
			UserID:      user.ID,
			Username:    user.Username,
			Email:       user.Email,
			GamesPlayed: user.GamesPlayed,
			GamesWon:    user.GamesWon,
			TotalPoints: user.TotalPoints,
		},
	})
}

// Leaderboard 按胜场排序的前 10 名，公开接口。
func Leaderboard(c *gin.Context) {
	users, err := repository.TopUsers(10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, dto.LeaderboardEntry{
			Username:    u.Username,
			GamesPlayed: u.GamesPlayed,
			GamesWon:    u.GamesWon,
			TotalPoints: u.TotalPoints,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        entries,
	})
}

func issueTokens(c *gin.Context, userID int64, username string) {
	access, err := utils.GenerateAccessToken(userID, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	refresh, err := utils.GenerateRefreshToken(userID, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data": dto.TokenResponse{
			AccessToken:  access,
			RefreshToken: refresh,
			UserID:       userID,
			Username:     username,
		},
	})
}
