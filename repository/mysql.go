package repository

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var DB *sql.DB

// User 用户表记录
type User struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	GamesPlayed    int
	GamesWon       int
	TotalPoints    int
}

// ErrUserNotFound 用户不存在
var ErrUserNotFound = errors.New("用户不存在")

// InitMySQL 初始化 MySQL 连接并建用户表。
func InitMySQL(dsn string) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		zap.L().Fatal("MySQL 打开失败", zap.Error(err))
	}
	if err := db.Ping(); err != nil {
		zap.L().Fatal("MySQL 连接失败", zap.Error(err))
	}
	DB = db

	const schema = `CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		hashed_password VARCHAR(255) NOT NULL,
		games_played INT NOT NULL DEFAULT 0,
		games_won INT NOT NULL DEFAULT 0,
		total_points INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := DB.Exec(schema); err != nil {
		zap.L().Fatal("建表失败", zap.Error(err))
	}
	zap.L().Info("✅ MySQL 连接成功")
}

// CreateUser 新建用户，返回自增 id。
func CreateUser(username, email, hashedPassword string) (int64, error) {
	result, err := DB.Exec(
		"INSERT INTO users (username, email, hashed_password) VALUES (?, ?, ?)",
		username, email, hashedPassword,
	)
	if err != nil {
		return 0, fmt.Errorf("插入用户失败: %w", err)
	}
	return result.LastInsertId()
}

// GetUserByUsername 按用户名查用户。
func GetUserByUsername(username string) (*User, error) {
	return scanUser(DB.QueryRow(
		"SELECT id, username, email, hashed_password, games_played, games_won, total_points FROM users WHERE username = ?",
		username,
	))
}

// GetUserByID 按 id 查用户。
func GetUserByID(id int64) (*User, error) {
	return scanUser(DB.QueryRow(
		"SELECT id, username, email, hashed_password, games_played, games_won, total_points FROM users WHERE id = ?",
		id,
	))
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword,
		&u.GamesPlayed, &u.GamesWon, &u.TotalPoints)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &u, nil
}

// TopUsers 排行榜：按胜场数、再按总分取前 limit 名。
func TopUsers(limit int) ([]User, error) {
	rows, err := DB.Query(
		"SELECT id, username, games_played, games_won, total_points FROM users ORDER BY games_won DESC, total_points DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("查询排行榜失败: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.GamesPlayed, &u.GamesWon, &u.TotalPoints); err != nil {
			return nil, fmt.Errorf("查询排行榜失败: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// RecordGameResult 对局结束后更新战绩：所有参与者 games_played +1，
// 赢家再加 games_won 和总分。
func RecordGameResult(participantIDs []int64, winnerID int64, winnerPoints int) error {
	for _, id := range participantIDs {
		if _, err := DB.Exec("UPDATE users SET games_played = games_played + 1 WHERE id = ?", id); err != nil {
			return fmt.Errorf("更新战绩失败: %w", err)
		}
	}
	if winnerID != 0 {
		if _, err := DB.Exec(
			"UPDATE users SET games_won = games_won + 1, total_points = total_points + ? WHERE id = ?",
			winnerPoints, winnerID,
		); err != nil {
			return fmt.Errorf("更新赢家战绩失败: %w", err)
		}
	}
	return nil
}
