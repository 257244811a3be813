package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"teyuna/repository"
)

// ErrInvalidCredentials 用户名或密码不对
var ErrInvalidCredentials = errors.New("用户名或密码错误")

// Register 注册新用户，密码用 bcrypt 存哈希。
func Register(username, email, password string) (*repository.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	id, err := repository.CreateUser(username, email, string(hashed))
	if err != nil {
		return nil, err
	}
	return repository.GetUserByID(id)
}

// Authenticate 校验用户名密码，通过时返回用户。
func Authenticate(username, password string) (*repository.User, error) {
	user, err := repository.GetUserByUsername(username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
