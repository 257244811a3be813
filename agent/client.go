package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"teyuna/dto"
)

// Client 走 HTTP 接口的对局客户端。AI 和真人共用同一套动作接口，
// 没有任何特权入口。
type Client struct {
	BaseURL     string
	AccessToken string
	UserID      int64
	http        *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Kind  string          `json:"kind"`
}

func (c *Client) do(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("响应解析失败: %w", err)
	}
	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Kind: env.Kind, Message: env.Error}
	}
	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// APIError 服务端返回的失败，带错误分类。
type APIError struct {
	Status  int
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%d %s] %s", e.Status, e.Kind, e.Message)
}

// Register 注册并保存令牌。
func (c *Client) Register(username, email, password string) error {
	var tokens dto.TokenResponse
	if err := c.do(http.MethodPost, "/auth/register", dto.RegisterRequest{
		Username: username, Email: email, Password: password,
	}, &tokens); err != nil {
		return err
	}
	c.AccessToken = tokens.AccessToken
	c.UserID = tokens.UserID
	return nil
}

// Login 登录并保存令牌。
func (c *Client) Login(username, password string) error {
	var tokens dto.TokenResponse
	if err := c.do(http.MethodPost, "/auth/login", dto.LoginRequest{
		Username: username, Password: password,
	}, &tokens); err != nil {
		return err
	}
	c.AccessToken = tokens.AccessToken
	c.UserID = tokens.UserID
	return nil
}

// Me 拉取当前用户的资料和战绩。
func (c *Client) Me() (*dto.UserResponse, error) {
	var user dto.UserResponse
	err := c.do(http.MethodGet, "/auth/me", nil, &user)
	return &user, err
}

func (c *Client) CreateGame(maxPlayers int) (*dto.CreateGameResponse, error) {
	var resp dto.CreateGameResponse
	err := c.do(http.MethodPost, "/games", dto.CreateGameRequest{MaxPlayers: maxPlayers}, &resp)
	return &resp, err
}

func (c *Client) JoinGame(token string) (*dto.GameStateResponse, error) {
	var state dto.GameStateResponse
	err := c.do(http.MethodPost, "/games/join", dto.JoinGameRequest{Token: token}, &state)
	return &state, err
}

func (c *Client) GetGame(token string) (*dto.GameStateResponse, error) {
	var state dto.GameStateResponse
	err := c.do(http.MethodGet, "/games/"+token, nil, &state)
	return &state, err
}

func (c *Client) StartGame(token string) error {
	return c.do(http.MethodPost, "/games/"+token+"/start", nil, nil)
}

func (c *Client) RollDice(token string) (*dto.RollDiceResponse, error) {
	var roll dto.RollDiceResponse
	err := c.do(http.MethodPost, "/games/"+token+"/roll", nil, &roll)
	return &roll, err
}

func (c *Client) Build(token string, building string, positionID int) error {
	return c.do(http.MethodPost, "/games/"+token+"/build", map[string]interface{}{
		"building_type": building,
		"position_id":   positionID,
	}, nil)
}

func (c *Client) BuyCard(token string) (*dto.BuyCardResponse, error) {
	var card dto.BuyCardResponse
	err := c.do(http.MethodPost, "/games/"+token+"/buy-card", nil, &card)
	return &card, err
}

func (c *Client) EndTurn(token string) error {
	return c.do(http.MethodPost, "/games/"+token+"/end-turn", nil, nil)
}
