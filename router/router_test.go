package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	InitRouter(r)
	return r
}

func TestRouteTable(t *testing.T) {
	r := newTestRouter()

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /auth/register",
		"POST /auth/login",
		"POST /auth/refresh",
		"GET /auth/me",
		"GET /auth/leaderboard",
		"POST /games",
		"GET /games",
		"POST /games/join",
		"GET /games/:token",
		"POST /games/:token/start",
		"POST /games/:token/roll",
		"POST /games/:token/build",
		"POST /games/:token/buy-card",
		"POST /games/:token/end-turn",
		"GET /ws/game/:token",
	} {
		assert.True(t, registered[want], "缺少路由 %s", want)
	}
}

// 战绩接口必须登录才能看，没带令牌要拿 401 而不是 404
func TestMeRequiresAuth(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGameRoutesRequireAuth(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
