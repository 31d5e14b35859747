package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Redis 不可用时限速降级放行，登录口不能因此不可用。
// 计数与 429 分支依赖真实 Redis，由集成测试覆盖。
func TestRateLimit_NilClientPassesThrough(t *testing.T) {
	r := gin.New()
	handled := 0
	r.POST("/login", RateLimit(nil, 1, time.Minute), func(c *gin.Context) {
		handled++
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/login", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("第 %d 次请求期望 200，实际: %d", i+1, w.Code)
		}
	}
	if handled != 3 {
		t.Errorf("降级时所有请求都应到达处理器，实际: %d", handled)
	}
}
