package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"smart-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const readinessTimeout = 3 * time.Second

// HealthResponse 健康檢查響應
type HealthResponse struct {
	OK        bool                   `json:"ok"`
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// Check 一項依賴檢查；Required 為 false 時失敗只回報不影響就緒狀態
type Check struct {
	Name     string
	Required bool
	Ping     func(ctx context.Context) error
}

// CheckResult 單項檢查結果
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadinessResponse 就緒檢查響應
type ReadinessResponse struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Handler 健康檢查處理程序
type Handler struct {
	version string
	checks  []Check
}

// NewHandler 創建健康檢查處理程序
func NewHandler(version string, checks ...Check) *Handler {
	return &Handler{version: version, checks: checks}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, HealthResponse{
		OK:        true,
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":  m.Alloc,
				"sys":    m.Sys,
				"num_gc": m.NumGC,
			},
		},
	})
}

// ReadinessCheck 逐項檢查依賴，任一必要項目失敗回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	resp := ReadinessResponse{Status: "ready", Checks: make(map[string]CheckResult, len(h.checks))}
	status := http.StatusOK
	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			resp.Checks[check.Name] = CheckResult{Status: "down", Error: err.Error()}
			common.LogWarn("就緒檢查失敗",
				zap.String("check", check.Name),
				zap.Bool("required", check.Required),
				zap.Error(err),
			)
			if check.Required {
				resp.Status = "not_ready"
				status = http.StatusServiceUnavailable
			}
			continue
		}
		resp.Checks[check.Name] = CheckResult{Status: "up"}
	}

	c.JSON(status, resp)
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
