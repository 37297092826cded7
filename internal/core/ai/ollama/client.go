package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"smart-kitchen/internal/core/ai/provider"
	"smart-kitchen/internal/infrastructure/config"
	"smart-kitchen/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	chatPath = "/api/chat"
	tagsPath = "/api/tags"

	// systemPrompt 要求模型只回 JSON
	systemPrompt = "Return STRICT JSON ONLY. No prose. Keys: title, ingredients(array of strings), instructions(array of strings), macros(object with calories, protein, carbs, fat)."

	// errorDetailLimit 後端錯誤訊息保留長度
	errorDetailLimit = 300
)

// Client Ollama 對話 API 客戶端
type Client struct {
	config config.OllamaConfig
	client *resty.Client
}

// chatRequest /api/chat 請求
type chatRequest struct {
	Model    string             `json:"model"`
	Messages []provider.Message `json:"messages"`
	Format   string             `json:"format,omitempty"`
	Options  chatOptions        `json:"options"`
	Stream   bool               `json:"stream"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

// chatResponse /api/chat 非串流回覆
type chatResponse struct {
	Model   string           `json:"model"`
	Message provider.Message `json:"message"`
	Done    bool             `json:"done"`
}

// NewClient 創建新的 Ollama 客戶端
// 逾時固定由設定決定，不另外重試
func NewClient(cfg config.OllamaConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Chat 送出對話，回傳助手訊息內容
func (c *Client) Chat(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	messages := make([]provider.Message, 0, len(req.Messages)+1)
	messages = append(messages, provider.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, req.Messages...)

	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.config.Temperature
	}

	body := chatRequest{
		Model:    c.config.Model,
		Messages: messages,
		Options:  chatOptions{Temperature: temperature},
		Stream:   false,
	}
	if req.JSONMode {
		body.Format = "json"
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(chatPath)
	if err != nil {
		common.LogError("Ollama 請求失敗",
			zap.String("model", c.config.Model),
			zap.Error(err),
		)
		return nil, common.GenerationBackendError(0, fmt.Sprintf("ollama call failed: %v", err), err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		common.LogWarn("Ollama 回傳錯誤狀態",
			zap.Int("status", resp.StatusCode()),
			zap.String("model", c.config.Model),
		)
		return nil, common.GenerationBackendError(resp.StatusCode(), common.Preview(resp.String(), errorDetailLimit), nil)
	}

	var result chatResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, common.GenerationBackendError(resp.StatusCode(), "failed to decode ollama response", err)
	}

	content := strings.TrimSpace(result.Message.Content)
	if content == "" {
		return nil, common.GenerationBackendError(resp.StatusCode(), "ollama returned empty content", nil)
	}

	return &provider.Response{
		Content: content,
		Model:   result.Model,
	}, nil
}

// Ping 檢查 Ollama 是否可連線
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.client.R().SetContext(ctx).Get(tagsPath)
	if err != nil {
		return fmt.Errorf("ollama unreachable: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode())
	}
	return nil
}

// GetModel 獲取當前使用的模型名稱
func (c *Client) GetModel() string {
	return c.config.Model
}

// GetTimeout 獲取請求超時時間
func (c *Client) GetTimeout() time.Duration {
	return c.config.Timeout
}
