package service

import (
	"context"
	"time"

	"smart-kitchen/internal/core/ai/provider"
	"smart-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// Service AI 服務，負責呼叫生成後端並取出 JSON 物件
type Service struct {
	provider provider.Provider
}

// NewService 創建 AI 服務
func NewService(p provider.Provider) *Service {
	return &Service{provider: p}
}

// GenerateJSON 送出 prompt，回傳模型輸出中的 JSON 物件
// 後端呼叫不跟隨呼叫端取消，只受 provider 自身的逾時限制
func (s *Service) GenerateJSON(ctx context.Context, prompt string, traceID string) (map[string]interface{}, error) {
	start := time.Now()
	resp, err := s.provider.Chat(context.WithoutCancel(ctx), &provider.Request{
		Messages: []provider.Message{{Role: "user", Content: prompt}},
		JSONMode: true,
	})
	common.LogAICall(s.provider.GetModel(), s.provider.GetTimeout(), time.Since(start), err, traceID)
	if err != nil {
		return nil, err
	}

	obj, err := common.ExtractJSONObject(resp.Content)
	if err != nil {
		common.LogWarn("模型輸出無法解析為 JSON",
			zap.String("trace_id", traceID),
			zap.Int("content_length", len(resp.Content)),
		)
		return nil, common.GenerationParseError(resp.Content)
	}

	return obj, nil
}

// Model 目前使用的模型
func (s *Service) Model() string {
	return s.provider.GetModel()
}

// Ping 檢查生成後端
func (s *Service) Ping(ctx context.Context) error {
	return s.provider.Ping(ctx)
}
