package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
	Details string // 診斷資訊（後端狀態、輸出預覽）
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// WithDetails 附加診斷資訊
func (e *CustomError) WithDetails(details string) *CustomError {
	e.Details = details
	return e
}

// 預定義錯誤代碼
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"          // 400
	ErrCodeNotFound           = "NOT_FOUND"                // 404
	ErrCodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"        // 413
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"        // 429
	ErrCodeInternalError      = "INTERNAL_ERROR"           // 500
	ErrCodeRequestTimeout     = "REQUEST_TIMEOUT"          // 504
	ErrCodeGenerationParse    = "GENERATION_PARSE_ERROR"   // 500
	ErrCodeInvalidModelOutput = "INVALID_MODEL_OUTPUT"     // 500
	ErrCodeGenerationBackend  = "GENERATION_BACKEND_ERROR" // 502
)

// previewLimit 解析失敗時保留的原始輸出長度
const previewLimit = 300

// InvalidRequestError 請求參數錯誤
func InvalidRequestError(message string) *CustomError {
	return NewError(ErrCodeInvalidRequest, message, http.StatusBadRequest, nil)
}

// GenerationBackendError 生成後端無法連線或回傳非成功狀態
func GenerationBackendError(status int, detail string, err error) *CustomError {
	e := NewError(ErrCodeGenerationBackend, "generation backend error", http.StatusBadGateway, err)
	if status > 0 {
		return e.WithDetails(fmt.Sprintf("backend status %d: %s", status, detail))
	}
	return e.WithDetails(detail)
}

// GenerationParseError 模型輸出無法解析為 JSON 物件
func GenerationParseError(raw string) *CustomError {
	return NewError(ErrCodeGenerationParse, "model did not return valid JSON", http.StatusInternalServerError, nil).
		WithDetails(Preview(raw, previewLimit))
}

// InvalidModelOutputError 模型輸出結構不符
func InvalidModelOutputError(message string) *CustomError {
	return NewError(ErrCodeInvalidModelOutput, message, http.StatusInternalServerError, nil)
}

// TooManyRequestsError 超過限流或重複提交
func TooManyRequestsError(message string) *CustomError {
	return NewError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests, nil)
}

// PayloadTooLargeError 請求體超過上限
func PayloadTooLargeError(maxSize int64) *CustomError {
	return NewError(ErrCodePayloadTooLarge, "request body too large", http.StatusRequestEntityTooLarge, nil).
		WithDetails(fmt.Sprintf("max_size %d bytes", maxSize))
}

// InternalError 包裝儲存層等內部錯誤
func InternalError(message string, err error) *CustomError {
	return NewError(ErrCodeInternalError, message, http.StatusInternalServerError, err)
}

// IsCode 檢查錯誤鏈中是否有指定代碼
func IsCode(err error, code string) bool {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// StatusOf 取得錯誤對應的 HTTP 狀態碼，未知錯誤為 500
func StatusOf(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Status != 0 {
		return ce.Status
	}
	return http.StatusInternalServerError
}

// ToResponse 將錯誤轉為 API 錯誤響應
func ToResponse(err error) ErrorResponse {
	var ce *CustomError
	if errors.As(err, &ce) {
		resp := ErrorResponse{Code: ce.Code, Message: ce.Message, Details: ce.Details}
		if resp.Details == "" && ce.Err != nil {
			resp.Details = ce.Err.Error()
		}
		return resp
	}
	return ErrorResponse{Code: ErrCodeInternalError, Message: err.Error()}
}

// Preview 截斷字串至最多 n 個字元
func Preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
