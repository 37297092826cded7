package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"smart-kitchen/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WriteError 以 {code, message, details} 格式回傳錯誤
func WriteError(c *gin.Context, err error) {
	status := common.StatusOf(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
	}
	if status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogWarn("請求無效", fields...)
	}
	_ = c.Error(err)
	c.JSON(status, common.ToResponse(err))
}

// BindJSON 解析請求體，失敗時回傳 INVALID_REQUEST
func BindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return common.PayloadTooLargeError(maxErr.Limit)
		}
		return common.InvalidRequestError("invalid request body").WithDetails(err.Error())
	}
	return nil
}

// QueryInt 讀取整數查詢參數，缺少時使用預設值
func QueryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.InvalidRequestError(fmt.Sprintf("%s must be an integer", name))
	}
	return v, nil
}
