package common

import (
	"math"
	"strconv"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// Round 四捨五入到指定小數位（0.5 進位遠離零）
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// FormatScore 以最短表示輸出分數
func FormatScore(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// IntPtr 回傳整數指標
func IntPtr(v int) *int {
	return &v
}

// StringPtr 回傳字串指標
func StringPtr(v string) *string {
	return &v
}
