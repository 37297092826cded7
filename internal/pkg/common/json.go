package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ParseJSON 解析 JSON 字符串到結構體
func ParseJSON(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v)
}

// ParseJSONBytes 解析 JSON 位元組切片到結構體
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v)
}

func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}

// extractStrategy 從文字中取出候選 JSON 片段
type extractStrategy struct {
	name string
	pick func(text string) (string, bool)
}

var bracePattern = regexp.MustCompile(`(?s)\{.*\}`)

// 依序嘗試：整段解析、首尾大括號、正則最大範圍
var extractStrategies = []extractStrategy{
	{
		name: "strict",
		pick: func(text string) (string, bool) {
			return strings.TrimSpace(text), true
		},
	},
	{
		name: "brace_span",
		pick: func(text string) (string, bool) {
			start := strings.Index(text, "{")
			end := strings.LastIndex(text, "}")
			if start == -1 || end <= start {
				return "", false
			}
			return text[start : end+1], true
		},
	},
	{
		name: "regex",
		pick: func(text string) (string, bool) {
			m := bracePattern.FindString(text)
			return m, m != ""
		},
	},
}

// ErrNoJSONObject 所有策略皆無法取得 JSON 物件
var ErrNoJSONObject = errors.New("no JSON object found")

// ExtractJSONObject 從模型輸出中取出第一個可解析的 JSON 物件
// 只有物件算成功，陣列或純值會繼續嘗試下一個策略
func ExtractJSONObject(text string) (map[string]interface{}, error) {
	for _, s := range extractStrategies {
		candidate, ok := s.pick(text)
		if !ok || candidate == "" {
			continue
		}
		var obj map[string]interface{}
		if err := ParseJSON(candidate, &obj); err == nil && obj != nil {
			return obj, nil
		}
	}
	return nil, ErrNoJSONObject
}
