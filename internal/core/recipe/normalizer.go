package recipe

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"smart-kitchen/internal/pkg/common"
)

const (
	minSteps        = 5
	maxSteps        = 12
	minFragmentLen  = 4
	shortStepLen    = 20
	padStep         = "Serve and enjoy."
	defaultSafeStep = "Cook on medium heat for 2–3 minutes."
)

// badPhrases 模糊步驟的禁用詞
var badPhrases = []string{"to taste", "cook to taste", "prep ingredients", "serve"}

var (
	numberedPrefix   = regexp.MustCompile(`^\d+[.)]\s`)
	stripNumber      = regexp.MustCompile(`^\d+[.)]\s*`)
	leadingWord      = regexp.MustCompile(`^\d+[.)]\s*[A-Za-z]`)
	heatTimeKeywords = regexp.MustCompile(`(?i)\b(min|sec|seconds|minutes|medium|low|high|simmer|boil|degree|heat)\b|°`)
	semicolonSplit   = regexp.MustCompile(`;\s*`)
	conjunctionSplit = regexp.MustCompile(`\s+(?:and|then)\s+`)
)

// NormalizeSteps 將模型輸出的步驟整理成 5 到 12 個編號步驟
func NormalizeSteps(raw interface{}) []string {
	parts := coerceParts(raw)

	kept := parts[:0]
	for _, p := range parts {
		if len([]rune(p)) >= minFragmentLen {
			kept = append(kept, p)
		}
	}
	parts = kept

	if len(parts) < minSteps {
		if alt := splitAll(parts, semicolonSplit); len(alt) >= minSteps {
			parts = alt
		} else if len(parts) > 0 {
			if alt := splitAll(parts, conjunctionSplit); len(alt) >= minSteps {
				parts = alt
			}
		}
	}

	if len(parts) > maxSteps {
		parts = parts[:maxSteps]
	}

	numbered := make([]string, 0, minSteps)
	for i, p := range parts {
		if numberedPrefix.MatchString(p) {
			numbered = append(numbered, p)
			continue
		}
		numbered = append(numbered, fmt.Sprintf("%d. %s", i+1, p))
	}
	for len(numbered) < minSteps {
		numbered = append(numbered, fmt.Sprintf("%d. %s", len(numbered)+1, padStep))
	}

	return numbered
}

// FixInstructions 正規化步驟，改寫模糊步驟並重新編號
func FixInstructions(raw interface{}) []string {
	steps := NormalizeSteps(raw)
	fixed := make([]string, 0, len(steps))
	for i, s := range steps {
		text := strings.TrimSpace(stripNumber.ReplaceAllString(s, ""))
		if IsVagueStep(s) {
			text = defaultSafeStep
		}
		fixed = append(fixed, fmt.Sprintf("%d. %s", i+1, text))
	}
	return fixed
}

// IsVagueStep 判斷編號步驟是否過於籠統
// 超過 20 字元但沒有時間或火候關鍵字的步驟不算模糊
func IsVagueStep(step string) bool {
	low := strings.ToLower(step)
	for _, bp := range badPhrases {
		if strings.Contains(low, bp) {
			return true
		}
	}
	if !leadingWord.MatchString(step) {
		return true
	}
	if !heatTimeKeywords.MatchString(low) {
		return len([]rune(step)) < shortStepLen
	}
	return false
}

// coerceParts 轉為去除空白的字串片段
func coerceParts(raw interface{}) []string {
	switch v := raw.(type) {
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(stringify(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return parts
	case []string:
		parts := make([]string, 0, len(v))
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
		return parts
	case string:
		return splitProse(strings.TrimSpace(v))
	default:
		return nil
	}
}

// splitProse 依換行或句尾標點後的空白切段
func splitProse(text string) []string {
	var parts []string
	var cur strings.Builder
	runes := []rune(text)

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			parts = append(parts, s)
		}
		cur.Reset()
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			flush()
			continue
		}
		if unicode.IsSpace(r) && i > 0 && strings.ContainsRune(".!?", runes[i-1]) {
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return parts
}

// splitAll 以指定分隔切開每個片段
func splitAll(parts []string, sep *regexp.Regexp) []string {
	var out []string
	for _, p := range parts {
		for _, chunk := range sep.Split(p, -1) {
			if chunk = strings.TrimSpace(chunk); chunk != "" {
				out = append(out, chunk)
			}
		}
	}
	return out
}

// CoerceMacros 將模型給的營養欄位逐一轉成浮點數，失敗給 0
func CoerceMacros(raw interface{}) common.GeneratedMacros {
	m, _ := raw.(map[string]interface{})
	return common.GeneratedMacros{
		Calories: toFloat(m["calories"]),
		Protein:  toFloat(m["protein"]),
		Carbs:    toFloat(m["carbs"]),
		Fat:      toFloat(m["fat"]),
	}
}

func toFloat(v interface{}) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// stringify 將任意值轉為字串
func stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
