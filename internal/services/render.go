package services

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// placeholderPattern matches {{identifier}} with optional whitespace inside
// the braces. Anything else between double braces — expressions, operators,
// nested braces — does not match and passes through verbatim. Matching stays
// purely syntactic so template text is never evaluated.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// RenderPreview fills placeholders in content with values from example.
// A placeholder whose name is missing from example is left byte-for-byte
// unchanged. A nil example makes the whole call a no-op. Exactly one
// substitution pass is performed: text introduced by a substitution is never
// re-scanned, so a value containing {{...}} cannot trigger a second round of
// interpolation.
func RenderPreview(content string, example map[string]interface{}) string {
	if len(example) == 0 {
		return content
	}

	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		value, ok := example[name]
		if !ok {
			return match
		}
		return formatValue(value)
	})
}

// formatValue renders a substitution value as text. Scalars use their natural
// string form; maps and slices serialize to compact JSON.
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		// JSON numbers decode as float64; render 5.0 as "5"
		return strconv.FormatFloat(v, 'g', -1, 64)
	case json.Number:
		return v.String()
	case nil:
		return "null"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
