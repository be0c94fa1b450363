package authoring

import (
	"strings"

	apperrors "docforge-ai-api/pkg/errors"
)

// outlineMarkers 行首需剥离的序号/项目符号字符
const outlineMarkers = "0123456789.-* "

// ParseOutline 将模型输出解析为标题列表
// 丢弃空行与 # 开头的行，剥离行首序号与项目符号；结果为空时返回 ParsingFailed
func ParseOutline(raw string) ([]string, error) {
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, outlineMarkers))
		if line != "" {
			items = append(items, line)
		}
	}
	if len(items) == 0 {
		return nil, apperrors.ErrParsingFailed.WithDetail("Failed to parse AI response")
	}
	return items, nil
}
