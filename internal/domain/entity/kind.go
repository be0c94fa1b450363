// Package entity 定义领域实体
package entity

import (
	"fmt"
	"strings"
)

// DocKind 项目文档类型，创建后不可变
type DocKind string

const (
	DocKindDOCX DocKind = "docx"
	DocKindPPTX DocKind = "pptx"
)

// ParseDocKind 解析文档类型（大小写不敏感）
func ParseDocKind(s string) (DocKind, error) {
	switch k := DocKind(strings.ToLower(strings.TrimSpace(s))); k {
	case DocKindDOCX, DocKindPPTX:
		return k, nil
	default:
		return "", fmt.Errorf("unsupported document type %q, must be 'docx' or 'pptx'", s)
	}
}

// Valid 是否为已知类型
func (k DocKind) Valid() bool {
	return k == DocKindDOCX || k == DocKindPPTX
}

// SectionKind 对应的章节类型
func (k DocKind) SectionKind() SectionKind {
	if k == DocKindPPTX {
		return SectionKindSlide
	}
	return SectionKindSection
}

// Extension 导出文件扩展名
func (k DocKind) Extension() string {
	return "." + string(k)
}

// SectionKind 章节类型，由所属项目的文档类型派生
type SectionKind string

const (
	SectionKindSection SectionKind = "section"
	SectionKindSlide   SectionKind = "slide"
)

// IsSlide 是否为幻灯片
func (k SectionKind) IsSlide() bool {
	return k == SectionKindSlide
}
