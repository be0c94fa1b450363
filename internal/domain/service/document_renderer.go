package service

import (
	"context"

	"docforge-ai-api/internal/domain/entity"
)

// ExportSection 已排序的导出章节，Content 为空表示尚未生成
type ExportSection struct {
	Title   string
	Content string
}

// ExportDocument 待导出的项目
type ExportDocument struct {
	ID       string
	Title    string
	Topic    string
	Sections []ExportSection
}

// ExportFile 渲染完成的导出文件
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// DocumentRenderer 导出渲染器契约
type DocumentRenderer interface {
	Render(ctx context.Context, kind entity.DocKind, doc *ExportDocument) (*ExportFile, error)
}
