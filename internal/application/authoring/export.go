package authoring

import (
	"context"
	"strings"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	"docforge-ai-api/internal/domain/service"
	apperrors "docforge-ai-api/pkg/errors"
)

// Exporter 项目导出用例
type Exporter struct {
	projects repository.ProjectRepository
	sections repository.SectionRepository
	renderer service.DocumentRenderer
}

// NewExporter 创建导出用例
func NewExporter(projects repository.ProjectRepository, sections repository.SectionRepository, renderer service.DocumentRenderer) *Exporter {
	return &Exporter{projects: projects, sections: sections, renderer: renderer}
}

// ExportProject 导出项目为 docx 或 pptx，导出类型必须与项目文档类型一致
func (e *Exporter) ExportProject(ctx context.Context, userID, projectID, exportType string) (*service.ExportFile, error) {
	project, err := resolveProject(ctx, e.projects, projectID, userID)
	if err != nil {
		return nil, err
	}
	sections, err := e.sections.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, storeError(err, "failed to list sections")
	}
	if len(sections) == 0 {
		return nil, apperrors.ErrInvalidParam.WithDetail("Project has no sections to export")
	}

	kind := entity.DocKind(strings.ToLower(strings.TrimSpace(exportType)))
	switch kind {
	case entity.DocKindDOCX:
		if project.DocKind != entity.DocKindDOCX {
			return nil, apperrors.ErrInvalidParam.WithDetail("Project is not a Word document")
		}
	case entity.DocKindPPTX:
		if project.DocKind != entity.DocKindPPTX {
			return nil, apperrors.ErrInvalidParam.WithDetail("Project is not a PowerPoint presentation")
		}
	default:
		return nil, apperrors.ErrInvalidParam.WithDetail("Invalid export type. Use 'docx' or 'pptx'")
	}

	doc := &service.ExportDocument{
		ID:       project.ID,
		Title:    project.Title,
		Topic:    project.Topic,
		Sections: make([]service.ExportSection, 0, len(sections)),
	}
	for _, s := range sections {
		doc.Sections = append(doc.Sections, service.ExportSection{Title: s.Title, Content: s.ContentOrEmpty()})
	}

	file, err := e.renderer.Render(ctx, kind, doc)
	if err != nil {
		return nil, apperrors.ErrExportFailed.WithDetail(err.Error()).WithError(err)
	}
	return file, nil
}
