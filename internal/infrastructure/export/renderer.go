package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"

	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/service"
	"docforge-ai-api/pkg/logger"
	"docforge-ai-api/pkg/metrics"
	"docforge-ai-api/pkg/tracer"
)

// Renderer 导出渲染器
type Renderer struct {
	tmpDir string
}

// NewRenderer 创建导出渲染器
func NewRenderer(cfg *config.ExportConfig) *Renderer {
	r := &Renderer{}
	if cfg != nil {
		r.tmpDir = cfg.TmpDir
	}
	return r
}

// Render 按文档类型渲染文件，sections 需已按 order_index 排序
func (r *Renderer) Render(ctx context.Context, kind entity.DocKind, doc *service.ExportDocument) (*service.ExportFile, error) {
	ctx, span := tracer.Start(ctx, "export.Render")
	defer span.End()
	span.SetAttributes(
		attribute.String("export.type", string(kind)),
		attribute.Int("export.sections", len(doc.Sections)),
	)

	var (
		buf         bytes.Buffer
		err         error
		contentType string
	)
	switch kind {
	case entity.DocKindDOCX:
		contentType = ContentTypeDOCX
		err = WriteDOCX(&buf, doc)
	case entity.DocKindPPTX:
		contentType = ContentTypePPTX
		err = WritePPTX(&buf, doc)
	default:
		err = fmt.Errorf("unsupported export type %q", kind)
	}
	if err != nil {
		tracer.RecordError(span, err)
		metrics.ExportTotal.WithLabelValues(string(kind), "error").Inc()
		return nil, err
	}

	file := &service.ExportFile{
		Name:        FileName(doc.Title, doc.ID, string(kind)),
		ContentType: contentType,
		Data:        buf.Bytes(),
	}

	if r.tmpDir != "" {
		path := filepath.Join(r.tmpDir, file.Name)
		if werr := os.WriteFile(path, file.Data, 0o644); werr != nil {
			// 落盘仅用于调试，失败不影响下载
			logger.Warn(ctx, "failed to write export copy", "path", path, "error", werr.Error())
		}
	}

	metrics.ExportTotal.WithLabelValues(string(kind), "success").Inc()
	span.SetAttributes(attribute.Int("export.bytes", len(file.Data)))
	return file, nil
}
