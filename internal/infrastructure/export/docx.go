package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"

	"docforge-ai-api/internal/domain/service"
)

// WriteDOCX 写出 Word 文档
// 项目标题为 0 级标题，章节标题为 1 级标题，正文按空行分段
func WriteDOCX(w io.Writer, doc *service.ExportDocument) error {
	document, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create docx: %w", err)
	}

	if _, err := document.AddHeading(doc.Title, 0); err != nil {
		return fmt.Errorf("failed to add title: %w", err)
	}
	for _, s := range doc.Sections {
		if _, err := document.AddHeading(s.Title, 1); err != nil {
			return fmt.Errorf("failed to add heading %q: %w", s.Title, err)
		}

		if s.Content == "" {
			document.AddParagraph(PlaceholderText)
			continue
		}
		for _, para := range strings.Split(s.Content, "\n\n") {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			// 段内单个换行各自成段
			for _, line := range strings.Split(para, "\n") {
				document.AddParagraph(line)
			}
		}
	}

	// godocx 只支持按路径保存
	dir, err := os.MkdirTemp("", "docforge-docx-*")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "export.docx")
	if err := document.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save docx: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open docx: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to copy docx: %w", err)
	}
	return nil
}
