// Package export 将项目章节写出为 DOCX / PPTX 文件
package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

// PlaceholderText 未生成内容的章节占位文本
const PlaceholderText = "[Content not generated]"

// MIME 类型
const (
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// part 压缩包中的一个部件
type part struct {
	name string
	body string
}

// writePackage 按顺序写出 OPC 压缩包，[Content_Types].xml 需位于首位
func writePackage(w io.Writer, parts []part) error {
	zw := zip.NewWriter(w)
	now := time.Now()
	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: now,
		})
		if err != nil {
			return fmt.Errorf("failed to create part %s: %w", p.name, err)
		}
		if _, err := io.WriteString(fw, p.body); err != nil {
			return fmt.Errorf("failed to write part %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

// esc 转义 XML 文本
func esc(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// FileName 生成下载文件名：标题空格替换为下划线，去除路径分隔等不安全字符
func FileName(title, id, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r), r < 0x20:
			return -1
		default:
			return r
		}
	}, strings.TrimSpace(title))
	if name == "" {
		name = "project"
	}
	return fmt.Sprintf("%s_%s.%s", name, id, ext)
}

func coreProps(title string) string {
	created := time.Now().UTC().Format(time.RFC3339)
	return xmlHeader +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + esc(title) + `</dc:title>` +
		`<dc:creator>docforge</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + created + `</dcterms:created>` +
		`</cp:coreProperties>`
}
