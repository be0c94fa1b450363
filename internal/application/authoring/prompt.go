package authoring

import (
	"fmt"
	"strings"

	"docforge-ai-api/internal/domain/entity"
)

const (
	maxNeighbors       = 3
	neighborExcerptLen = 200
	previousExcerptLen = 300
	ellipsis           = "..."

	// DefaultOutlineItems 幻灯片大纲默认条数
	DefaultOutlineItems = 8
)

// Neighbor 生成时作为上下文的同项目章节
type Neighbor struct {
	Title   string
	Content string
}

// GenerationPromptInput 生成提示词输入
type GenerationPromptInput struct {
	Topic        string
	SectionTitle string
	Kind         entity.SectionKind
	// PreviousContent 为空时不附加
	PreviousContent string
	Neighbors       []Neighbor
}

// BuildGenerationPrompt 构建章节生成提示词
// 邻居内容截取前 200 个字符，已有内容截取前 300 个字符，截断后总是追加省略号
func BuildGenerationPrompt(in GenerationPromptInput) string {
	parts := []string{
		fmt.Sprintf("Project Topic: %s\n", in.Topic),
		fmt.Sprintf("Section/Slide Title: %s\n", in.SectionTitle),
	}

	if len(in.Neighbors) > 0 {
		parts = append(parts, "\nContext from other sections:")
		neighbors := in.Neighbors
		if len(neighbors) > maxNeighbors {
			neighbors = neighbors[:maxNeighbors]
		}
		for _, n := range neighbors {
			parts = append(parts, fmt.Sprintf("- %s: %s", n.Title, excerpt(n.Content, neighborExcerptLen)))
		}
	}

	if in.Kind.IsSlide() {
		parts = append(parts,
			"\nTask: Generate content for this PowerPoint slide.",
			"Requirements:",
			"- Write 3-5 bullet points or 2-3 short paragraphs",
			"- Keep content concise and suitable for presentation",
			"- Ensure content is relevant to the project topic and slide title",
			"- Output plain text only (no markdown formatting)",
		)
	} else {
		parts = append(parts,
			"\nTask: Generate well-structured content for this Word document section.",
			"Requirements:",
			"- Write 150-250 words of professional, informative content",
			"- Use clear paragraphs",
			"- Ensure content is relevant to the project topic and section title",
			"- Output plain text only (no markdown formatting)",
		)
	}

	if in.PreviousContent != "" {
		parts = append(parts, fmt.Sprintf("\nPrevious content (for context):\n%s", excerpt(in.PreviousContent, previousExcerptLen)))
	}

	return strings.Join(parts, "\n")
}

// BuildRefinementPrompt 构建润色提示词，当前内容完整回显
func BuildRefinementPrompt(content, instruction string, kind entity.SectionKind) string {
	parts := []string{
		"Current Content:",
		content,
		"\n",
		fmt.Sprintf("Refinement Instruction: %s", instruction),
		"\n",
		"Task: Refine the content according to the instruction above.",
		"Requirements:",
		"- Apply the refinement instruction precisely",
		"- Maintain relevance to the original content",
		"- Output only the refined content (plain text, no markdown)",
	}
	if kind.IsSlide() {
		parts = append(parts, "- Keep content concise and suitable for presentation")
	}
	return strings.Join(parts, "\n")
}

// BuildOutlinePrompt 构建大纲建议提示词
// 文档固定请求 5-7 个标题，numItems 仅对幻灯片生效（<=0 时取默认值）
func BuildOutlinePrompt(topic string, kind entity.DocKind, numItems int) string {
	if kind == entity.DocKindDOCX {
		return fmt.Sprintf("Generate a document outline for a Word document on the topic: \"%s\"\n\n"+
			"Provide 5-7 section headers that would structure this document logically.\n"+
			"Return only a list of section titles, one per line, without numbering or bullets.\n"+
			"Each title should be concise (3-8 words) and descriptive.", topic)
	}

	if numItems <= 0 {
		numItems = DefaultOutlineItems
	}
	return fmt.Sprintf("Generate slide titles for a PowerPoint presentation on the topic: \"%s\"\n\n"+
		"Provide %d slide titles that would structure this presentation logically.\n"+
		"Return only a list of slide titles, one per line, without numbering or bullets.\n"+
		"Each title should be concise (3-8 words) and suitable for a presentation slide.", topic, numItems)
}

// excerpt 按字符（rune）硬截断并追加省略号，不考虑单词边界
func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + ellipsis
}
