package authoring

import (
	"strings"
	"testing"

	"docforge-ai-api/internal/domain/entity"
)

func TestBuildGenerationPromptNoNeighbors(t *testing.T) {
	got := BuildGenerationPrompt(GenerationPromptInput{
		Topic:        "Ocean currents",
		SectionTitle: "Overview",
		Kind:         entity.SectionKindSection,
	})
	want := "Project Topic: Ocean currents\n\n" +
		"Section/Slide Title: Overview\n\n" +
		"\nTask: Generate well-structured content for this Word document section.\n" +
		"Requirements:\n" +
		"- Write 150-250 words of professional, informative content\n" +
		"- Use clear paragraphs\n" +
		"- Ensure content is relevant to the project topic and section title\n" +
		"- Output plain text only (no markdown formatting)"
	if got != want {
		t.Fatalf("prompt mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestBuildGenerationPromptTruncation(t *testing.T) {
	long := strings.Repeat("a", 250)
	prev := strings.Repeat("p", 400)
	got := BuildGenerationPrompt(GenerationPromptInput{
		Topic:           "t",
		SectionTitle:    "s",
		Kind:            entity.SectionKindSlide,
		PreviousContent: prev,
		Neighbors: []Neighbor{
			{Title: "N1", Content: long},
			{Title: "N2", Content: "short"},
		},
	})

	if !strings.Contains(got, "\nContext from other sections:\n- N1: "+strings.Repeat("a", 200)+"...\n- N2: short...") {
		t.Errorf("neighbor block wrong:\n%s", got)
	}
	if strings.Contains(got, strings.Repeat("a", 201)) {
		t.Errorf("neighbor content not cut at 200 characters")
	}
	if !strings.HasSuffix(got, "\nPrevious content (for context):\n"+strings.Repeat("p", 300)+"...") {
		t.Errorf("previous content not cut at 300 characters")
	}
	if !strings.Contains(got, "- Write 3-5 bullet points or 2-3 short paragraphs") {
		t.Errorf("slide instructions missing")
	}
}

func TestBuildGenerationPromptRuneTruncation(t *testing.T) {
	got := BuildGenerationPrompt(GenerationPromptInput{
		Topic:     "t",
		Kind:      entity.SectionKindSection,
		Neighbors: []Neighbor{{Title: "中文", Content: strings.Repeat("字", 210)}},
	})
	if !strings.Contains(got, "- 中文: "+strings.Repeat("字", 200)+"...") {
		t.Fatalf("multibyte content should be cut by characters")
	}
}

func TestBuildGenerationPromptCapsNeighbors(t *testing.T) {
	var ns []Neighbor
	for _, title := range []string{"A", "B", "C", "D"} {
		ns = append(ns, Neighbor{Title: title})
	}
	got := BuildGenerationPrompt(GenerationPromptInput{Topic: "t", SectionTitle: "s", Neighbors: ns})
	if strings.Contains(got, "- D:") {
		t.Fatalf("only 3 neighbors allowed:\n%s", got)
	}
}

func TestBuildRefinementPrompt(t *testing.T) {
	content := strings.Repeat("c", 500)
	doc := BuildRefinementPrompt(content, "make it shorter", entity.SectionKindSection)
	if !strings.Contains(doc, content) {
		t.Errorf("content must be echoed untruncated")
	}
	if !strings.Contains(doc, "Refinement Instruction: make it shorter") {
		t.Errorf("instruction missing")
	}
	if strings.Contains(doc, "suitable for presentation") {
		t.Errorf("document refinement should not ask for presentation style")
	}

	slide := BuildRefinementPrompt("x", "y", entity.SectionKindSlide)
	if !strings.HasSuffix(slide, "- Keep content concise and suitable for presentation") {
		t.Errorf("slide refinement must end with conciseness requirement:\n%s", slide)
	}
}

func TestBuildOutlinePrompt(t *testing.T) {
	doc := BuildOutlinePrompt("AI ethics", entity.DocKindDOCX, 12)
	if !strings.HasPrefix(doc, `Generate a document outline for a Word document on the topic: "AI ethics"`) {
		t.Errorf("docx prompt=%s", doc)
	}
	if !strings.Contains(doc, "Provide 5-7 section headers") || strings.Contains(doc, "12") {
		t.Errorf("docx prompt should ignore num_items")
	}

	slides := BuildOutlinePrompt("AI ethics", entity.DocKindPPTX, 0)
	if !strings.Contains(slides, "Provide 8 slide titles") {
		t.Errorf("pptx default count missing")
	}
	if !strings.Contains(BuildOutlinePrompt("x", entity.DocKindPPTX, 4), "Provide 4 slide titles") {
		t.Errorf("pptx count not honored")
	}
}
