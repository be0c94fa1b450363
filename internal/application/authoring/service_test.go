package authoring

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	apperrors "docforge-ai-api/pkg/errors"
)

const owner = "user-1"

func newTestService(store *memStore, gen *scriptedGenerator, cache OutlineCache) *Service {
	return NewService(
		projectRepo{store}, sectionRepo{store}, revisionRepo{store}, snapshotTx{store},
		gen, cache, config.OutlineCacheFeature{Enabled: cache != nil, TTL: time.Minute},
	)
}

func TestGenerateSectionSetsContentAndRaw(t *testing.T) {
	store := newMemStore()
	p := store.addProject(owner, entity.DocKindDOCX, "Solar energy")
	s := store.addSection(p, "Introduction", 0, nil)
	gen := &scriptedGenerator{responses: []string{"First draft", "Second draft"}}
	svc := newTestService(store, gen, nil)

	res, err := svc.GenerateSection(context.Background(), owner, p.ID, s.ID)
	if err != nil {
		t.Fatalf("GenerateSection: %v", err)
	}
	if res.Content != "First draft" || res.LLMRaw != "First draft" || res.Message != "Content generated successfully" {
		t.Fatalf("result=%+v", res)
	}
	got := store.section(s.ID)
	if got.ContentOrEmpty() != "First draft" || *got.LLMRaw != "First draft" {
		t.Fatalf("stored content=%q raw=%v", got.ContentOrEmpty(), got.LLMRaw)
	}

	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Solar energy") || !strings.Contains(prompt, "Introduction") {
		t.Errorf("prompt missing topic or title:\n%s", prompt)
	}
	if strings.Contains(prompt, "Context from other sections") {
		t.Errorf("prompt should not contain neighbor block")
	}
	if gen.workflows[0] != WorkflowGenerate {
		t.Errorf("workflow=%q", gen.workflows[0])
	}

	if _, err := svc.GenerateSection(context.Background(), owner, p.ID, s.ID); err != nil {
		t.Fatalf("second GenerateSection: %v", err)
	}
	got = store.section(s.ID)
	if got.ContentOrEmpty() != "Second draft" || *got.LLMRaw != "Second draft" {
		t.Fatalf("second generation should overwrite, got %q", got.ContentOrEmpty())
	}
	if !strings.Contains(gen.prompts[1], "Previous content (for context):\nFirst draft...") {
		t.Errorf("second prompt should carry previous content:\n%s", gen.prompts[1])
	}
	if n := store.revisionCount(s.ID); n != 0 {
		t.Fatalf("generation created %d revisions", n)
	}
}

func TestGenerateSectionNeighbors(t *testing.T) {
	store := newMemStore()
	p := store.addProject(owner, entity.DocKindPPTX, "Rust")
	store.addSection(p, "S0", 0, strPtr("zero"))
	target := store.addSection(p, "S1", 1, nil)
	store.addSection(p, "S2", 2, nil)
	store.addSection(p, "S3", 3, strPtr("three"))
	store.addSection(p, "S4", 4, strPtr("four"))
	gen := &scriptedGenerator{responses: []string{"bullets"}}

	if _, err := newTestService(store, gen, nil).GenerateSection(context.Background(), owner, p.ID, target.ID); err != nil {
		t.Fatalf("GenerateSection: %v", err)
	}
	prompt := gen.prompts[0]
	for _, want := range []string{"- S0: zero...", "- S2: ...", "- S3: three...", "PowerPoint slide"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "- S1:") || strings.Contains(prompt, "- S4:") {
		t.Errorf("prompt should exclude target and keep only 3 neighbors:\n%s", prompt)
	}
}

func TestGenerateSectionFailureLeavesSectionUnchanged(t *testing.T) {
	store := newMemStore()
	p := store.addProject(owner, entity.DocKindDOCX, "topic")
	s := store.addSection(p, "Intro", 0, strPtr("keep me"))
	gen := &scriptedGenerator{err: apperrors.ErrGenerationFailed.WithDetail("quota exceeded")}

	_, err := newTestService(store, gen, nil).GenerateSection(context.Background(), owner, p.ID, s.ID)
	if !apperrors.HasCode(err, apperrors.CodeGenerationFailed) {
		t.Fatalf("err=%v", err)
	}
	if d := apperrors.AsAppError(err).Detail; d != "Failed to generate content: quota exceeded" {
		t.Errorf("detail=%q", d)
	}
	got := store.section(s.ID)
	if got.ContentOrEmpty() != "keep me" || got.LLMRaw != nil || got.Version != 0 {
		t.Fatalf("section mutated: %+v", got)
	}
}

func TestGenerateSectionOwnership(t *testing.T) {
	store := newMemStore()
	p1 := store.addProject(owner, entity.DocKindDOCX, "a")
	p2 := store.addProject(owner, entity.DocKindDOCX, "b")
	foreign := store.addSection(p2, "Other", 0, nil)
	gen := &scriptedGenerator{responses: []string{"x"}}
	svc := newTestService(store, gen, nil)

	_, err := svc.GenerateSection(context.Background(), owner, p1.ID, foreign.ID)
	if !errors.Is(err, apperrors.ErrSectionNotFound) {
		t.Fatalf("cross-project err=%v", err)
	}
	_, err = svc.GenerateSection(context.Background(), "intruder", p2.ID, foreign.ID)
	if !errors.Is(err, apperrors.ErrProjectNotFound) {
		t.Fatalf("foreign owner err=%v", err)
	}
	if gen.calls() != 0 {
		t.Fatalf("generator called %d times", gen.calls())
	}
}

func TestRefineSectionRequiresContent(t *testing.T) {
	for _, content := range []*string{nil, strPtr("")} {
		store := newMemStore()
		p := store.addProject(owner, entity.DocKindDOCX, "topic")
		s := store.addSection(p, "Intro", 0, content)
		gen := &scriptedGenerator{responses: []string{"B"}}

		_, err := newTestService(store, gen, nil).RefineSection(context.Background(), owner, p.ID, s.ID, "shorter")
		if !errors.Is(err, apperrors.ErrPreconditionFailed) {
			t.Fatalf("err=%v", err)
		}
		if d := apperrors.AsAppError(err).Detail; d != "Section has no content to refine. Generate content first." {
			t.Errorf("detail=%q", d)
		}
		if gen.calls() != 0 || store.revisionCount(s.ID) != 0 {
			t.Fatalf("calls=%d revisions=%d", gen.calls(), store.revisionCount(s.ID))
		}
	}
}

func TestRefineSectionRecordsRevision(t *testing.T) {
	store := newMemStore()
	p := store.addProject(owner, entity.DocKindDOCX, "topic")
	s := store.addSection(p, "Intro", 0, strPtr("A"))
	s.LLMRaw = strPtr("raw A")
	store.sections[s.ID] = cloneSection(s)
	gen := &scriptedGenerator{responses: []string{"B"}}

	res, err := newTestService(store, gen, nil).RefineSection(context.Background(), owner, p.ID, s.ID, "make it shorter")
	if err != nil {
		t.Fatalf("RefineSection: %v", err)
	}
	if res.OldContent != "A" || res.NewContent != "B" || res.RevisionID == "" || res.Message != "Content refined successfully" {
		t.Fatalf("result=%+v", res)
	}

	got := store.section(s.ID)
	if got.ContentOrEmpty() != "B" {
		t.Fatalf("content=%q", got.ContentOrEmpty())
	}
	if got.LLMRaw == nil || *got.LLMRaw != "raw A" {
		t.Fatalf("refinement must not touch llm_raw")
	}

	revs, _ := revisionRepo{store}.ListBySection(context.Background(), s.ID)
	if len(revs) != 1 {
		t.Fatalf("revisions=%d", len(revs))
	}
	rev := revs[0]
	if rev.ID != res.RevisionID || *rev.OldContent != "A" || rev.NewContent != "B" || rev.Prompt != "make it shorter" || rev.UserID != owner {
		t.Fatalf("revision=%+v", rev)
	}
	if !strings.HasPrefix(gen.prompts[0], "Current Content:\nA\n") || gen.workflows[0] != WorkflowRefine {
		t.Errorf("prompt=%q workflow=%q", gen.prompts[0], gen.workflows[0])
	}
}

func TestRefineSectionProviderFailure(t *testing.T) {
	store := newMemStore()
	p := store.addProject(owner, entity.DocKindPPTX, "topic")
	s := store.addSection(p, "Slide", 0, strPtr("A"))
	gen := &scriptedGenerator{err: errors.New("network down")}

	_, err := newTestService(store, gen, nil).RefineSection(context.Background(), owner, p.ID, s.ID, "punchier")
	if !apperrors.HasCode(err, apperrors.CodeGenerationFailed) {
		t.Fatalf("err=%v", err)
	}
	if d := apperrors.AsAppError(err).Detail; d != "Failed to refine content: network down" {
		t.Errorf("detail=%q", d)
	}
	if store.section(s.ID).ContentOrEmpty() != "A" || store.revisionCount(s.ID) != 0 {
		t.Fatalf("state mutated after provider failure")
	}
}

func TestRefineSectionConflictRollsBack(t *testing.T) {
	store := newMemStore()
	p := store.addProject(owner, entity.DocKindDOCX, "topic")
	s := store.addSection(p, "Intro", 0, strPtr("A"))
	store.updateErr = repository.ErrVersionConflict
	gen := &scriptedGenerator{responses: []string{"B"}}

	_, err := newTestService(store, gen, nil).RefineSection(context.Background(), owner, p.ID, s.ID, "shorter")
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("err=%v", err)
	}
	if store.revisionCount(s.ID) != 0 {
		t.Fatalf("revision survived a rolled back transaction")
	}
	if store.section(s.ID).ContentOrEmpty() != "A" {
		t.Fatalf("content changed")
	}
}

func TestRefineSectionValidatesInstruction(t *testing.T) {
	store := newMemStore()
	p := store.addProject(owner, entity.DocKindDOCX, "topic")
	s := store.addSection(p, "Intro", 0, strPtr("A"))
	_, err := newTestService(store, &scriptedGenerator{}, nil).RefineSection(context.Background(), owner, p.ID, s.ID, "")
	if !errors.Is(err, apperrors.ErrInvalidParam) {
		t.Fatalf("err=%v", err)
	}
}

// memCache 模拟 redis.Cache 的读穿语义
type memCache struct {
	data map[string][]byte
	err  error
}

func (c *memCache) GetOrLoadSafe(_ context.Context, key string, _ time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	v, err := loader()
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	c.data[key] = b
	return b, nil
}

func TestSuggestOutline(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"1. Intro\n- Methods\n# note\n\n* Results"}}
	svc := newTestService(newMemStore(), gen, nil)

	res, err := svc.SuggestOutline(context.Background(), "Climate", "PPTX", 0)
	if err != nil {
		t.Fatalf("SuggestOutline: %v", err)
	}
	if strings.Join(res.Items, "|") != "Intro|Methods|Results" || res.Message != "Generated 3 suggestions" {
		t.Fatalf("result=%+v", res)
	}
	if !strings.Contains(gen.prompts[0], "Provide 8 slide titles") || !strings.Contains(gen.prompts[0], `"Climate"`) {
		t.Errorf("prompt=%s", gen.prompts[0])
	}
}

func TestSuggestOutlineErrors(t *testing.T) {
	svc := newTestService(newMemStore(), &scriptedGenerator{responses: []string{"# only\n\n"}}, nil)

	if _, err := svc.SuggestOutline(context.Background(), "x", "pdf", 0); !errors.Is(err, apperrors.ErrInvalidParam) {
		t.Fatalf("doc_type err=%v", err)
	} else if d := apperrors.AsAppError(err).Detail; d != "doc_type must be 'docx' or 'pptx'" {
		t.Errorf("detail=%q", d)
	}
	if _, err := svc.SuggestOutline(context.Background(), "x", "pptx", 51); !errors.Is(err, apperrors.ErrInvalidParam) {
		t.Fatalf("num_items err=%v", err)
	}
	if _, err := svc.SuggestOutline(context.Background(), "  ", "docx", 0); !errors.Is(err, apperrors.ErrInvalidParam) {
		t.Fatalf("topic err=%v", err)
	}
	if _, err := svc.SuggestOutline(context.Background(), "x", "docx", 0); !errors.Is(err, apperrors.ErrParsingFailed) {
		t.Fatalf("parse err=%v", err)
	}
}

func TestSuggestOutlineCache(t *testing.T) {
	cache := &memCache{data: map[string][]byte{}}
	gen := &scriptedGenerator{responses: []string{"A\nB", "C\nD"}}
	svc := newTestService(newMemStore(), gen, cache)

	first, err := svc.SuggestOutline(context.Background(), "Go  Concurrency", "docx", 3)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := svc.SuggestOutline(context.Background(), "go concurrency", "DOCX", 0)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if gen.calls() != 1 {
		t.Fatalf("generator calls=%d want 1", gen.calls())
	}
	if strings.Join(first.Items, ",") != strings.Join(second.Items, ",") {
		t.Fatalf("cached items differ: %v vs %v", first.Items, second.Items)
	}

	// 缓存不可用时直接调用模型
	cache.err = errors.New("redis down")
	third, err := svc.SuggestOutline(context.Background(), "go concurrency", "docx", 0)
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}
	if strings.Join(third.Items, ",") != "C,D" || gen.calls() != 2 {
		t.Fatalf("fallback items=%v calls=%d", third.Items, gen.calls())
	}
}

func TestOutlineCacheKey(t *testing.T) {
	a := outlineCacheKey("gemini", entity.DocKindPPTX, 8, "Deep  Learning ")
	b := outlineCacheKey("gemini", entity.DocKindPPTX, 8, "deep learning")
	if a != b || !strings.HasPrefix(a, "outline:") {
		t.Fatalf("keys should match after normalization: %s %s", a, b)
	}
	if a == outlineCacheKey("openai", entity.DocKindPPTX, 8, "deep learning") {
		t.Fatalf("provider must be part of the key")
	}
	if a == outlineCacheKey("gemini", entity.DocKindPPTX, 5, "deep learning") {
		t.Fatalf("count must be part of the key")
	}
}
