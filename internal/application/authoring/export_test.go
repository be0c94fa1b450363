package authoring

import (
	"context"
	"errors"
	"testing"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/service"
	apperrors "docforge-ai-api/pkg/errors"
)

type recordingRenderer struct {
	kind entity.DocKind
	doc  *service.ExportDocument
}

func (r *recordingRenderer) Render(_ context.Context, kind entity.DocKind, doc *service.ExportDocument) (*service.ExportFile, error) {
	r.kind, r.doc = kind, doc
	return &service.ExportFile{Name: doc.Title + "_" + doc.ID + "." + string(kind)}, nil
}

func TestExportProjectChecks(t *testing.T) {
	store := newMemStore()
	empty := store.addProject(owner, entity.DocKindDOCX, "t")
	doc := store.addProject(owner, entity.DocKindDOCX, "t")
	store.addSection(doc, "Intro", 0, nil)
	deck := store.addProject(owner, entity.DocKindPPTX, "t")
	store.addSection(deck, "Slide", 0, nil)

	exp := NewExporter(projectRepo{store}, sectionRepo{store}, &recordingRenderer{})
	ctx := context.Background()

	cases := []struct {
		projectID, typ, detail string
	}{
		{empty.ID, "docx", "Project has no sections to export"},
		{doc.ID, "pptx", "Project is not a PowerPoint presentation"},
		{deck.ID, "docx", "Project is not a Word document"},
		{doc.ID, "pdf", "Invalid export type. Use 'docx' or 'pptx'"},
		{doc.ID, "", "Invalid export type. Use 'docx' or 'pptx'"},
	}
	for _, tc := range cases {
		_, err := exp.ExportProject(ctx, owner, tc.projectID, tc.typ)
		if !errors.Is(err, apperrors.ErrInvalidParam) {
			t.Fatalf("%s/%s err=%v", tc.projectID, tc.typ, err)
		}
		if d := apperrors.AsAppError(err).Detail; d != tc.detail {
			t.Errorf("detail=%q want %q", d, tc.detail)
		}
	}

	if _, err := exp.ExportProject(ctx, "someone", doc.ID, "docx"); !errors.Is(err, apperrors.ErrProjectNotFound) {
		t.Fatalf("foreign owner err=%v", err)
	}
}

func TestExportProjectPassesOrderedSections(t *testing.T) {
	store := newMemStore()
	p := store.addProject(owner, entity.DocKindPPTX, "Topic")
	store.addSection(p, "B", 2, strPtr("bee"))
	store.addSection(p, "A", 1, nil)
	r := &recordingRenderer{}

	file, err := NewExporter(projectRepo{store}, sectionRepo{store}, r).ExportProject(context.Background(), owner, p.ID, "PPTX")
	if err != nil {
		t.Fatalf("ExportProject: %v", err)
	}
	if r.kind != entity.DocKindPPTX || len(r.doc.Sections) != 2 {
		t.Fatalf("kind=%s doc=%+v", r.kind, r.doc)
	}
	if r.doc.Sections[0].Title != "A" || r.doc.Sections[0].Content != "" || r.doc.Sections[1].Content != "bee" {
		t.Fatalf("sections=%+v", r.doc.Sections)
	}
	if file.Name != "Project_"+p.ID+".pptx" {
		t.Fatalf("name=%s", file.Name)
	}
}
