package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"

	"docforge-ai-api/internal/application/authoring"
	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/infrastructure/export"
	"docforge-ai-api/internal/infrastructure/llm"
	"docforge-ai-api/internal/infrastructure/persistence/postgres"
	"docforge-ai-api/internal/interfaces/http/handler"
	"docforge-ai-api/pkg/utils"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		ErrorCode string `json:"error_code"`
		Details   string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	cfg := &config.Config{
		App: config.AppConfig{Name: "docforge-ai-api", Version: "test", Env: "test"},
		LLM: config.LLMConfig{
			Provider:    llm.ProviderLorem,
			Providers:   map[string]config.ProviderConfig{llm.ProviderLorem: {}},
			Temperature: 0.7,
			CallTimeout: 5 * time.Second,
		},
		Security: config.SecurityConfig{
			JWT: config.JWTConfig{Secret: "test-secret", Issuer: "docforge-test", Expiration: time.Hour},
		},
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	client, err := postgres.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &config.PostgresConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := client.AutoMigrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	users := postgres.NewUserRepository(client)
	projects := postgres.NewProjectRepository(client)
	sections := postgres.NewSectionRepository(client)
	revisions := postgres.NewRevisionRepository(client)
	feedbacks := postgres.NewFeedbackRepository(client)
	comments := postgres.NewCommentRepository(client)

	adapter, err := llm.NewAdapter(ctx, &cfg.LLM)
	if err != nil {
		t.Fatalf("adapter: %v", err)
	}
	jwt := utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer)

	workspace := authoring.NewWorkspace(projects, sections, revisions, feedbacks, comments)
	handlers := &RouterHandlers{
		Health:     handler.NewHealthHandler(cfg, client, nil),
		Auth:       handler.NewAuthHandler(authoring.NewAccounts(users, jwt, &cfg.Security.JWT)),
		Project:    handler.NewProjectHandler(workspace),
		Section:    handler.NewSectionHandler(workspace),
		Generation: handler.NewGenerationHandler(authoring.NewService(projects, sections, revisions, postgres.NewTxManager(client), adapter, nil, cfg.Features.OutlineCache)),
		Feedback:   handler.NewFeedbackHandler(workspace),
		Export:     handler.NewExportHandler(authoring.NewExporter(projects, sections, export.NewRenderer(&cfg.Export))),
	}

	return &testServer{t: t, engine: NewWithDeps(cfg, handlers, jwt, nil).Engine()}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// call 发起请求并断言状态码，data 非 nil 时解析响应数据
func (s *testServer) call(method, path, token string, body any, wantStatus int, data any) envelope {
	s.t.Helper()
	w := s.do(method, path, token, body)
	if w.Code != wantStatus {
		s.t.Fatalf("%s %s: status=%d want %d body=%s", method, path, w.Code, wantStatus, w.Body.String())
	}
	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			s.t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	if data != nil {
		if err := json.Unmarshal(env.Data, data); err != nil {
			s.t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
	return env
}

func (s *testServer) login(email string) string {
	s.t.Helper()
	creds := map[string]string{"email": email, "password": "secret123"}
	s.call(http.MethodPost, "/api/v1/auth/register", "", creds, http.StatusCreated, nil)
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	s.call(http.MethodPost, "/api/v1/auth/login", "", creds, http.StatusOK, &tok)
	if tok.AccessToken == "" || tok.TokenType != "bearer" {
		s.t.Fatalf("token=%+v", tok)
	}
	return tok.AccessToken
}

func TestSystemEndpoints(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/", "/health", "/ready", "/live"} {
		if w := s.do(http.MethodGet, path, "", nil); w.Code != http.StatusOK {
			t.Errorf("%s: status=%d body=%s", path, w.Code, w.Body.String())
		}
	}
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login("writer@example.com")

	env := s.call(http.MethodPost, "/api/v1/auth/register", "",
		map[string]string{"email": "Writer@Example.com", "password": "secret123"}, http.StatusConflict, nil)
	if env.Error == nil || env.Error.Details != "Email already registered" {
		t.Fatalf("duplicate register error=%+v", env.Error)
	}

	s.call(http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "writer@example.com", "password": "wrong-pass"}, http.StatusUnauthorized, nil)

	var me struct {
		Email string `json:"email"`
	}
	s.call(http.MethodGet, "/api/v1/auth/me", token, nil, http.StatusOK, &me)
	if me.Email != "writer@example.com" {
		t.Fatalf("me=%+v", me)
	}
	s.call(http.MethodGet, "/api/v1/auth/me", "", nil, http.StatusUnauthorized, nil)
	s.call(http.MethodGet, "/api/v1/projects", "", nil, http.StatusUnauthorized, nil)
}

func TestAuthoringFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login("deck@example.com")

	var project struct {
		ID      string `json:"id"`
		DocType string `json:"doc_type"`
	}
	s.call(http.MethodPost, "/api/v1/projects", token,
		map[string]string{"title": "Solar Pitch", "doc_type": "pptx", "topic": "solar energy"}, http.StatusCreated, &project)
	if project.DocType != "pptx" {
		t.Fatalf("project=%+v", project)
	}

	var section struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	s.call(http.MethodPost, "/api/v1/projects/"+project.ID+"/sections", token,
		map[string]any{"title": "Why Solar", "order_index": 0}, http.StatusCreated, &section)
	if section.Type != "slide" {
		t.Fatalf("section type=%q", section.Type)
	}

	target := map[string]string{"project_id": project.ID, "section_id": section.ID}

	// 未生成内容时不能润色
	refine := map[string]string{"project_id": project.ID, "section_id": section.ID, "prompt": "make it shorter"}
	env := s.call(http.MethodPost, "/api/v1/refine/section", token, refine, http.StatusBadRequest, nil)
	if env.Error == nil || !strings.Contains(env.Error.Details, "Generate content first") {
		t.Fatalf("refine precondition error=%+v", env.Error)
	}

	var gen struct {
		SectionID string `json:"section_id"`
		Content   string `json:"content"`
		LLMRaw    string `json:"llm_raw"`
	}
	s.call(http.MethodPost, "/api/v1/generate/section", token, target, http.StatusOK, &gen)
	if gen.SectionID != section.ID || gen.Content == "" || gen.Content != gen.LLMRaw {
		t.Fatalf("generate=%+v", gen)
	}

	var ref struct {
		OldContent string `json:"old_content"`
		NewContent string `json:"new_content"`
		RevisionID string `json:"revision_id"`
	}
	s.call(http.MethodPost, "/api/v1/refine/section", token, refine, http.StatusOK, &ref)
	if ref.OldContent != gen.Content || ref.NewContent == "" || ref.RevisionID == "" {
		t.Fatalf("refine=%+v", ref)
	}

	var revisions []struct {
		ID     string `json:"id"`
		Prompt string `json:"prompt"`
	}
	s.call(http.MethodGet, "/api/v1/projects/"+project.ID+"/sections/"+section.ID+"/revisions", token, nil, http.StatusOK, &revisions)
	if len(revisions) != 1 || revisions[0].ID != ref.RevisionID || revisions[0].Prompt != "make it shorter" {
		t.Fatalf("revisions=%+v", revisions)
	}

	s.call(http.MethodPost, "/api/v1/feedback", token,
		map[string]any{"project_id": project.ID, "section_id": section.ID, "liked": true}, http.StatusCreated, nil)
	var summary struct {
		Liked, Disliked, Total int64
	}
	s.call(http.MethodGet, "/api/v1/projects/"+project.ID+"/sections/"+section.ID+"/feedback", token, nil, http.StatusOK, &summary)
	if summary.Liked != 1 || summary.Total != 1 {
		t.Fatalf("summary=%+v", summary)
	}

	s.call(http.MethodPost, "/api/v1/comments", token,
		map[string]any{"project_id": project.ID, "section_id": section.ID, "comment_text": "great slide"}, http.StatusCreated, nil)

	var outline struct {
		Items []string `json:"items"`
	}
	s.call(http.MethodPost, "/api/v1/ai/suggest-outline", token,
		map[string]any{"topic": "solar energy", "doc_type": "pptx", "num_items": 3}, http.StatusOK, &outline)
	if len(outline.Items) == 0 {
		t.Fatalf("outline empty")
	}

	s.call(http.MethodGet, "/api/v1/export/project/"+project.ID+"?type=docx", token, nil, http.StatusBadRequest, nil)
	s.call(http.MethodGet, "/api/v1/export/project/"+project.ID, token, nil, http.StatusBadRequest, nil)

	w := s.do(http.MethodGet, "/api/v1/export/project/"+project.ID+"?type=pptx", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export status=%d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != export.ContentTypePPTX {
		t.Fatalf("content type=%q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Solar_Pitch_"+project.ID+".pptx") {
		t.Fatalf("content disposition=%q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Fatalf("export body is not a zip archive")
	}
}

func TestOwnershipIsolation(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("owner@example.com")
	other := s.login("other@example.com")

	var project struct {
		ID string `json:"id"`
	}
	s.call(http.MethodPost, "/api/v1/projects", owner,
		map[string]string{"title": "Report", "doc_type": "docx", "topic": "wind"}, http.StatusCreated, &project)

	s.call(http.MethodGet, "/api/v1/projects/"+project.ID, other, nil, http.StatusNotFound, nil)
	s.call(http.MethodDelete, "/api/v1/projects/"+project.ID, other, nil, http.StatusNotFound, nil)
	s.call(http.MethodGet, "/api/v1/export/project/"+project.ID+"?type=docx", other, nil, http.StatusNotFound, nil)

	var list []struct {
		ID string `json:"id"`
	}
	env := s.call(http.MethodGet, "/api/v1/projects", other, nil, http.StatusOK, &list)
	if string(env.Data) != "[]" || len(list) != 0 {
		t.Fatalf("other user sees %d projects", len(list))
	}

	s.call(http.MethodDelete, "/api/v1/projects/"+project.ID, owner, nil, http.StatusNoContent, nil)
	s.call(http.MethodGet, "/api/v1/projects/"+project.ID, owner, nil, http.StatusNotFound, nil)
}

func TestEmptyListsEncodeAsArrays(t *testing.T) {
	s := newTestServer(t)
	token := s.login("empty@example.com")

	if env := s.call(http.MethodGet, "/api/v1/projects", token, nil, http.StatusOK, nil); string(env.Data) != "[]" {
		t.Fatalf("projects data=%s", env.Data)
	}

	var project struct {
		ID string `json:"id"`
	}
	s.call(http.MethodPost, "/api/v1/projects", token,
		map[string]string{"title": "Blank", "doc_type": "docx", "topic": "nothing yet"}, http.StatusCreated, &project)
	var section struct {
		ID string `json:"id"`
	}
	s.call(http.MethodPost, "/api/v1/projects/"+project.ID+"/sections", token,
		map[string]any{"title": "Intro", "order_index": 0}, http.StatusCreated, &section)

	base := "/api/v1/projects/" + project.ID + "/sections/" + section.ID
	for _, path := range []string{base + "/revisions", base + "/comments"} {
		if env := s.call(http.MethodGet, path, token, nil, http.StatusOK, nil); string(env.Data) != "[]" {
			t.Errorf("GET %s data=%s", path, env.Data)
		}
	}
}
