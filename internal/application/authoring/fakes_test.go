package authoring

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	"docforge-ai-api/internal/domain/service"
)

// memStore 内存仓储，读取返回副本
type memStore struct {
	mu        sync.Mutex
	projects  map[string]*entity.Project
	sections  map[string]*entity.Section
	revisions []*entity.Revision
	feedbacks []*entity.Feedback
	comments  []*entity.Comment
	users     map[string]*entity.User

	// updateErr 非 nil 时 sections.Update 返回该错误
	updateErr error
}

func newMemStore() *memStore {
	return &memStore{
		projects: map[string]*entity.Project{},
		sections: map[string]*entity.Section{},
		users:    map[string]*entity.User{},
	}
}

func cloneSection(s *entity.Section) *entity.Section {
	cp := *s
	if s.Content != nil {
		v := *s.Content
		cp.Content = &v
	}
	if s.LLMRaw != nil {
		v := *s.LLMRaw
		cp.LLMRaw = &v
	}
	return &cp
}

func (m *memStore) addProject(userID string, kind entity.DocKind, topic string) *entity.Project {
	p := entity.NewProject(userID, "Project", kind, topic)
	m.mu.Lock()
	m.projects[p.ID] = p
	m.mu.Unlock()
	return p
}

func (m *memStore) addSection(p *entity.Project, title string, order int, content *string) *entity.Section {
	s := entity.NewSection(p, title, order)
	s.Content = content
	m.mu.Lock()
	// 保证创建时间可区分
	s.CreatedAt = time.Now().Add(time.Duration(len(m.sections)) * time.Millisecond)
	m.sections[s.ID] = cloneSection(s)
	m.mu.Unlock()
	return s
}

func (m *memStore) section(id string) *entity.Section {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneSection(m.sections[id])
}

func (m *memStore) revisionCount(sectionID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.revisions {
		if r.SectionID == sectionID {
			n++
		}
	}
	return n
}

func strPtr(s string) *string { return &s }

type projectRepo struct{ *memStore }

func (r projectRepo) Create(_ context.Context, p *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r projectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r projectRepo) GetByIDAndOwner(ctx context.Context, id, userID string) (*entity.Project, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil || p == nil || p.UserID != userID {
		return nil, err
	}
	return p, nil
}

func (r projectRepo) ListByOwner(_ context.Context, userID string, page repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*entity.Project
	for _, p := range r.projects {
		if p.UserID == userID {
			cp := *p
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	total := int64(len(items))
	start := page.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + page.Limit()
	if end > len(items) {
		end = len(items)
	}
	return repository.NewPagedResult(items[start:end], total, page), nil
}

func (r projectRepo) Update(_ context.Context, p *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r projectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.projects, id)
	for sid, s := range r.sections {
		if s.ProjectID == id {
			delete(r.sections, sid)
		}
	}
	return nil
}

type sectionRepo struct{ *memStore }

func (r sectionRepo) Create(_ context.Context, s *entity.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sections[s.ID] = cloneSection(s)
	return nil
}

func (r sectionRepo) GetByIDAndProject(_ context.Context, id, projectID string) (*entity.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sections[id]
	if !ok || s.ProjectID != projectID {
		return nil, nil
	}
	return cloneSection(s), nil
}

func (r sectionRepo) ordered(projectID string) []*entity.Section {
	var out []*entity.Section
	for _, s := range r.sections {
		if s.ProjectID == projectID {
			out = append(out, cloneSection(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r sectionRepo) ListByProject(_ context.Context, projectID string) ([]*entity.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ordered(projectID), nil
}

func (r sectionRepo) ListOthers(_ context.Context, projectID, excludeID string, limit int) ([]*entity.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Section
	for _, s := range r.ordered(projectID) {
		if s.ID == excludeID {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, s)
	}
	return out, nil
}

func (r sectionRepo) Update(_ context.Context, s *entity.Section, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	cur, ok := r.sections[s.ID]
	if !ok || cur.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	r.sections[s.ID] = cloneSection(s)
	return nil
}

func (r sectionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sections, id)
	return nil
}

type revisionRepo struct{ *memStore }

func (r revisionRepo) Create(_ context.Context, rev *entity.Revision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rev
	r.revisions = append(r.revisions, &cp)
	return nil
}

func (r revisionRepo) ListBySection(_ context.Context, sectionID string) ([]*entity.Revision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Revision
	for i := len(r.revisions) - 1; i >= 0; i-- {
		if r.revisions[i].SectionID == sectionID {
			out = append(out, r.revisions[i])
		}
	}
	return out, nil
}

type feedbackRepo struct{ *memStore }

func (r feedbackRepo) Create(_ context.Context, f *entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedbacks = append(r.feedbacks, f)
	return nil
}

func (r feedbackRepo) CountBySection(_ context.Context, sectionID string) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var liked, disliked int64
	for _, f := range r.feedbacks {
		if f.SectionID != sectionID {
			continue
		}
		if f.Liked {
			liked++
		} else {
			disliked++
		}
	}
	return liked, disliked, nil
}

type commentRepo struct{ *memStore }

func (r commentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, c)
	return nil
}

func (r commentRepo) ListBySection(_ context.Context, sectionID string) ([]*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Comment
	for i := len(r.comments) - 1; i >= 0; i-- {
		if r.comments[i].SectionID == sectionID {
			out = append(out, r.comments[i])
		}
	}
	return out, nil
}

type userRepo struct{ *memStore }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == entity.NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, email)
	return u != nil, err
}

// snapshotTx 失败时恢复章节与润色记录
type snapshotTx struct{ *memStore }

func (t snapshotTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	sections := make(map[string]*entity.Section, len(t.sections))
	for id, s := range t.sections {
		sections[id] = cloneSection(s)
	}
	revisions := append([]*entity.Revision(nil), t.revisions...)
	t.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.mu.Lock()
		t.sections = sections
		t.revisions = revisions
		t.mu.Unlock()
		return err
	}
	return nil
}

// scriptedGenerator 按顺序返回预设结果，记录收到的提示词
type scriptedGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
	workflows []string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string, _ ...service.GenerateOption) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	g.workflows = append(g.workflows, service.WorkflowFromContext(ctx))
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	out := g.responses[0]
	g.responses = g.responses[1:]
	return out, nil
}

func (g *scriptedGenerator) Provider() string { return "scripted" }

func (g *scriptedGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}
