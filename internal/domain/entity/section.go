package entity

import (
	"time"

	"github.com/google/uuid"
)

// Section 项目中的有序内容单元（文档小节或幻灯片）
type Section struct {
	ID         string      `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProjectID  string      `json:"project_id" gorm:"type:varchar(36);index;not null"`
	Kind       SectionKind `json:"type" gorm:"column:type;type:varchar(16);not null"`
	OrderIndex int         `json:"order_index" gorm:"not null;default:0"`
	Title      string      `json:"title" gorm:"type:varchar(500);not null"`
	// Content 为 nil 表示尚未生成
	Content *string `json:"content" gorm:"type:text"`
	// LLMRaw 只记录最近一次生成调用的原始输出，润色不改写它
	LLMRaw *string `json:"llm_raw" gorm:"column:llm_raw;type:text"`
	// Version 每次内容写入递增，用于润色的乐观并发控制
	Version   int       `json:"version" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Section) TableName() string {
	return "sections"
}

// NewSection 在项目下创建章节，类型由项目文档类型派生
func NewSection(project *Project, title string, orderIndex int) *Section {
	now := time.Now()
	return &Section{
		ID:         uuid.NewString(),
		ProjectID:  project.ID,
		Kind:       project.DocKind.SectionKind(),
		OrderIndex: orderIndex,
		Title:      title,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// HasContent 是否已有可润色的内容
func (s *Section) HasContent() bool {
	return s.Content != nil && *s.Content != ""
}

// ContentOrEmpty 返回内容，未生成时为空串
func (s *Section) ContentOrEmpty() string {
	if s.Content == nil {
		return ""
	}
	return *s.Content
}

// ApplyGeneration 覆盖内容与原始输出
func (s *Section) ApplyGeneration(text string) {
	s.Content = &text
	raw := text
	s.LLMRaw = &raw
	s.Version++
}

// ApplyRefinement 覆盖内容，保留 LLMRaw
func (s *Section) ApplyRefinement(text string) {
	s.Content = &text
	s.Version++
}

// ApplyManualEdit 用户手动编辑内容
func (s *Section) ApplyManualEdit(text string) {
	s.Content = &text
	s.Version++
}
