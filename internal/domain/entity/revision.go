package entity

import (
	"time"

	"github.com/google/uuid"
)

// Revision 一次润色的不可变审计记录
type Revision struct {
	ID        string `json:"id" gorm:"type:varchar(36);primaryKey"`
	SectionID string `json:"section_id" gorm:"type:varchar(36);index;not null"`
	ProjectID string `json:"project_id" gorm:"type:varchar(36);index;not null"`
	UserID    string `json:"user_id" gorm:"type:varchar(36);not null"`
	// Prompt 润色指令原文
	Prompt string `json:"prompt" gorm:"type:text;not null"`
	// OldContent 润色前内容
	OldContent *string   `json:"old_content" gorm:"type:text"`
	NewContent string    `json:"new_content" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Revision) TableName() string {
	return "revisions"
}

// NewRevision 创建润色记录，oldContent 复制一份避免与章节共享指针
func NewRevision(section *Section, userID, instruction string, oldContent *string, newContent string) *Revision {
	var old *string
	if oldContent != nil {
		v := *oldContent
		old = &v
	}
	return &Revision{
		ID:         uuid.NewString(),
		SectionID:  section.ID,
		ProjectID:  section.ProjectID,
		UserID:     userID,
		Prompt:     instruction,
		OldContent: old,
		NewContent: newContent,
		CreatedAt:  time.Now(),
	}
}
