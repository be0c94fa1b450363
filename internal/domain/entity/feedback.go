package entity

import (
	"time"

	"github.com/google/uuid"
)

// Feedback 对章节的点赞/点踩，同一用户可重复提交
type Feedback struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	SectionID string    `json:"section_id" gorm:"type:varchar(36);index;not null"`
	ProjectID string    `json:"project_id" gorm:"type:varchar(36);index;not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null"`
	Liked     bool      `json:"liked" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Feedback) TableName() string {
	return "feedbacks"
}

// NewFeedback 创建反馈
func NewFeedback(section *Section, userID string, liked bool) *Feedback {
	return &Feedback{
		ID:        uuid.NewString(),
		SectionID: section.ID,
		ProjectID: section.ProjectID,
		UserID:    userID,
		Liked:     liked,
		CreatedAt: time.Now(),
	}
}

// Comment 章节评论
type Comment struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	SectionID   string    `json:"section_id" gorm:"type:varchar(36);index;not null"`
	ProjectID   string    `json:"project_id" gorm:"type:varchar(36);index;not null"`
	UserID      string    `json:"user_id" gorm:"type:varchar(36);not null"`
	CommentText string    `json:"comment_text" gorm:"column:comment_text;type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}

// NewComment 创建评论
func NewComment(section *Section, userID, text string) *Comment {
	return &Comment{
		ID:          uuid.NewString(),
		SectionID:   section.ID,
		ProjectID:   section.ProjectID,
		UserID:      userID,
		CommentText: text,
		CreatedAt:   time.Now(),
	}
}
