package entity

import (
	"time"

	"github.com/google/uuid"
)

// Project 文档项目实体
type Project struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	DocKind   DocKind   `json:"doc_type" gorm:"column:doc_type;type:varchar(16);not null"`
	Topic     string    `json:"topic" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}

// NewProject 创建新项目
func NewProject(userID, title string, kind DocKind, topic string) *Project {
	now := time.Now()
	return &Project{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		DocKind:   kind,
		Topic:     topic,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OwnedBy 项目是否属于指定用户
func (p *Project) OwnedBy(userID string) bool {
	return p != nil && userID != "" && p.UserID == userID
}
