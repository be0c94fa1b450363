package repository

import (
	"context"

	"docforge-ai-api/internal/domain/entity"
)

// RevisionRepository 润色记录仓储接口（只追加）
type RevisionRepository interface {
	// Create 写入润色记录
	Create(ctx context.Context, revision *entity.Revision) error

	// ListBySection 获取章节润色历史（最新在前）
	ListBySection(ctx context.Context, sectionID string) ([]*entity.Revision, error)
}

// FeedbackRepository 反馈仓储接口
type FeedbackRepository interface {
	// Create 写入反馈，不做去重
	Create(ctx context.Context, feedback *entity.Feedback) error

	// CountBySection 统计章节反馈（点赞数, 点踩数）
	CountBySection(ctx context.Context, sectionID string) (liked int64, disliked int64, err error)
}

// CommentRepository 评论仓储接口
type CommentRepository interface {
	// Create 写入评论
	Create(ctx context.Context, comment *entity.Comment) error

	// ListBySection 获取章节评论（最新在前）
	ListBySection(ctx context.Context, sectionID string) ([]*entity.Comment, error)
}
