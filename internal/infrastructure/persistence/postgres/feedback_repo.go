package postgres

import (
	"context"
	"fmt"

	"docforge-ai-api/internal/domain/entity"
)

// FeedbackRepository 反馈仓储实现
type FeedbackRepository struct {
	client *Client
}

// NewFeedbackRepository 创建反馈仓储
func NewFeedbackRepository(client *Client) *FeedbackRepository {
	return &FeedbackRepository{client: client}
}

// Create 写入反馈
func (r *FeedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	ctx, span := tracer.Start(ctx, "postgres.FeedbackRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(feedback).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

type feedbackCount struct {
	Liked bool
	Total int64
}

// CountBySection 统计章节点赞与点踩数量
func (r *FeedbackRepository) CountBySection(ctx context.Context, sectionID string) (int64, int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.FeedbackRepository.CountBySection")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var rows []feedbackCount
	if err := db.Model(&entity.Feedback{}).
		Select("liked, COUNT(*) AS total").
		Where("section_id = ?", sectionID).
		Group("liked").
		Scan(&rows).Error; err != nil {
		span.RecordError(err)
		return 0, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	var liked, disliked int64
	for _, row := range rows {
		if row.Liked {
			liked = row.Total
		} else {
			disliked = row.Total
		}
	}
	return liked, disliked, nil
}

// CommentRepository 评论仓储实现
type CommentRepository struct {
	client *Client
}

// NewCommentRepository 创建评论仓储
func NewCommentRepository(client *Client) *CommentRepository {
	return &CommentRepository{client: client}
}

// Create 写入评论
func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	ctx, span := tracer.Start(ctx, "postgres.CommentRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(comment).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListBySection 获取章节评论
func (r *CommentRepository) ListBySection(ctx context.Context, sectionID string) ([]*entity.Comment, error) {
	ctx, span := tracer.Start(ctx, "postgres.CommentRepository.ListBySection")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var comments []*entity.Comment
	if err := db.Where("section_id = ?", sectionID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
