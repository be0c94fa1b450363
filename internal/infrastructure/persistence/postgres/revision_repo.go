package postgres

import (
	"context"
	"fmt"

	"docforge-ai-api/internal/domain/entity"
)

// RevisionRepository 润色记录仓储实现
type RevisionRepository struct {
	client *Client
}

// NewRevisionRepository 创建润色记录仓储
func NewRevisionRepository(client *Client) *RevisionRepository {
	return &RevisionRepository{client: client}
}

// Create 写入润色记录
func (r *RevisionRepository) Create(ctx context.Context, revision *entity.Revision) error {
	ctx, span := tracer.Start(ctx, "postgres.RevisionRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(revision).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create revision: %w", err)
	}
	return nil
}

// ListBySection 获取章节润色历史
func (r *RevisionRepository) ListBySection(ctx context.Context, sectionID string) ([]*entity.Revision, error) {
	ctx, span := tracer.Start(ctx, "postgres.RevisionRepository.ListBySection")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var revisions []*entity.Revision
	if err := db.Where("section_id = ?", sectionID).
		Order("created_at DESC").
		Find(&revisions).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	return revisions, nil
}
