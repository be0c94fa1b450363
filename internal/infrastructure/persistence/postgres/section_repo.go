package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
)

// SectionRepository 章节仓储实现
type SectionRepository struct {
	client *Client
}

// NewSectionRepository 创建章节仓储
func NewSectionRepository(client *Client) *SectionRepository {
	return &SectionRepository{client: client}
}

// Create 创建章节
func (r *SectionRepository) Create(ctx context.Context, section *entity.Section) error {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(section).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create section: %w", err)
	}
	return nil
}

// GetByIDAndProject 根据 ID 获取章节，且必须属于指定项目
func (r *SectionRepository) GetByIDAndProject(ctx context.Context, id, projectID string) (*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.GetByIDAndProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var section entity.Section
	if err := db.First(&section, "id = ? AND project_id = ?", id, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return &section, nil
}

// ListByProject 获取项目章节
func (r *SectionRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var sections []*entity.Section
	if err := db.Where("project_id = ?", projectID).
		Order("order_index ASC, created_at ASC").
		Find(&sections).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

// ListOthers 获取同项目的其他章节
func (r *SectionRepository) ListOthers(ctx context.Context, projectID, excludeID string, limit int) ([]*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.ListOthers")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var sections []*entity.Section
	if err := db.Where("project_id = ? AND id <> ?", projectID, excludeID).
		Order("order_index ASC, created_at ASC").
		Limit(limit).
		Find(&sections).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list neighbor sections: %w", err)
	}
	return sections, nil
}

// Update 按版本号条件更新章节
func (r *SectionRepository) Update(ctx context.Context, section *entity.Section, expectedVersion int) error {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.Update")
	defer span.End()

	section.UpdatedAt = time.Now()
	db := getDB(ctx, r.client.db)
	result := db.Model(&entity.Section{}).
		Where("id = ? AND version = ?", section.ID, expectedVersion).
		Updates(map[string]interface{}{
			"title":       section.Title,
			"order_index": section.OrderIndex,
			"content":     section.Content,
			"llm_raw":     section.LLMRaw,
			"version":     section.Version,
			"updated_at":  section.UpdatedAt,
		})
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to update section: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		span.RecordError(repository.ErrVersionConflict)
		return repository.ErrVersionConflict
	}
	return nil
}

// Delete 删除章节及其润色记录、反馈与评论
func (r *SectionRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.Delete")
	defer span.End()

	err := getDB(ctx, r.client.db).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&entity.Comment{}, &entity.Feedback{}, &entity.Revision{}} {
			if err := tx.Where("section_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entity.Section{}, "id = ?", id).Error
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete section: %w", err)
	}
	return nil
}
