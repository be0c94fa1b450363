package repository

import (
	"context"

	"docforge-ai-api/internal/domain/entity"
)

// SectionRepository 章节仓储接口
type SectionRepository interface {
	// Create 创建章节
	Create(ctx context.Context, section *entity.Section) error

	// GetByIDAndProject 根据 ID 获取章节，且必须属于指定项目
	GetByIDAndProject(ctx context.Context, id, projectID string) (*entity.Section, error)

	// ListByProject 获取项目章节（order_index 升序，相同时按创建时间）
	ListByProject(ctx context.Context, projectID string) ([]*entity.Section, error)

	// ListOthers 获取项目内除 excludeID 以外的前 limit 个章节
	ListOthers(ctx context.Context, projectID, excludeID string, limit int) ([]*entity.Section, error)

	// Update 按版本号条件更新章节（标题、序号、内容、原始输出）
	// section.Version 为新版本号，expectedVersion 为读取时的版本号
	// 版本已变化时返回 ErrVersionConflict
	Update(ctx context.Context, section *entity.Section, expectedVersion int) error

	// Delete 删除章节，级联删除润色记录、反馈与评论
	Delete(ctx context.Context, id string) error
}
