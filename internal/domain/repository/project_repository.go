package repository

import (
	"context"

	"docforge-ai-api/internal/domain/entity"
)

// ProjectRepository 项目仓储接口
type ProjectRepository interface {
	// Create 创建项目
	Create(ctx context.Context, project *entity.Project) error

	// GetByID 根据 ID 获取项目，不存在时返回 nil, nil
	GetByID(ctx context.Context, id string) (*entity.Project, error)

	// GetByIDAndOwner 根据 ID 与所有者获取项目，不属于该用户时同样返回 nil, nil
	GetByIDAndOwner(ctx context.Context, id, userID string) (*entity.Project, error)

	// ListByOwner 获取用户项目列表（按创建时间倒序）
	ListByOwner(ctx context.Context, userID string, pagination Pagination) (*PagedResult[*entity.Project], error)

	// Update 更新项目标题与主题
	Update(ctx context.Context, project *entity.Project) error

	// Delete 删除项目，级联删除章节、润色记录、反馈与评论
	Delete(ctx context.Context, id string) error
}
