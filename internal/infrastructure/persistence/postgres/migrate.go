package postgres

import (
	"context"
	"fmt"

	"docforge-ai-api/internal/domain/entity"
)

// models 需要迁移的表
var models = []interface{}{
	&entity.User{},
	&entity.Project{},
	&entity.Section{},
	&entity.Revision{},
	&entity.Feedback{},
	&entity.Comment{},
}

// AutoMigrate 创建或更新表结构
func (c *Client) AutoMigrate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.AutoMigrate")
	defer span.End()

	if err := c.db.WithContext(ctx).AutoMigrate(models...); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// 章节排序查询的复合索引
	if !c.db.Migrator().HasIndex(&entity.Section{}, "idx_sections_project_order") {
		if err := c.db.WithContext(ctx).Exec("CREATE INDEX idx_sections_project_order ON sections (project_id, order_index)").Error; err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to create section order index: %w", err)
		}
	}
	return nil
}
