package authoring

import (
	"context"
	"errors"
	"fmt"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	apperrors "docforge-ai-api/pkg/errors"
)

// resolveProject 按 ID 与所有者加载项目，不存在或不属于该用户时返回 ProjectNotFound
func resolveProject(ctx context.Context, repo repository.ProjectRepository, projectID, userID string) (*entity.Project, error) {
	project, err := repo.GetByIDAndOwner(ctx, projectID, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load project")
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}

// resolveSection 加载章节，必须属于指定项目
func resolveSection(ctx context.Context, repo repository.SectionRepository, projectID, sectionID string) (*entity.Section, error) {
	section, err := repo.GetByIDAndProject(ctx, sectionID, projectID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load section")
	}
	if section == nil {
		return nil, apperrors.ErrSectionNotFound
	}
	return section, nil
}

// storeError 统一仓储写入错误，版本冲突映射为 409
func storeError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrVersionConflict) {
		return apperrors.ErrConflict.WithDetail("Section was modified concurrently, please retry").WithError(err)
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Wrap(err, apperrors.CodeDatabaseError, msg)
}

// generationError 将适配器失败包装为带操作前缀的 GenerationFailed
func generationError(prefix string, err error) error {
	cause := err.Error()
	if appErr := apperrors.AsAppError(err); appErr.Detail != "" {
		cause = appErr.Detail
	}
	return apperrors.ErrGenerationFailed.WithDetail(fmt.Sprintf("%s: %s", prefix, cause)).WithError(err)
}

// invalidParam ozzo 校验失败转为 InvalidParam
func invalidParam(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.ErrInvalidParam.WithDetail(err.Error())
}
