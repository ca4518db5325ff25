// internal/services/task_service.go
package services

import (
	"context"
	"errors"

	"github.com/NormalEdition/Planify/internal/models"
	"github.com/NormalEdition/Planify/internal/repositories"
)

var (
	ErrInvalidTask  = errors.New("task requires a non-empty title, description and date")
	ErrInvalidLevel = errors.New("level must be one of C, M, L")
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetAll(ctx context.Context) ([]models.Task, error)
	GetByLevel(ctx context.Context, level models.TaskLevel) ([]models.Task, error)
	Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error)
	UpdateFlags(ctx context.Context, id int64, patch models.FlagPatch) (*models.Task, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type taskService struct {
	repo repositories.TaskRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Title == "" || task.Desc == "" || task.Date.IsZero() {
		return nil, ErrInvalidTask
	}
	if task.Level == "" {
		task.Level = models.LevelCritical
	}
	if !task.Level.Valid() {
		return nil, ErrInvalidLevel
	}
	task.CompFlg = models.FlagNo
	task.DelFlg = models.FlagNo

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetAll(ctx context.Context) ([]models.Task, error) {
	return s.repo.FindAll(ctx)
}

func (s *taskService) GetByLevel(ctx context.Context, level models.TaskLevel) ([]models.Task, error) {
	return s.repo.FindByLevel(ctx, level)
}

func (s *taskService) Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error) {
	existingTask, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existingTask == nil {
		return nil, nil
	}

	existingTask.Title = updateData.Title
	existingTask.Desc = updateData.Desc
	existingTask.Date = updateData.Date
	existingTask.Level = updateData.Level
	existingTask.DelFlg = updateData.DelFlg
	existingTask.CompFlg = updateData.CompFlg

	if err := s.repo.Update(ctx, existingTask); err != nil {
		return nil, err
	}
	return existingTask, nil
}

// UpdateFlags applies the partial flag update used for soft delete and
// completion. delFlg=Y wins over compFlg=Y when both arrive in one request;
// any other combination is ignored here and falls through to a full update
// at the handler.
func (s *taskService) UpdateFlags(ctx context.Context, id int64, patch models.FlagPatch) (*models.Task, error) {
	existingTask, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existingTask == nil {
		return nil, nil
	}

	applied := models.FlagPatch{}
	switch {
	case patch.DelFlg != nil && *patch.DelFlg == models.FlagYes:
		applied.DelFlg = patch.DelFlg
		existingTask.DelFlg = models.FlagYes
	case patch.CompFlg != nil && *patch.CompFlg == models.FlagYes:
		applied.CompFlg = patch.CompFlg
		existingTask.CompFlg = models.FlagYes
	default:
		return existingTask, nil
	}

	if err := s.repo.UpdateFlags(ctx, id, applied); err != nil {
		return nil, err
	}
	return existingTask, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) (bool, error) {
	existingTask, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existingTask == nil {
		return false, nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
