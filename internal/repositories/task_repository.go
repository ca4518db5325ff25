package repositories

import (
	"context"
	"database/sql"

	"github.com/NormalEdition/Planify/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context) ([]models.Task, error)
	FindByLevel(ctx context.Context, level models.TaskLevel) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	UpdateFlags(ctx context.Context, id int64, patch models.FlagPatch) error
	Delete(ctx context.Context, id int64) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (title, descr, date, level, del_flg, comp_flg)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING ids`
	return r.db.QueryRowContext(ctx, query,
		task.Title, task.Desc, task.Date, task.Level, task.DelFlg, task.CompFlg,
	).Scan(&task.ID)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ids, title, descr, date, level, del_flg, comp_flg
       FROM tasks WHERE ids = $1`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Desc, &task.Date,
		&task.Level, &task.DelFlg, &task.CompFlg,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context) ([]models.Task, error) {
	// ids order == creation order; every derived view relies on it.
	query := `SELECT ids, title, descr, date, level, del_flg, comp_flg
       FROM tasks ORDER BY ids ASC`
	return r.queryTasks(ctx, query)
}

func (r *taskRepository) FindByLevel(ctx context.Context, level models.TaskLevel) ([]models.Task, error) {
	query := `SELECT ids, title, descr, date, level, del_flg, comp_flg
       FROM tasks WHERE level = $1 ORDER BY ids ASC`
	return r.queryTasks(ctx, query, level)
}

func (r *taskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Desc, &t.Date, &t.Level, &t.DelFlg, &t.CompFlg,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			title=$1, descr=$2, date=$3, level=$4, del_flg=$5, comp_flg=$6
		WHERE ids=$7`
	_, err := r.db.ExecContext(ctx, query,
		task.Title, task.Desc, task.Date, task.Level, task.DelFlg, task.CompFlg, task.ID,
	)
	return err
}

func (r *taskRepository) UpdateFlags(ctx context.Context, id int64, patch models.FlagPatch) error {
	if patch.DelFlg != nil {
		_, err := r.db.ExecContext(ctx,
			`UPDATE tasks SET del_flg=$1 WHERE ids=$2`, *patch.DelFlg, id)
		return err
	}
	if patch.CompFlg != nil {
		_, err := r.db.ExecContext(ctx,
			`UPDATE tasks SET comp_flg=$1 WHERE ids=$2`, *patch.CompFlg, id)
		return err
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE ids = $1`, id)
	return err
}
