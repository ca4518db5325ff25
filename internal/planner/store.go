package planner

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/NormalEdition/Planify/internal/models"
)

// ErrEmptyDraft is returned before any network call when a draft is missing a
// required field.
var ErrEmptyDraft = errors.New("task draft requires a title, description and date")

// TaskStore owns the client-visible task collection. Every mutation is
// confirmed by the remote store first and only then applied locally, so the
// cache never diverges from the last confirmed remote response. Soft-deleted
// tasks stay in the cache with their flag set; Snapshot hides them.
//
// opMu serializes whole mutations, remote round trip included, which closes
// the race between two in-flight updates to the same id. mu only guards the
// slice so reads never wait on the network.
type TaskStore struct {
	remote RemoteStore

	opMu sync.Mutex

	mu    sync.RWMutex
	tasks []models.Task

	subMu sync.Mutex
	subs  []func()
}

func NewTaskStore(remote RemoteStore) *TaskStore {
	return &TaskStore{remote: remote}
}

// Subscribe registers fn to run after every applied change to the snapshot.
// Derived views recompute from Snapshot inside fn; they hold no state of
// their own.
func (s *TaskStore) Subscribe(fn func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *TaskStore) notify() {
	s.subMu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// LoadAll replaces the local snapshot wholesale with the remote collection.
// On failure the snapshot is left empty; there is no retry.
func (s *TaskStore) LoadAll(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	tasks, err := s.remote.ListTasks(ctx)
	if err != nil {
		log.Printf("[store][load][err] %v", err)
		s.mu.Lock()
		s.tasks = nil
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	log.Printf("[store][load][ok] %d tasks", len(tasks))
	s.notify()
	return nil
}

// Create validates the draft, sends it to the remote store and appends the
// store-assigned task to the snapshot. A failed remote call leaves the
// snapshot untouched.
func (s *TaskStore) Create(ctx context.Context, draft models.TaskDraft) (*models.Task, error) {
	if draft.Title == "" || draft.Desc == "" || draft.Date.IsZero() {
		return nil, ErrEmptyDraft
	}
	if draft.Level == "" {
		draft.Level = models.LevelCritical
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	created, err := s.remote.CreateTask(ctx, draft)
	if err != nil {
		log.Printf("[store][create][err] %v", err)
		return nil, err
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, *created)
	s.mu.Unlock()
	log.Printf("[store][create][ok] id=%d title=%q", created.ID, created.Title)
	s.notify()
	return created, nil
}

// Complete marks the task completed on the remote store, then mirrors the
// flag locally. Completion is terminal; nothing here ever clears it.
func (s *TaskStore) Complete(ctx context.Context, id int64) error {
	flag := models.FlagYes
	return s.setFlag(ctx, id, models.FlagPatch{CompFlg: &flag})
}

// Delete soft-deletes the task on the remote store, then hides it locally by
// setting its flag. The record itself is retained.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	flag := models.FlagYes
	return s.setFlag(ctx, id, models.FlagPatch{DelFlg: &flag})
}

func (s *TaskStore) setFlag(ctx context.Context, id int64, patch models.FlagPatch) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.remote.UpdateTaskFlags(ctx, id, patch); err != nil {
		log.Printf("[store][flag][err] id=%d: %v", id, err)
		return err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if patch.CompFlg != nil {
			s.tasks[i].CompFlg = *patch.CompFlg
		}
		if patch.DelFlg != nil {
			s.tasks[i].DelFlg = *patch.DelFlg
		}
		break
	}
	s.mu.Unlock()
	log.Printf("[store][flag][ok] id=%d", id)
	s.notify()
	return nil
}

// Snapshot returns a copy of all live tasks in creation order. Soft-deleted
// records are hidden here and therefore from every derived view.
func (s *TaskStore) Snapshot() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Live() {
			out = append(out, t)
		}
	}
	return out
}
