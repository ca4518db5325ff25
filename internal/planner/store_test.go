package planner

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/NormalEdition/Planify/internal/models"
)

type fakeRemote struct {
	tasks  []models.Task
	nextID int64

	failList   bool
	failCreate bool
	failUpdate bool

	creates int
	updates map[int64][]models.FlagPatch
}

var errRemote = errors.New("remote store unavailable")

func newFakeRemote(tasks ...models.Task) *fakeRemote {
	return &fakeRemote{
		tasks:   tasks,
		nextID:  int64(len(tasks)) + 1,
		updates: make(map[int64][]models.FlagPatch),
	}
}

func (f *fakeRemote) ListTasks(ctx context.Context) ([]models.Task, error) {
	if f.failList {
		return nil, errRemote
	}
	out := make([]models.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeRemote) CreateTask(ctx context.Context, draft models.TaskDraft) (*models.Task, error) {
	f.creates++
	if f.failCreate {
		return nil, errRemote
	}
	created := models.Task{
		ID:      f.nextID,
		Title:   draft.Title,
		Desc:    draft.Desc,
		Date:    draft.Date,
		Level:   draft.Level,
		DelFlg:  models.FlagNo,
		CompFlg: models.FlagNo,
	}
	f.nextID++
	f.tasks = append(f.tasks, created)
	return &created, nil
}

func (f *fakeRemote) UpdateTaskFlags(ctx context.Context, id int64, patch models.FlagPatch) error {
	if f.failUpdate {
		return errRemote
	}
	f.updates[id] = append(f.updates[id], patch)
	return nil
}

func TestLoadAllReplacesSnapshot(t *testing.T) {
	remote := newFakeRemote(
		task(1, "2024-05-10", models.LevelCritical, models.FlagNo, models.FlagNo),
		task(2, "2024-05-11", models.LevelLow, models.FlagNo, models.FlagNo),
	)
	store := NewTaskStore(remote)

	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if got := len(store.Snapshot()); got != 2 {
		t.Fatalf("got %d tasks, want 2", got)
	}
}

func TestLoadAllFailureLeavesSnapshotEmpty(t *testing.T) {
	remote := newFakeRemote(task(1, "2024-05-10", models.LevelCritical, models.FlagNo, models.FlagNo))
	store := NewTaskStore(remote)
	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	remote.failList = true
	if err := store.LoadAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := len(store.Snapshot()); got != 0 {
		t.Errorf("got %d tasks after failed reload, want 0", got)
	}
}

func TestCreateAppendsStoreAssignedTask(t *testing.T) {
	store := NewTaskStore(newFakeRemote())
	draft := models.TaskDraft{Title: "Buy milk", Desc: "almond", Date: date("2024-05-10")}

	created, err := store.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("got id %d, want 1", created.ID)
	}
	if created.Level != models.LevelCritical {
		t.Errorf("got level %q, want default C", created.Level)
	}
	snap := store.Snapshot()
	if len(snap) != 1 || snap[0].ID != 1 {
		t.Errorf("snapshot does not contain the created task: %+v", snap)
	}
}

func TestCreateValidatesBeforeNetwork(t *testing.T) {
	remote := newFakeRemote()
	store := NewTaskStore(remote)

	drafts := []models.TaskDraft{
		{Desc: "d", Date: date("2024-05-10")},
		{Title: "t", Date: date("2024-05-10")},
		{Title: "t", Desc: "d"},
	}
	for _, draft := range drafts {
		if _, err := store.Create(context.Background(), draft); !errors.Is(err, ErrEmptyDraft) {
			t.Errorf("draft %+v: got %v, want ErrEmptyDraft", draft, err)
		}
	}
	if remote.creates != 0 {
		t.Errorf("validation error reached the network %d times", remote.creates)
	}
}

func TestCreateFailureLeavesSnapshotUntouched(t *testing.T) {
	remote := newFakeRemote(task(1, "2024-05-10", models.LevelCritical, models.FlagNo, models.FlagNo))
	store := NewTaskStore(remote)
	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	before := store.Snapshot()

	remote.failCreate = true
	_, err := store.Create(context.Background(), models.TaskDraft{
		Title: "t", Desc: "d", Date: date("2024-05-10"),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !reflect.DeepEqual(store.Snapshot(), before) {
		t.Errorf("snapshot changed after failed create")
	}
}

func TestCompleteConfirmsThenApplies(t *testing.T) {
	remote := newFakeRemote(task(1, "2024-05-10", models.LevelCritical, models.FlagNo, models.FlagNo))
	store := NewTaskStore(remote)
	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if err := store.Complete(context.Background(), 1); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	snap := store.Snapshot()
	if !snap[0].Completed() {
		t.Error("task not marked completed locally")
	}
	patches := remote.updates[1]
	if len(patches) != 1 || patches[0].CompFlg == nil || *patches[0].CompFlg != models.FlagYes {
		t.Errorf("remote patch wrong: %+v", patches)
	}
}

func TestMutationFailureLeavesSnapshotUntouched(t *testing.T) {
	remote := newFakeRemote(task(1, "2024-05-10", models.LevelCritical, models.FlagNo, models.FlagNo))
	store := NewTaskStore(remote)
	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	before := store.Snapshot()

	remote.failUpdate = true
	if err := store.Complete(context.Background(), 1); err == nil {
		t.Fatal("expected error from Complete")
	}
	if err := store.Delete(context.Background(), 1); err == nil {
		t.Fatal("expected error from Delete")
	}
	if !reflect.DeepEqual(store.Snapshot(), before) {
		t.Errorf("snapshot changed after failed mutations")
	}
}

func TestDeleteHidesButRetainsRecord(t *testing.T) {
	remote := newFakeRemote(task(1, "2024-05-10", models.LevelCritical, models.FlagNo, models.FlagNo))
	store := NewTaskStore(remote)
	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if err := store.Complete(context.Background(), 1); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if err := store.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if got := len(store.Snapshot()); got != 0 {
		t.Errorf("deleted task still visible: %d entries", got)
	}
	// The internal record survives with both flags set.
	store.mu.RLock()
	defer store.mu.RUnlock()
	if len(store.tasks) != 1 {
		t.Fatalf("internal record dropped: %d entries", len(store.tasks))
	}
	rec := store.tasks[0]
	if rec.CompFlg != models.FlagYes || rec.DelFlg != models.FlagYes {
		t.Errorf("flags: comp=%s del=%s, want Y/Y", rec.CompFlg, rec.DelFlg)
	}
}

func TestSubscribersNotifiedOnEveryAppliedChange(t *testing.T) {
	remote := newFakeRemote(task(1, "2024-05-10", models.LevelCritical, models.FlagNo, models.FlagNo))
	store := NewTaskStore(remote)

	calls := 0
	store.Subscribe(func() { calls++ })

	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if _, err := store.Create(context.Background(), models.TaskDraft{
		Title: "t", Desc: "d", Date: date("2024-05-10"),
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Complete(context.Background(), 1); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("got %d notifications, want 3", calls)
	}

	// Failed mutations do not notify.
	remote.failUpdate = true
	_ = store.Delete(context.Background(), 1)
	if calls != 3 {
		t.Errorf("failed mutation notified subscribers")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	remote := newFakeRemote(task(1, "2024-05-10", models.LevelCritical, models.FlagNo, models.FlagNo))
	store := NewTaskStore(remote)
	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	snap := store.Snapshot()
	snap[0].Title = "mutated"
	if store.Snapshot()[0].Title == "mutated" {
		t.Error("Snapshot leaked internal state")
	}
}
