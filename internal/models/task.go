// internal/models/task.go
package models

// TaskLevel defines the urgency of a task.
type TaskLevel string

const (
	LevelCritical TaskLevel = "C"
	LevelMedium   TaskLevel = "M"
	LevelLow      TaskLevel = "L"
)

func (l TaskLevel) Valid() bool {
	switch l {
	case LevelCritical, LevelMedium, LevelLow:
		return true
	}
	return false
}

// Flag is the Y/N marker the store uses for completion and soft deletion.
type Flag string

const (
	FlagYes Flag = "Y"
	FlagNo  Flag = "N"
)

// Task represents the structure of a task in the system. Field names on the
// wire are fixed by the store API (the id travels as "ids").
type Task struct {
	ID      int64     `json:"ids"`
	Title   string    `json:"title"`
	Desc    string    `json:"desc"`
	Date    Date      `json:"date"`
	Level   TaskLevel `json:"level"`
	DelFlg  Flag      `json:"delFlg"`
	CompFlg Flag      `json:"compFlg"`
}

// Live reports whether the task is visible, i.e. not soft-deleted.
func (t Task) Live() bool {
	return t.DelFlg != FlagYes
}

func (t Task) Completed() bool {
	return t.CompFlg == FlagYes
}

// TaskDraft is the client-side input for creating a task. The store assigns
// the id; both flags start at their defaults.
type TaskDraft struct {
	Title string    `json:"title"`
	Desc  string    `json:"desc"`
	Date  Date      `json:"date"`
	Level TaskLevel `json:"level"`
}

// FlagPatch is the partial update used for both completion and soft delete.
type FlagPatch struct {
	CompFlg *Flag `json:"compFlg,omitempty"`
	DelFlg  *Flag `json:"delFlg,omitempty"`
}
