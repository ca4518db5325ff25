package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-10")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.String() != "2024-05-10" {
		t.Errorf("got %s, want 2024-05-10", d)
	}
	if d.Label() != "May 10" {
		t.Errorf("got label %q, want %q", d.Label(), "May 10")
	}

	if _, err := ParseDate("10.05.2024"); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestDateAddDaysCrossesMonth(t *testing.T) {
	d := NewDate(2024, time.May, 30)
	if got := d.AddDays(2).String(); got != "2024-06-01" {
		t.Errorf("got %s, want 2024-06-01", got)
	}
	if got := d.AddDays(-30).String(); got != "2024-04-30" {
		t.Errorf("got %s, want 2024-04-30", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	task := Task{
		ID:      1,
		Title:   "Buy milk",
		Desc:    "almond",
		Date:    NewDate(2024, time.May, 10),
		Level:   LevelCritical,
		DelFlg:  FlagNo,
		CompFlg: FlagNo,
	}
	b, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Task
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !decoded.Date.Equal(task.Date) {
		t.Errorf("date round trip: got %s, want %s", decoded.Date, task.Date)
	}
	if decoded.ID != 1 {
		t.Errorf("id travels as \"ids\"; got %d", decoded.ID)
	}
}

func TestDateScanNormalizesTimestamps(t *testing.T) {
	var d Date
	// A DATE column can come back with a non-UTC zone attached.
	loc := time.FixedZone("UTC-5", -5*60*60)
	if err := d.Scan(time.Date(2024, time.May, 10, 0, 0, 0, 0, loc)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if d.String() != "2024-05-10" {
		t.Errorf("got %s, want 2024-05-10", d)
	}

	var fromBytes Date
	if err := fromBytes.Scan([]byte("2024-05-11")); err != nil {
		t.Fatalf("Scan from bytes failed: %v", err)
	}
	if fromBytes.String() != "2024-05-11" {
		t.Errorf("got %s, want 2024-05-11", fromBytes)
	}
}

func TestTaskLiveAndCompleted(t *testing.T) {
	tk := Task{DelFlg: FlagNo, CompFlg: FlagNo}
	if !tk.Live() || tk.Completed() {
		t.Errorf("fresh task: live=%v completed=%v", tk.Live(), tk.Completed())
	}
	tk.CompFlg = FlagYes
	tk.DelFlg = FlagYes
	if tk.Live() {
		t.Error("deleted task reported live")
	}
	if !tk.Completed() {
		t.Error("completed flag lost")
	}
}

func TestTaskLevelValid(t *testing.T) {
	for _, l := range []TaskLevel{LevelCritical, LevelMedium, LevelLow} {
		if !l.Valid() {
			t.Errorf("%q should be valid", l)
		}
	}
	if TaskLevel("X").Valid() {
		t.Error("X should not be valid")
	}
}
