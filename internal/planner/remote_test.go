package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NormalEdition/Planify/internal/models"
)

func TestClientListTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/tasks/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"ids":1,"title":"Buy milk","desc":"almond","date":"2024-05-10","level":"C","delFlg":"N","compFlg":"N"},
			{"ids":2,"title":"Walk","desc":"evening","date":"2024-05-11","level":"L","delFlg":"N","compFlg":"Y"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	tasks, err := client.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != 1 || tasks[0].Title != "Buy milk" {
		t.Errorf("task 0 decoded wrong: %+v", tasks[0])
	}
	if tasks[1].Date.String() != "2024-05-11" {
		t.Errorf("got date %s, want 2024-05-11", tasks[1].Date)
	}
	if !tasks[1].Completed() {
		t.Errorf("task 1 should be completed")
	}
}

func TestClientCreateTaskSendsDefaultFlags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if body["delFlg"] != "N" || body["compFlg"] != "N" {
			t.Errorf("flags not at defaults: %v", body)
		}
		if body["date"] != "2024-05-10" {
			t.Errorf("got date %q, want 2024-05-10", body["date"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ids":42,"title":"Buy milk","desc":"almond","date":"2024-05-10","level":"C","delFlg":"N","compFlg":"N"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	created, err := client.CreateTask(context.Background(), models.TaskDraft{
		Title: "Buy milk",
		Desc:  "almond",
		Date:  date("2024-05-10"),
		Level: models.LevelCritical,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if created.ID != 42 {
		t.Errorf("got id %d, want 42", created.ID)
	}
}

func TestClientUpdateTaskFlags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/tasks/7" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["compFlg"] != "Y" {
			t.Errorf("got body %v, want compFlg=Y", body)
		}
		if _, present := body["delFlg"]; present {
			t.Errorf("delFlg should be omitted from a completion patch")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"compFlg set to Y successfully!"}`))
	}))
	defer srv.Close()

	flag := models.FlagYes
	client := NewClient(srv.URL)
	if err := client.UpdateTaskFlags(context.Background(), 7, models.FlagPatch{CompFlg: &flag}); err != nil {
		t.Fatalf("UpdateTaskFlags failed: %v", err)
	}
}

func TestClientSurfacesStoreRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Task with ID 9 not found."}`))
	}))
	defer srv.Close()

	flag := models.FlagYes
	client := NewClient(srv.URL)
	err := client.UpdateTaskFlags(context.Background(), 9, models.FlagPatch{DelFlg: &flag})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error does not carry the store message: %v", err)
	}
}

func TestClientTransportFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	if _, err := client.ListTasks(context.Background()); err == nil {
		t.Fatal("expected transport error")
	}
}
