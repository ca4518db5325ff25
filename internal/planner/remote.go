// Package planner is the client-side task engine: the local task cache, its
// reconciliation with the remote store, and the derived views (agenda,
// urgency partitions, completion stats) the presentation layer consumes.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/NormalEdition/Planify/internal/models"
)

// RemoteStore is the client-side view of the task store API.
type RemoteStore interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, draft models.TaskDraft) (*models.Task, error)
	UpdateTaskFlags(ctx context.Context, id int64, patch models.FlagPatch) error
}

// Client talks to the store over its JSON API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tasks/", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("list tasks", resp)
	}
	var tasks []models.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task list: %w", err)
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, draft models.TaskDraft) (*models.Task, error) {
	// Flags always travel at their defaults on create; the store assigns the id.
	body := struct {
		models.TaskDraft
		DelFlg  models.Flag `json:"delFlg"`
		CompFlg models.Flag `json:"compFlg"`
	}{draft, models.FlagNo, models.FlagNo}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tasks/", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, apiError("create task", resp)
	}
	var task models.Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to decode created task: %w", err)
	}
	return &task, nil
}

func (c *Client) UpdateTaskFlags(ctx context.Context, id int64, patch models.FlagPatch) error {
	b, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	url := c.baseURL + "/tasks/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(fmt.Sprintf("update task %d", id), resp)
	}
	return nil
}

func apiError(op string, resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		return fmt.Errorf("%s: store returned status %d", op, resp.StatusCode)
	}
	return fmt.Errorf("%s: store returned status %d: %s", op, resp.StatusCode, msg)
}
