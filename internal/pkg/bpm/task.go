package bpm

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Task is an open user task in BPM
type Task struct {
	TaskID        string    `json:"task_id"`
	InstanceID    string    `json:"instance_id"`
	ProcessKey    string    `json:"process_key"`
	BusinessKey   string    `json:"business_key"`
	TaskName      string    `json:"task_name"`
	ApplicantNo   string    `json:"applicant_no"`
	ApplicantName string    `json:"applicant_name"`
	Summary       string    `json:"summary"`
	CreatedAt     time.Time `json:"created_at"`
}

type completeTaskRequest struct {
	Assignee string `json:"assignee"`
	Comment  string `json:"comment,omitempty"`
}

// ListTasks returns the open tasks assigned to an employee number
func (c *Client) ListTasks(ctx context.Context, assignee string) ([]Task, error) {
	var tasks []Task
	path := "/api/tasks?assignee=" + url.QueryEscape(assignee)
	if err := c.call(ctx, "list_tasks", http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ApproveTask completes a task with an approval
func (c *Client) ApproveTask(ctx context.Context, taskID, assignee, comment string) error {
	path := "/api/tasks/" + url.PathEscape(taskID) + "/approve"
	return c.call(ctx, "approve_task", http.MethodPost, path, completeTaskRequest{Assignee: assignee, Comment: comment}, nil)
}

// RejectTask completes a task with a rejection
func (c *Client) RejectTask(ctx context.Context, taskID, assignee, comment string) error {
	path := "/api/tasks/" + url.PathEscape(taskID) + "/reject"
	return c.call(ctx, "reject_task", http.MethodPost, path, completeTaskRequest{Assignee: assignee, Comment: comment}, nil)
}
