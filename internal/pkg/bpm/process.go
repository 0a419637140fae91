package bpm

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Process instance statuses reported by BPM
const (
	StatusRunning   = "RUNNING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusWithdrawn = "WITHDRAWN"
)

// StartProcessRequest starts a process definition for one business object
type StartProcessRequest struct {
	ProcessKey  string         `json:"process_key"`
	BusinessKey string         `json:"business_key"` // local form id
	CompanyID   string         `json:"company_id"`
	Initiator   string         `json:"initiator"` // employee number
	Variables   map[string]any `json:"variables,omitempty"`
}

// HistoryEntry is one completed or open step of a process instance
type HistoryEntry struct {
	TaskName    string     `json:"task_name"`
	Assignee    string     `json:"assignee"`
	Action      string     `json:"action"` // APPROVE, REJECT, SUBMIT, WITHDRAW, or empty while open
	Comment     string     `json:"comment,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Process is a BPM process instance
type Process struct {
	InstanceID  string         `json:"instance_id"`
	ProcessKey  string         `json:"process_key"`
	BusinessKey string         `json:"business_key"`
	Status      string         `json:"status"`
	StartedAt   time.Time      `json:"started_at"`
	EndedAt     *time.Time     `json:"ended_at,omitempty"`
	History     []HistoryEntry `json:"history,omitempty"`
}

type withdrawRequest struct {
	Operator string `json:"operator"`
	Reason   string `json:"reason,omitempty"`
}

// StartProcess creates a process instance
func (c *Client) StartProcess(ctx context.Context, req StartProcessRequest) (Process, error) {
	var p Process
	if err := c.call(ctx, "start_process", http.MethodPost, "/api/process/start", req, &p); err != nil {
		return Process{}, err
	}
	return p, nil
}

// GetProcess fetches an instance with its history
func (c *Client) GetProcess(ctx context.Context, instanceID string) (Process, error) {
	var p Process
	if err := c.call(ctx, "get_process", http.MethodGet, "/api/process/"+url.PathEscape(instanceID), nil, &p); err != nil {
		return Process{}, err
	}
	return p, nil
}

// WithdrawProcess ends a running instance on behalf of its initiator
func (c *Client) WithdrawProcess(ctx context.Context, instanceID, operator, reason string) error {
	path := "/api/process/" + url.PathEscape(instanceID) + "/withdraw"
	return c.call(ctx, "withdraw_process", http.MethodPost, path, withdrawRequest{Operator: operator, Reason: reason}, nil)
}
