// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"io"
	"time"
)

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every accepted [Priority] value in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of [Priorities].
func (p Priority) Valid() bool {
	for _, allowed := range Priorities {
		if p == allowed {
			return true
		}
	}
	return false
}

// DateLayout is the wire format of task start and end dates.
const DateLayout = "2006-01-02"

// Task listing sort options.
const (
	DefaultTaskSortColumn = "_id"
	SortAscending         = "asc"
	SortDescending        = "desc"
)

// TaskSortColumns is the whitelist of JSON field names a task listing may be
// sorted by.
var TaskSortColumns = []string{"_id", "title", "startDate", "endDate", "priority", "completed"}

// Task is a unit of work created by a user.
//
// AssigneeIDs and ProjectIDs are the stored references. Assignees and
// Projects are their read-time resolution; references to rows that no longer
// exist are dropped silently.
type Task struct {
	TaskID      string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedBy   string    `json:"createdBy"`
	Attachment  *string   `json:"attachment,omitempty"`

	AssigneeIDs []string `json:"-"`
	ProjectIDs  []string `json:"-"`

	Assignees []User       `json:"assignees"`
	Projects  []ProjectRef `json:"projects"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// TaskInput carries the raw, not yet validated fields of a task creation
// request, as received from JSON or a multipart form.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Priority    string   `json:"priority"`
	Assignees   []string `json:"assignees"`
	Projects    []string `json:"projects"`
}

// TaskUpdate carries the fields of a task update request. Keys holds every
// field name present in the request and is checked against the allowed set.
type TaskUpdate struct {
	Keys []string `json:"-"`

	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// Attachment is an uploaded file travelling from the transport layer to the
// attachment storage.
type Attachment struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ListTasksRequest describes one page of the caller's tasks.
type ListTasksRequest struct {
	UserID     string
	Page       int
	Limit      int
	SortColumn string
	SortOrder  string
}

// TaskPage is one page of tasks in the listing envelope.
type TaskPage struct {
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"totalPages"`
	Results    []Task  `json:"results"`
	NextPage   *string `json:"nextPage"`
	PrevPage   *string `json:"prevPage"`
}
