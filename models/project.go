// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Project groups tasks. CreatedBy is a loose reference to a user: it is not
// enforced by the store and may point to a deleted account.
type Project struct {
	ProjectID string  `json:"_id"`
	Title     string  `json:"title"`
	CreatedBy *string `json:"createdBy,omitempty"`
}

// TableName returns the name of the database table
// associated with the Project model.
func (p Project) TableName() string {
	return "projects"
}

// ProjectRef is the projection of a project embedded into a populated task.
type ProjectRef struct {
	ProjectID string `json:"_id"`
	Title     string `json:"title"`
}
