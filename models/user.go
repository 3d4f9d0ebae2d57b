// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
//
// The JSON form of a User is the public projection {_id, name, email}: the
// password hash and timestamps never leave the server.
type User struct {
	// UserID is the opaque unique identifier assigned at creation.
	UserID string `json:"_id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique secondary lookup key used for login.
	Email string `json:"email"`

	// Password stores the bcrypt hash of the user's password.
	// It is never plaintext once the user reaches the store.
	Password string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"-"`

	// UpdatedAt is the timestamp of the last profile or password change.
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identity is the authenticated principal attached to a request context by
// the identity middleware: the resolved user record and the raw bearer token
// it presented.
type Identity struct {
	User  User
	Token string
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of POST /api/auth/change-password.
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ProfileUpdateRequest is the body of PUT /api/auth/profile and
// PUT /api/users/{id}.
type ProfileUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is returned by every operation that mints a token.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// UserList wraps the users listing as {results: [...]}.
type UserList struct {
	Results []User `json:"results"`
}
