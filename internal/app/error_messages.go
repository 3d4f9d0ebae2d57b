// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// task manager handlers and the API client.
//
// All Msg* constants are the human-readable strings written into HTTP
// response bodies. Keeping them in one place keeps the wording identical
// across the API.
package app

const (
	// MsgPleaseAuthenticate is returned for every rejected bearer token,
	// whatever step of the check failed.
	MsgPleaseAuthenticate = "Please authenticate."

	// MsgInvalidCredentials is returned when a login email/password pair
	// does not match an account.
	MsgInvalidCredentials = "Invalid credentials"

	// MsgInvalidOldPassword is returned when the old password of a change
	// request is wrong.
	MsgInvalidOldPassword = "Invalid old password provided"

	// MsgPasswordNotConfirmed is returned when the new password and its
	// confirmation differ.
	MsgPasswordNotConfirmed = "New password must be confirmed"

	// MsgEmailAlreadyExists is returned when another account owns the email.
	MsgEmailAlreadyExists = "Email already exists"

	// MsgInvalidUpdates is returned when a task update carries a field that
	// may not be changed.
	MsgInvalidUpdates = "Invalid updates!"

	MsgInvalidJSON = "Invalid JSON was passed"
	MsgInvalidForm = "Invalid form was passed"

	// MsgInternalServerError hides unexpected failures from the client.
	MsgInternalServerError = "Internal Server Error"
)
