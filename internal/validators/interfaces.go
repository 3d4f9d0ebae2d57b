// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before the service layer
// touches the store.
//
// A Validator collects every violated field of a payload into a
// [ValidationErrors] value, so the transport can report them all at once.
// Validation can optionally be restricted to a subset of named fields.
package validators

import "context"

// Validator validates arbitrary request payloads.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
