// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command line client of the task manager.
//
// Each subcommand maps onto one call of [adapter.APIClient] and prints the
// server answer as indented JSON.
package client
