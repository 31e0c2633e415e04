// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the vault command line runtime.
//
// It opens the session of the configured user, dispatches one subcommand
// (or an interactive shell) against that user's vault and turns failures
// into the messages of package app.
package client
