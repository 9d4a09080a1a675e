// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package content holds the three competing content slots (track, program,
// station), the lock that guards them, and the precedence rules that decide
// which slot is currently authoritative.
//
// All functions that take a *State expect the caller to be inside Store.Do.
package content
