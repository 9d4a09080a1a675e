// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package health

import (
	"context"
	"fmt"
	"os"
	"time"
)

// FileChecker checks that an output file exists and is non-empty.
type FileChecker struct {
	name string
	path string
}

// NewFileChecker creates a checker for file existence
func NewFileChecker(name, path string) *FileChecker {
	return &FileChecker{name: name, path: path}
}

func (c *FileChecker) Name() string { return c.name }

func (c *FileChecker) Check(_ context.Context) CheckResult {
	info, err := os.Stat(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return CheckResult{Status: StatusUnhealthy, Error: "file not found", Message: c.path}
		}
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	if info.IsDir() {
		return CheckResult{Status: StatusUnhealthy, Error: "expected file, got directory"}
	}
	if info.Size() == 0 {
		return CheckResult{Status: StatusDegraded, Message: "file is empty"}
	}
	return CheckResult{Status: StatusHealthy, Message: "file exists and readable"}
}

// DirChecker checks that a directory exists.
type DirChecker struct {
	name string
	path string
}

// NewDirChecker creates a checker for directory existence
func NewDirChecker(name, path string) *DirChecker {
	return &DirChecker{name: name, path: path}
}

func (c *DirChecker) Name() string { return c.name }

func (c *DirChecker) Check(_ context.Context) CheckResult {
	info, err := os.Stat(c.path)
	if err != nil {
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	if !info.IsDir() {
		return CheckResult{Status: StatusUnhealthy, Error: "expected directory", Message: c.path}
	}
	return CheckResult{Status: StatusHealthy}
}

// TickerChecker reports the ticker loop as stalled when no tick completed
// within maxAge.
type TickerChecker struct {
	lastTick func() time.Time
	maxAge   time.Duration
	now      func() time.Time
}

// NewTickerChecker creates a liveness checker for the content ticker.
func NewTickerChecker(lastTick func() time.Time, maxAge time.Duration) *TickerChecker {
	return &TickerChecker{lastTick: lastTick, maxAge: maxAge, now: time.Now}
}

func (c *TickerChecker) Name() string { return "ticker" }

func (c *TickerChecker) Check(_ context.Context) CheckResult {
	last := c.lastTick()
	if last.IsZero() {
		return CheckResult{Status: StatusUnhealthy, Message: "no tick completed yet"}
	}
	age := c.now().Sub(last)
	if age > c.maxAge {
		return CheckResult{
			Status:  StatusUnhealthy,
			Message: fmt.Sprintf("last tick %s ago", age.Round(time.Millisecond)),
		}
	}
	return CheckResult{Status: StatusHealthy}
}
