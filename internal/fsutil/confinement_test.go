// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfineRelPath(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.Mkdir(filepath.Join(tmpDir, "subdir"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "safe.jpg"), []byte("safe"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("..", filepath.Join(tmpDir, "link_outside")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		target   string
		wantErr  bool
		wantPath string
	}{
		{name: "existing file", target: "safe.jpg", wantPath: "safe.jpg"},
		{name: "missing file in existing dir", target: "subdir/new.png", wantPath: "subdir/new.png"},
		{name: "dotdot traversal", target: "../outside.jpg", wantErr: true},
		{name: "absolute target", target: "/etc/passwd", wantErr: true},
		{name: "backslash", target: "a\\b.jpg", wantErr: true},
		{name: "symlink escape", target: "link_outside/x.jpg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConfineRelPath(tmpDir, tt.target)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ConfineRelPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantPath != "" && !strings.HasSuffix(got, tt.wantPath) {
				t.Errorf("ConfineRelPath() = %q, want suffix %q", got, tt.wantPath)
			}
		})
	}
}

func TestConfineAbsPath(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()

	inside := filepath.Join(root, "a.png")
	if err := os.WriteFile(inside, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := ConfineAbsPath(root, inside); err != nil {
		t.Fatalf("inside path rejected: %v", err)
	}
	if _, err := ConfineAbsPath(root, filepath.Join(other, "b.png")); err == nil {
		t.Fatal("path outside root accepted")
	}
	if _, err := ConfineAbsPath(root, "relative.png"); err == nil {
		t.Fatal("relative path accepted")
	}
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := IsRegularFile(file); err != nil {
		t.Errorf("regular file rejected: %v", err)
	}
	if err := IsRegularFile(dir); err == nil {
		t.Error("directory accepted")
	}
	if err := IsRegularFile(filepath.Join(dir, "missing")); !os.IsNotExist(err) {
		t.Errorf("missing file: got %v", err)
	}
}
