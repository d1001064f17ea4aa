package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/denotehq/denote/internal/types"
)

func TestCreateProjectTree(t *testing.T) {
	store := NewDirStore(filepath.Join(t.TempDir(), "projects"))

	path, err := store.CreateProjectTree("Alpha")
	if err != nil {
		t.Fatalf("Failed to create project tree: %v", err)
	}

	for _, sub := range ProjectSubfolders {
		info, err := os.Stat(filepath.Join(path, sub))
		if err != nil {
			t.Errorf("Expected subfolder %s: %v", sub, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Expected %s to be a directory", sub)
		}
	}

	exists, err := store.ProjectExists("Alpha")
	if err != nil {
		t.Fatalf("ProjectExists failed: %v", err)
	}
	if !exists {
		t.Error("Expected project folder to exist")
	}
}

func TestCreateProjectTreeCollision(t *testing.T) {
	store := NewDirStore(t.TempDir())

	if _, err := store.CreateProjectTree("Alpha"); err != nil {
		t.Fatalf("Failed to create project tree: %v", err)
	}

	_, err := store.CreateProjectTree("Alpha")
	if err == nil {
		t.Fatal("Expected conflict error on duplicate project folder")
	}

	var ce *types.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected CustomError, got %T", err)
	}
	if ce.Code != 409 {
		t.Errorf("Expected code 409, got %d", ce.Code)
	}
}

func TestProjectExistsMissing(t *testing.T) {
	store := NewDirStore(t.TempDir())

	exists, err := store.ProjectExists("nothing-here")
	if err != nil {
		t.Fatalf("ProjectExists failed: %v", err)
	}
	if exists {
		t.Error("Expected missing project folder")
	}
}
