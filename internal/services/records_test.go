package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/denotehq/denote/internal/models"
	"github.com/denotehq/denote/internal/storage"
	"github.com/denotehq/denote/internal/types"
)

func TestCreateProject(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewDirStore(t.TempDir())

	project, err := CreateProject(db, store, "dev@example.com", "  Website Redesign  ")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if project.ProjectName != "Website Redesign" {
		t.Errorf("Expected trimmed name, got %q", project.ProjectName)
	}
	if !strings.HasPrefix(project.ProjectID, "PROJ-") {
		t.Errorf("Expected PROJ- prefixed id, got %q", project.ProjectID)
	}
	if project.CreatedBy != "dev@example.com" {
		t.Errorf("Expected caller as owner, got %q", project.CreatedBy)
	}

	exists, err := store.ProjectExists("Website Redesign")
	if err != nil || !exists {
		t.Errorf("Expected project folder tree, got %v, %v", exists, err)
	}
}

func TestCreateProjectEmptyName(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewDirStore(t.TempDir())

	_, err := CreateProject(db, store, "dev@example.com", "   ")
	var ce *types.CustomError
	if !errors.As(err, &ce) || ce.Code != 400 {
		t.Fatalf("Expected 400 CustomError, got %v", err)
	}
}

func TestCreateProjectFolderCollision(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewDirStore(t.TempDir())

	if _, err := CreateProject(db, store, "dev@example.com", "Alpha"); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	_, err := CreateProject(db, store, "dev@example.com", "Alpha")
	var ce *types.CustomError
	if !errors.As(err, &ce) || ce.Code != 409 {
		t.Fatalf("Expected 409 CustomError on collision, got %v", err)
	}

	// The collision must not produce a second row.
	var count int64
	db.Model(&models.Project{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 project row, got %d", count)
	}
}

func TestListProjects(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewDirStore(t.TempDir())

	if _, err := CreateProject(db, store, "dev@example.com", "Alpha"); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateProject(db, store, "dev@example.com", "Beta"); err != nil {
		t.Fatal(err)
	}

	projects := ListProjects(db, "dev@example.com")
	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(projects))
	}
	if projects[0].ProjectName != "Alpha" || projects[1].ProjectName != "Beta" {
		t.Errorf("Expected insert order, got %q then %q",
			projects[0].ProjectName, projects[1].ProjectName)
	}
}
