package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/denotehq/denote/internal/models"
	"github.com/denotehq/denote/internal/storage"
	"github.com/denotehq/denote/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateProject creates the folder tree for the named project, then appends
// one project row owned by caller. There is no compensating transaction: if
// the row write fails after the folders were created the two stores diverge;
// the divergence is recorded in the system error log for manual
// reconciliation.
func CreateProject(db *gorm.DB, store storage.FolderStore, caller, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.ValidationError("Project name cannot be empty.", "records.project.validation")
	}

	if _, err := store.CreateProjectTree(name); err != nil {
		return nil, err
	}

	now := time.Now()
	project := models.Project{
		ProjectID:      "PROJ-" + uuid.NewString(),
		ProjectName:    name,
		CreatedBy:      caller,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	if err := db.Create(&project).Error; err != nil {
		// Folder tree exists but the row does not.
		LogError(db, "CreateProject",
			fmt.Sprintf("project row write failed after folder creation for %q: %v", name, err),
			caller)
		return nil, err
	}

	zap.L().Info("created project",
		zap.String("project", name),
		zap.String("projectId", project.ProjectID),
		zap.String("owner", caller))

	return &project, nil
}

// ListProjects returns every project row in insert order. Internal failure
// is recorded and absorbed into an empty list; the dashboard treats the
// listing as non-critical.
func ListProjects(db *gorm.DB, caller string) []models.Project {
	var projects []models.Project
	if err := db.Order("created_at").Find(&projects).Error; err != nil {
		zap.L().Error("failed to list projects", zap.Error(err))
		LogError(db, "ListProjects", err.Error(), caller)
		return []models.Project{}
	}
	return projects
}
