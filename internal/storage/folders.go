package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/denotehq/denote/internal/types"
)

// Subfolders created under every project folder.
var ProjectSubfolders = []string{"Code", "UI", "Documents", "Uploads"}

// FolderStore manages the folder tree backing projects. All project folders
// live directly under one fixed root.
type FolderStore interface {
	// EnsureRoot creates the root folder if it does not exist.
	EnsureRoot() error
	// CreateProjectTree creates the named project folder plus its fixed
	// subfolders. Fails with a conflict error if the folder already exists.
	CreateProjectTree(name string) (string, error)
	// ProjectExists reports whether a project folder with the name exists.
	ProjectExists(name string) (bool, error)
}

// DirStore is a FolderStore on the local filesystem.
type DirStore struct {
	Root string
}

// NewDirStore returns a DirStore rooted at root.
func NewDirStore(root string) *DirStore {
	return &DirStore{Root: root}
}

// EnsureRoot creates the root folder if missing. MkdirAll is a no-op on an
// existing directory, which keeps this idempotent.
func (s *DirStore) EnsureRoot() error {
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return fmt.Errorf("failed to create root folder %s: %w", s.Root, err)
	}
	return nil
}

// ProjectExists reports whether the project folder exists under the root.
func (s *DirStore) ProjectExists(name string) (bool, error) {
	info, err := os.Stat(filepath.Join(s.Root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// CreateProjectTree creates the project folder and its subfolders, returning
// the project folder path.
func (s *DirStore) CreateProjectTree(name string) (string, error) {
	if err := s.EnsureRoot(); err != nil {
		return "", err
	}

	projectPath := filepath.Join(s.Root, name)

	// Mkdir (not MkdirAll) so an existing sibling with the same name fails.
	if err := os.Mkdir(projectPath, 0o755); err != nil {
		if os.IsExist(err) {
			return "", types.ConflictError(
				fmt.Sprintf("A project named %q already exists.", name),
				"records.project.collision",
			)
		}
		return "", fmt.Errorf("failed to create project folder: %w", err)
	}

	for _, sub := range ProjectSubfolders {
		if err := os.Mkdir(filepath.Join(projectPath, sub), 0o755); err != nil {
			return "", fmt.Errorf("failed to create subfolder %s: %w", sub, err)
		}
	}

	return projectPath, nil
}
