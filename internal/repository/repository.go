package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gitodb/internal/constants"
	"github.com/google/renameio"
)

var (
	// ErrInitialization wraps any failure creating the metadata layout.
	ErrInitialization = errors.New("initialization failed")

	// ErrRepositoryExists is returned when init targets an existing repository.
	ErrRepositoryExists = errors.New("repository already exists")

	// ErrRepositoryNotFound is returned when no metadata directory is found up the tree.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrInvalidGitDirName is returned for metadata directory names that are paths.
	ErrInvalidGitDirName = errors.New("invalid metadata directory name")
)

// validateGitDirName accepts a single path element such as ".git".
// The name is joined under every directory searched, so separators are rejected.
func validateGitDirName(gitDirName string) error {
	if gitDirName == "" || gitDirName == "." || gitDirName == ".." || filepath.Base(gitDirName) != gitDirName {
		return fmt.Errorf("%w %q: must be a single directory name", ErrInvalidGitDirName, gitDirName)
	}
	return nil
}

// InitRepository creates <path>/<gitDirName> with objects/, an empty refs/ and HEAD.
// A partially created metadata directory is removed on failure.
func InitRepository(path, gitDirName string) error {
	if err := validateGitDirName(gitDirName); err != nil {
		return err
	}
	gitDir := filepath.Join(path, gitDirName)

	if err := checkRepositoryDoesNotExist(gitDir); err != nil {
		return err
	}

	// Track if initialization of directories and files was successful
	var initSuccess bool

	// Clean up any directories/files in case not all of them were created
	defer func() {
		if !initSuccess {
			cleanupRepository(gitDir)
		}
	}()

	directories := []string{
		gitDir,
		filepath.Join(gitDir, constants.Objects),
		filepath.Join(gitDir, constants.Refs),
	}

	for _, directory := range directories {
		if err := os.MkdirAll(directory, constants.DirPerms); err != nil {
			return fmt.Errorf("%w: failed to create directory %s: %w", ErrInitialization, directory, err)
		}
	}

	// Create HEAD file pointing to main branch
	headFile := filepath.Join(gitDir, constants.Head)
	headContent := constants.DefaultRefPrefix + constants.DefaultBranch + "\n"

	if err := renameio.WriteFile(headFile, []byte(headContent), constants.FilePerms); err != nil {
		return fmt.Errorf("%w: failed to create %s file: %w", ErrInitialization, constants.Head, err)
	}

	initSuccess = true
	slog.Debug("Initialized repository", "path", gitDir)
	return nil
}

func checkRepositoryDoesNotExist(path string) error {
	_, err := os.Stat(path)

	// If path doesn't exist there is no error
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: failed to check repository path: %w", ErrInitialization, err)
	}

	return fmt.Errorf("%w at %s", ErrRepositoryExists, path)
}

// Removes the entire metadata directory if it exists
func cleanupRepository(gitDir string) {
	if _, err := os.Stat(gitDir); err == nil {
		slog.Debug("Cleaning up partial repository initialization",
			"path", gitDir)

		if err := os.RemoveAll(gitDir); err != nil {
			slog.Warn("Failed to cleanup repository directory",
				"path", gitDir,
				"error", err)
		} else {
			slog.Debug("Successfully cleaned up repository directory",
				"path", gitDir)
		}
	}
}

// FindRepoRoot locates the directory holding gitDirName by walking up from startDir.
func FindRepoRoot(startDir, gitDirName string) (string, error) {
	if err := validateGitDirName(gitDirName); err != nil {
		return "", err
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		gitDir := filepath.Join(dir, gitDirName)
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir, nil
		}

		// Dir returns all but the last element of path
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s directory not found", ErrRepositoryNotFound, gitDirName)
		}
		dir = parent
	}
}
