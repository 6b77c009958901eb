package testutils

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/KostasZigo/gitodb/internal/constants"
	"github.com/klauspost/compress/zlib"
)

// RandomString generates a random hex string of n bytes
func RandomString(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// RandomHash generates a random 40-character SHA-1 hash
func RandomHash() string {
	return RandomString(constants.HashByteLength)
}

// GitDirPath returns the metadata directory of a test repository.
func GitDirPath(repoPath string) string {
	return filepath.Join(repoPath, constants.GitDir)
}

// ObjectPath returns the storage location of hash inside a test repository.
func ObjectPath(repoPath, hash string) string {
	return filepath.Join(GitDirPath(repoPath), constants.Objects,
		hash[:constants.HashDirPrefixLength], hash[constants.HashDirPrefixLength:])
}

// SetupTestRepoWithGitDir creates a temporary directory with .git/objects structure.
// This is useful for tests that need the repository structure but not full initialization.
func SetupTestRepoWithGitDir(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	objectsDir := filepath.Join(repoPath, constants.GitDir, constants.Objects)

	if err := os.MkdirAll(objectsDir, constants.DirPerms); err != nil {
		t.Fatalf("Failed to create %s/%s: %v", constants.GitDir, constants.Objects, err)
	}

	return repoPath
}

// SetupTestRepoWithInit creates a fully initialized .git repository structure.
// This includes objects/, refs/ and HEAD file.
func SetupTestRepoWithInit(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	gitDir := GitDirPath(repoPath)

	for _, dir := range []string{
		filepath.Join(gitDir, constants.Objects),
		filepath.Join(gitDir, constants.Refs),
	} {
		if err := os.MkdirAll(dir, constants.DirPerms); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	headPath := filepath.Join(gitDir, constants.Head)
	headContent := []byte(constants.DefaultRefPrefix + constants.DefaultBranch + "\n")
	if err := os.WriteFile(headPath, headContent, constants.FilePerms); err != nil {
		t.Fatalf("Failed to create %s file: %v", constants.Head, err)
	}

	return repoPath
}

// CreateTestFile creates a file with given content in the specified directory.
// Returns the full path to the created file.
func CreateTestFile(t *testing.T, dir, filename string, content []byte) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, content, constants.FilePerms); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}

	return filePath
}

// WriteRawObject zlib-compresses frame and places it at hash's storage location,
// bypassing every check of the object store. Used to plant malformed objects.
func WriteRawObject(t *testing.T, repoPath, hash string, frame []byte) {
	t.Helper()

	var buffer bytes.Buffer
	writer := zlib.NewWriter(&buffer)
	if _, err := writer.Write(frame); err != nil {
		t.Fatalf("Failed to compress object: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to flush compressed object: %v", err)
	}

	WriteObjectFile(t, repoPath, hash, buffer.Bytes())
}

// WriteObjectFile places data verbatim at hash's storage location.
func WriteObjectFile(t *testing.T, repoPath, hash string, data []byte) {
	t.Helper()

	objectPath := ObjectPath(repoPath, hash)
	if err := os.MkdirAll(filepath.Dir(objectPath), constants.DirPerms); err != nil {
		t.Fatalf("Failed to create object directory: %v", err)
	}
	// Stored objects are read-only; replace rather than truncate
	if err := os.Remove(objectPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Failed to remove existing object file: %v", err)
	}
	if err := os.WriteFile(objectPath, data, constants.FilePerms); err != nil {
		t.Fatalf("Failed to write object file: %v", err)
	}
}

// DecompressObjectFile reads and inflates the object file at objectPath.
func DecompressObjectFile(t *testing.T, objectPath string) []byte {
	t.Helper()

	compressedData, err := os.ReadFile(objectPath)
	if err != nil {
		t.Fatalf("Failed to read object file: %v", err)
	}

	reader, err := zlib.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		t.Fatalf("Failed to create zlib reader: %v", err)
	}
	defer reader.Close()

	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(reader); err != nil {
		t.Fatalf("Failed to read decompressed data: %v", err)
	}

	return buffer.Bytes()
}

// AssertFileExists checks that a file exists at the given path.
// Fails the test if the file doesn't exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected file to exist at %s", path)
	}
}

// AssertFileNotExists checks that a file does NOT exist at the given path.
// Fails the test if the file exists.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to NOT exist at %s", path)
	}
}

// AssertDirExists checks that a directory exists at the given path.
// Fails the test if the directory doesn't exist.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected directory to exist at %s", path)
		return
	}
	if err != nil {
		t.Errorf("Failed to stat directory %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory, but it's a file", path)
	}
}

// AssertRepositoryStructure validates complete .git directory structure.
// Verifies objects/ and an empty refs/ exist and HEAD contains correct branch reference.
func AssertRepositoryStructure(t *testing.T, repoPath string) {
	t.Helper()

	gitDir := GitDirPath(repoPath)
	AssertDirExists(t, gitDir)
	AssertDirExists(t, filepath.Join(gitDir, constants.Objects))

	refsDir := filepath.Join(gitDir, constants.Refs)
	AssertDirExists(t, refsDir)
	if refs, err := os.ReadDir(refsDir); err == nil && len(refs) != 0 {
		t.Errorf("Expected %s to be empty, found %d entries", refsDir, len(refs))
	}

	headPath := filepath.Join(gitDir, constants.Head)
	AssertFileExists(t, headPath)

	content, err := os.ReadFile(headPath)
	if err != nil {
		t.Fatalf("Failed to read %s file: %v", constants.Head, err)
	}

	expectedContent := constants.DefaultRefPrefix + constants.DefaultBranch + "\n"
	if string(content) != expectedContent {
		t.Errorf("%s content = %q, want %q", constants.Head, content, expectedContent)
	}
}
