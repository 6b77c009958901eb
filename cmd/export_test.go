package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/KostasZigo/gitodb/internal/objects"
	"github.com/KostasZigo/gitodb/testutils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// createTestRootCmd creates fresh root command with the given subcommand.
// Flag values and silencing of the shared subcommand are reset so earlier tests do not leak into this one.
func createTestRootCmd(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Value.Set(flag.DefValue)
		flag.Changed = false
	})
	cmd.SilenceErrors = false
	cmd.SilenceUsage = true

	testRootCmd := &cobra.Command{Use: "gitodb"}
	testRootCmd.AddCommand(cmd)
	return testRootCmd
}

// captureStdout returns command stdout output as string.
func captureStdout(cmd *cobra.Command) *bytes.Buffer {
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	return &stdout
}

// captureStderr returns command stderr output as string.
func captureStderr(cmd *cobra.Command) *bytes.Buffer {
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	return &stderr
}

// changeToRepoDir changes working directory to repo path and registers cleanup.
func changeToRepoDir(t *testing.T, repoPath string) {
	t.Helper()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	if err := os.Chdir(repoPath); err != nil {
		t.Fatalf("Failed to change to directory %s: %v", repoPath, err)
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
	})
}

// testStore returns a store for the repository at repoPath.
func testStore(repoPath string) *objects.ObjectStore {
	return objects.NewObjectStore(testutils.GitDirPath(repoPath))
}

// storeTestBlob stores content as a blob in the repository and returns its id.
func storeTestBlob(t *testing.T, repoPath string, content []byte) string {
	t.Helper()

	blob := objects.NewBlob(content)
	if err := testStore(repoPath).Store(blob); err != nil {
		t.Fatalf("Failed to store blob: %v", err)
	}
	return blob.Hash()
}

// storeTestTree stores a tree built from entries and returns its id.
func storeTestTree(t *testing.T, repoPath string, entries ...objects.TreeEntry) string {
	t.Helper()

	tree, err := objects.NewTree(entries)
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}
	if err := testStore(repoPath).Store(tree); err != nil {
		t.Fatalf("Failed to store tree: %v", err)
	}
	return tree.Hash()
}

// mustTreeEntry creates a tree entry and fails the test on error.
func mustTreeEntry(t *testing.T, mode objects.FileMode, name, hash string) objects.TreeEntry {
	t.Helper()

	entry, err := objects.NewTreeEntry(mode, name, hash)
	if err != nil {
		t.Fatalf("Failed to create tree entry: %v", err)
	}
	return *entry
}
