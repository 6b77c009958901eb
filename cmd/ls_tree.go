package cmd

import (
	"fmt"

	"github.com/KostasZigo/gitodb/internal/objects"
	"github.com/spf13/cobra"
)

var lsTreeCmd = &cobra.Command{
	Use:   "ls-tree [--name-only] <tree>",
	Short: "List the contents of a tree object",
	Long: `List the entries of a tree object in the order they are stored.

Each line reads "<mode> <type> <object> <name>" for directories and regular files,
and "<mode> <object> <name>" for any other mode.`,
	SilenceUsage: true,
	Args:         exactArgs(1, "tree"),
	RunE:         runLsTree,
}

var nameOnlyFlag bool

func init() {
	rootCmd.AddCommand(lsTreeCmd)

	lsTreeCmd.Flags().BoolVar(&nameOnlyFlag, "name-only", false, "List only file names, one per line")
}

func runLsTree(cmd *cobra.Command, args []string) error {
	store, err := openObjectStore()
	if err != nil {
		return err
	}

	entries, err := store.ParseTree(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, entry := range entries {
		line := formatTreeEntry(entry)
		if nameOnlyFlag {
			line = entry.Name()
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

// formatTreeEntry labels directories and regular files with their object type.
// Any other mode is printed verbatim without a type column.
func formatTreeEntry(entry objects.TreeEntry) string {
	switch entry.Mode() {
	case objects.ModeDirectory:
		return fmt.Sprintf("040000 tree %s %s", entry.Hash(), entry.Name())
	case objects.ModeRegularFile:
		return fmt.Sprintf("100644 blob %s %s", entry.Hash(), entry.Name())
	default:
		return fmt.Sprintf("%s %s %s", entry.Mode(), entry.Hash(), entry.Name())
	}
}
