package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/KostasZigo/gitodb/internal/objects"
	"github.com/KostasZigo/gitodb/utils"
	"github.com/spf13/cobra"
)

var mkTreeCmd = &cobra.Command{
	Use:   "mktree [--missing]",
	Short: "Build a tree object from a listing read on stdin",
	Long: `Read lines of the form "<mode> <type> <object>\t<name>" from standard input,
store the tree object they describe and print its id.

Without --missing, every blob and tree the listing references must already be stored
with the type its mode implies.

Examples:
  printf '100644 blob %s\thello.txt\n' $(gitodb hash-object -w hello.txt) | gitodb mktree`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runMkTree,
}

var allowMissingFlag bool

func init() {
	rootCmd.AddCommand(mkTreeCmd)

	mkTreeCmd.Flags().BoolVar(&allowMissingFlag, "missing", false, "Allow entries referencing objects that are not stored")
}

func runMkTree(cmd *cobra.Command, args []string) error {
	store, err := openObjectStore()
	if err != nil {
		return err
	}

	var entries []objects.TreeEntry
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := parseTreeLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNumber, err)
		}

		if !allowMissingFlag {
			if err := checkEntryObject(store, entry); err != nil {
				return fmt.Errorf("line %d: %w", lineNumber, err)
			}
		}

		entries = append(entries, *entry)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read tree listing: %w", err)
	}

	tree, err := objects.NewTree(entries)
	if err != nil {
		return err
	}

	if err := store.Store(tree); err != nil {
		return fmt.Errorf("failed to store object: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tree.Hash())
	return nil
}

// checkEntryObject verifies the object an entry points at is stored with the type its mode implies.
// Submodule commits live in another repository and are not checked.
func checkEntryObject(store *objects.ObjectStore, entry *objects.TreeEntry) error {
	expectedType := entry.Mode().ObjectType()
	if expectedType == utils.CommitObjectType {
		return nil
	}

	objectType, _, err := store.ReadObject(entry.Hash())
	if err != nil {
		return err
	}
	if objectType != expectedType {
		return fmt.Errorf("%w: %s is a %s, not a %s", objects.ErrTypeMismatch, entry.Hash(), objectType, expectedType)
	}
	return nil
}

// parseTreeLine reads "<mode> <type> <object>\t<name>".
// A space may stand in for the tab, in which case the name is everything after the third field.
func parseTreeLine(line string) (*objects.TreeEntry, error) {
	meta, name, found := strings.Cut(line, "\t")
	if !found {
		fields := strings.SplitN(line, " ", 4)
		if len(fields) != 4 {
			return nil, fmt.Errorf("malformed tree listing %q", line)
		}
		meta, name = strings.Join(fields[:3], " "), fields[3]
	}

	fields := strings.Fields(meta)
	if len(fields) != 3 {
		return nil, fmt.Errorf("malformed tree listing %q", line)
	}

	// "040000" as printed by ls-tree is stored as "40000"
	mode := objects.FileMode(strings.TrimLeft(fields[0], "0"))
	objectType := utils.ObjectType(fields[1])
	if mode.IsValid() && mode.ObjectType() != objectType {
		return nil, fmt.Errorf("mode %s does not match object type %s", fields[0], objectType)
	}

	return objects.NewTreeEntry(mode, name, fields[2])
}
