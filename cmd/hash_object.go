package cmd

import (
	"fmt"

	"github.com/KostasZigo/gitodb/internal/objects"
	"github.com/spf13/cobra"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <filepath>",
	Short: "Compute object hash and optionally create and store a blob from a file",
	Long: `Compute the object hash (SHA-1 hash) for a file's content.
Optionally write the resulting blob into the objects folder.

Examples:
  # Compute hash without storing
  gitodb hash-object myfile.txt

  # Compute hash and store in .git/objects
  gitodb hash-object -w myfile.txt`,
	SilenceUsage: true,
	Args:         exactArgs(1, "filepath"),
	RunE:         runHashObject,
}

var writeFlag bool

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the object into the objects folder")
}

// runHashObject computes hash and optionally stores blob object.
func runHashObject(cmd *cobra.Command, args []string) error {
	if !writeFlag {
		blob, err := objects.NewBlobFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), blob.Hash())
		return nil
	}

	store, err := openObjectStore()
	if err != nil {
		return err
	}

	hash, err := store.StoreBlob(args[0])
	if err != nil {
		return fmt.Errorf("failed to store object: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
