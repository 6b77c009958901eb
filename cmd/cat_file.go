package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file (-p | -t | -s | -e) <object>",
	Short: "Provide content, type or size information for an object",
	Long: `Read an object from the objects folder by its 40 character id.

Examples:
  # Print the raw content of a blob
  gitodb cat-file -p ce013625030ba8dba906f756967f9e9ca394464a

  # Print the object type (blob, tree)
  gitodb cat-file -t ce013625030ba8dba906f756967f9e9ca394464a`,
	SilenceUsage: true,
	Args:         exactArgs(1, "object"),
	RunE:         runCatFile,
}

var (
	prettyPrintFlag bool
	showTypeFlag    bool
	showSizeFlag    bool
	existsFlag      bool
)

func init() {
	rootCmd.AddCommand(catFileCmd)

	catFileCmd.Flags().BoolVarP(&prettyPrintFlag, "pretty", "p", false, "Print the object content")
	catFileCmd.Flags().BoolVarP(&showTypeFlag, "type", "t", false, "Print the object type")
	catFileCmd.Flags().BoolVarP(&showSizeFlag, "size", "s", false, "Print the object size in bytes")
	catFileCmd.Flags().BoolVarP(&existsFlag, "exists", "e", false, "Exit with zero status if the object exists and is valid")
	catFileCmd.MarkFlagsMutuallyExclusive("pretty", "type", "size", "exists")
	catFileCmd.MarkFlagsOneRequired("pretty", "type", "size", "exists")
}

// runCatFile reads the object once and prints the part selected by the flags.
func runCatFile(cmd *cobra.Command, args []string) error {
	store, err := openObjectStore()
	if err != nil {
		return err
	}

	objectType, content, err := store.ReadObject(args[0])
	if err != nil {
		if existsFlag {
			cmd.SilenceErrors = true
		}
		return err
	}

	switch {
	case prettyPrintFlag:
		_, err = cmd.OutOrStdout().Write(content)
	case showTypeFlag:
		_, err = fmt.Fprintln(cmd.OutOrStdout(), objectType)
	case showSizeFlag:
		_, err = fmt.Fprintln(cmd.OutOrStdout(), len(content))
	case existsFlag:
		// Reaching here means the object decoded cleanly
	default:
		err = errors.New("one of -p, -t, -s or -e is required")
	}
	return err
}
