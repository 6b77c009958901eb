package cmd

import (
	"fmt"

	"github.com/KostasZigo/gitodb/internal/repository"
	"github.com/KostasZigo/gitodb/utils"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a new object database",
	Long: `The 'init' command sets up a new repository in the current directory or the given one.
It creates the metadata directory with objects/, refs/ and a HEAD file pointing at refs/heads/main.
If a repository already exists, the command will not overwrite existing data.`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// runInit executes repository initialization at specified or current directory.
func runInit(cmd *cobra.Command, args []string) error {
	dirPath := "."
	if len(args) > 0 {
		dirPath = args[0]
	}

	if err := repository.InitRepository(dirPath, gitDirName()); err != nil {
		return fmt.Errorf("failed to initialize repository - %w", err)
	}

	cmd.Printf("Initialized empty repository in %s\n", utils.BuildDirPath(dirPath, gitDirName()))
	return nil
}
