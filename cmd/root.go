package cmd

import (
	"fmt"
	"os"

	"github.com/KostasZigo/gitodb/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd defines the base command for the gitodb CLI.
// All subcommands (init, hash-object, cat-file, ...) register under this root.
var rootCmd = &cobra.Command{
	Use:   "gitodb",
	Short: "A content-addressable object database in the format of git",
	Long: `gitodb stores files as zlib-compressed, SHA-1 addressed objects laid out the way git
lays out its loose objects, and reads blobs and trees back out of such a store.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/gitodb/config.yaml)")
	rootCmd.PersistentFlags().String("git-dir", constants.GitDir, "name of the repository metadata directory")
	rootCmd.PersistentFlags().Bool("strict", true, "verify object size and hash when reading")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	viper.BindPFlag(constants.ConfigGitDir, rootCmd.PersistentFlags().Lookup("git-dir"))
	viper.BindPFlag(constants.ConfigStrict, rootCmd.PersistentFlags().Lookup("strict"))
	viper.BindPFlag(constants.ConfigVerbose, rootCmd.PersistentFlags().Lookup("verbose"))
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// exactArgs validates command receives exactly n positional arguments.
// enables usage printing in case of error
func exactArgs(n int, name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command requires exactly %d argument (%s), received %d", cmd.Name(), n, name, len(args))
		}
		return nil
	}
}

// maximumArgs validates command receives at most n positional arguments.
// Returns error with usage help if argument limit exceeded.
func maximumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command accepts at most %d arg(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}
