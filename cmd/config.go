package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gitodb/internal/constants"
	"github.com/KostasZigo/gitodb/internal/objects"
	"github.com/KostasZigo/gitodb/internal/repository"
	"github.com/klauspost/compress/zlib"
	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault(constants.ConfigGitDir, constants.GitDir)
	viper.SetDefault(constants.ConfigStrict, true)
	viper.SetDefault(constants.ConfigCompressionLevel, zlib.DefaultCompression)
	viper.SetDefault(constants.ConfigVerbose, false)
}

// initConfig loads the config file and environment, then installs the logger.
func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	configErr := viper.ReadInConfig()

	level := slog.LevelInfo
	if viper.GetBool(constants.ConfigVerbose) {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if configErr != nil {
		if _, notFound := configErr.(viper.ConfigFileNotFoundError); !notFound {
			slog.Warn("Failed to read config file", "error", configErr)
		}
	} else {
		slog.Debug("Loaded config file", "path", viper.ConfigFileUsed())
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitodb")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "gitodb")
	}
	return ".gitodb"
}

func gitDirName() string {
	return viper.GetString(constants.ConfigGitDir)
}

// openObjectStore finds the repository enclosing the working directory
// and returns a store configured from flags, environment and config file.
func openObjectStore() (*objects.ObjectStore, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	repoPath, err := repository.FindRepoRoot(cwd, gitDirName())
	if err != nil {
		return nil, err
	}

	store := objects.NewObjectStore(filepath.Join(repoPath, gitDirName()),
		objects.WithStrictLength(viper.GetBool(constants.ConfigStrict)),
		objects.WithCompressionLevel(viper.GetInt(constants.ConfigCompressionLevel)),
	)
	slog.Debug("Opened object store", "git_dir", store.GitDir())
	return store, nil
}
