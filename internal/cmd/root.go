package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dendrascience/dirsplit/internal/logging"
	"github.com/dendrascience/dirsplit/version"
)

// ConfigFileEnv names a config file to load when --config is not given.
const ConfigFileEnv = "DIRSPLIT_CONFIG_FILE"

// app carries the state shared by every subcommand of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
	logger  *slog.Logger
}

// NewRootCmd creates and returns the root cobra command for the dirsplit
// CLI. It sets up all subcommands, command groups and configuration
// loading. Each call builds an independent command tree with its own
// viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{
		v:      viper.New(),
		logger: slog.New(slog.DiscardHandler),
	}

	rootCmd := &cobra.Command{
		Use:   "dirsplit",
		Short: "dirsplit - split a directory's files into groups across N directories",
		Long: `dirsplit partitions the files of a source directory across a fixed number
of target directories.

Files selected by a match rule each form a group together with their
accompanying siblings (selected by regular expressions), and groups are
dealt out round-robin so every target directory receives an equal share.
Hidden entries, .git and target directories are never traversed.

Use subcommands to perform different operations:
  - split: Distribute file groups into target directories
  - cleanup: Remove the target directories of a split
  - validate: Verify a completed split against its source
  - watch: Re-plan a split whenever the source changes
  - walk, count, purge, seed: Directory utilities

Configuration is read from .dirsplit.yml, DIRSPLIT_* environment
variables and flags, in increasing order of precedence.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .dirsplit.yml, can also use "+ConfigFileEnv+")")
	rootCmd.PersistentFlags().String(keyLogLevel, "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String(keyLogFormat, "text", "log format (text, json)")
	rootCmd.PersistentFlags().Bool(keyLogSource, false, "include the source file and line in log records")

	groupSplit := "split"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupSplit,
		Title: "Split Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	for _, c := range []*cobra.Command{
		a.newSplitCmd(),
		a.newCleanupCmd(),
		a.newValidateCmd(),
		a.newWatchCmd(),
	} {
		c.GroupID = groupSplit
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		a.newWalkCmd(),
		a.newCountCmd(),
		a.newPurgeCmd(),
		a.newSeedCmd(),
		a.newConfigCmd(),
		newVersionCmd(),
	} {
		c.GroupID = groupUtilities
		rootCmd.AddCommand(c)
	}

	return rootCmd
}

// initConfig loads the configuration file, binds environment variables
// and flags, and builds the logger.
//
// Configuration file priority (highest to lowest):
//  1. --config flag
//  2. DIRSPLIT_CONFIG_FILE environment variable
//  3. .dirsplit.yml in the current directory
//
// A missing default file is not an error; an explicitly named file that
// cannot be read is.
func (a *app) initConfig(cmd *cobra.Command) error {
	v := a.v
	setDefaults(v)

	explicit := true
	switch env := os.Getenv(ConfigFileEnv); {
	case a.cfgFile != "":
		v.SetConfigFile(a.cfgFile)
	case env != "":
		v.SetConfigFile(env)
	default:
		explicit = false
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".dirsplit")
	}

	v.SetEnvPrefix("DIRSPLIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	level, err := logging.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(v.GetString(keyLogFormat))
	if err != nil {
		return err
	}
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = format
	lc.Output = cmd.ErrOrStderr()
	lc.AddSource = v.GetBool(keyLogSource)
	lc.Component = cmd.Name()
	a.logger = logging.New(lc)
	if used := v.ConfigFileUsed(); used != "" {
		a.logger.Info("using config file", "path", used)
	}
	return nil
}
