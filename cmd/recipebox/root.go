package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PikeCameron/recipebox/internal/logging"
	"github.com/PikeCameron/recipebox/internal/paths"
	"github.com/PikeCameron/recipebox/internal/sqlite"
	"github.com/PikeCameron/recipebox/pkg/recipebox"
	"github.com/PikeCameron/recipebox/pkg/types"
)

// app carries the global flags and the per-invocation state shared by all
// subcommands.
type app struct {
	configDir string
	dataDir   string
	jsonOut   bool

	cfg       *viper.Viper
	logger    *slog.Logger
	logCloser io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "recipebox",
		Short:   "Recipebox keeps a local catalog of recipes",
		Long:    "Recipebox stores recipes, their categories and their ingredients\nin a single local SQLite file.",
		Version: recipebox.Version,
		// Errors are printed once by run.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: per-user config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/.recipebox-db)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "output as JSON")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newCategoryCmd(a),
		newCategoriesCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newResetCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newShellCmd(a),
	)
	return root
}

// setup loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w: %w", types.ErrResource, err)
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrResource, err)
	}
	a.cfg = cfg

	logger, closer, err := logging.New(logConfig(cfg, configDir), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	a.logger, a.logCloser = logger, closer

	a.logger.Debug("running command", "command", cmd.CommandPath(), "config_dir", configDir)
	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		a.logCloser.Close()
		a.logCloser = nil
	}
}

// storeConfig resolves where the store lives from flags and config.yaml.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w: %w", types.ErrResource, err)
	}
	return types.Config{
		DataDir:  dataDir,
		Database: a.cfg.GetString(cfgKeyDatabase),
		SeedFile: a.cfg.GetString(cfgKeySeedFile),
	}, nil
}

// openStore opens the configured store. The caller must defer Close.
func (a *app) openStore() (*sqlite.Store, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	return sqlite.Open(cfg, a.logger)
}
