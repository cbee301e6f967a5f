package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pds-generator/internal/config"
	"pds-generator/internal/logging"
)

var (
	// configFile is set by the --config flag.
	configFile string

	// settings merges defaults, the config file, PDSGEN_* variables and flags.
	settings = config.New()

	// cfg is the decoded configuration, loaded on startup.
	cfg = config.Default()

	logger = zap.NewNop()
)

// flagKeys binds config keys to the flags that override them. Flags absent
// from a command are skipped.
var flagKeys = map[string]string{
	"output_dir":      "output",
	"import_path":     "import-path",
	"runtime_import":  "runtime-import",
	"default_version": "default-version",
	"read_only":       "read-only",
	"log.level":       "log-level",
}

var rootCmd = &cobra.Command{
	Use:   "pds-generator",
	Short: "pds-generator compiles versioned pds schemas into Go",
	Long: `pds-generator compiles versioned pds schemas into Go packages.

Every schema version becomes a Go package holding its items with clone,
equality, binary I/O, validation and migration to and from the previous
version. The root package dispatches entities by type string and aliases
the items of the default version.

Configuration is read from pds-generator.yaml (or --config), then from
PDSGEN_* environment variables, then from flags.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initRun,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	d := config.Default()

	f := rootCmd.PersistentFlags()
	f.StringVar(&configFile, "config", "", "config file (default: ./pds-generator.yaml)")
	f.String("output", d.Gen.OutputDir, "directory of the generated root package")
	f.String("import-path", d.Gen.ImportPath, "Go import path of the output directory")
	f.String("runtime-import", d.Gen.RuntimeImport, "Go import path of the pds runtime package")
	f.String("log-level", d.Log.Level, "log level: debug, info, warn or error")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runtimeCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)
}

// initRun loads the configuration and builds the logger.
func initRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == versionCmd.Name() {
		return nil
	}

	for key, name := range flagKeys {
		fl := cmd.Flags().Lookup(name)
		if fl == nil {
			continue
		}

		if err := settings.BindPFlag(key, fl); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	c, err := config.Load(settings, configFile)
	if err != nil {
		return err
	}

	cfg = c
	logger = logging.New("pds-generator", cfg.Log, cmd.ErrOrStderr())

	logger.Debug("loaded config",
		zap.String("file", settings.ConfigFileUsed()),
		zap.String("output_dir", cfg.Gen.OutputDir))

	return nil
}
