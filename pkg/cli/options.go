package cli

import (
	"github.com/githubnext/spawncheck/pkg/config"
	"github.com/spf13/cobra"
)

// version is set by the main package at startup
var version = "dev"

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v string) {
	version = v
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}

// LoadOptions resolves the configuration of cmd from the --config file, the
// environment and the command's flags
func LoadOptions(cmd *cobra.Command) (Options, config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return Options{}, config.Config{}, err
	}

	return Options{
		OutputDir: cfg.OutputDir,
		Apply:     cfg.Apply,
		Strict:    cfg.Strict,
		Verbose:   cfg.Verbose,
		Out:       cmd.OutOrStdout(),
		Err:       cmd.ErrOrStderr(),
	}, cfg, nil
}
