package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/githubnext/spawncheck/pkg/cli"
	"github.com/githubnext/spawncheck/pkg/console"
	"github.com/githubnext/spawncheck/pkg/constants"
	"github.com/githubnext/spawncheck/pkg/schema"
	"github.com/spf13/cobra"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

// Global flags
var verbose bool

var rootCmd = &cobra.Command{
	Use:   constants.CLIName + " <zones|tiers> <filename>",
	Short: "Validate zone and tier spawn configuration files",
	Long: `spawncheck validates the JSON configuration of a game's dynamic spawn system.

Zone files describe spatial trigger regions and their spawn points, tier files
group the entity classnames that can be spawned. Every problem is reported with
an approximate line number and a suggested fix, and a copy of the document plus
a fix report are written to the output directory.

Examples:
  ` + constants.CLIName + ` zones zones.json
  ` + constants.CLIName + ` tiers tiers.json --strict
  ` + constants.CLIName + ` check ./configs`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			cmd.SetOut(os.Stderr)
			_ = cmd.Usage()
			os.Exit(1)
		}
		kind, err := schema.ParseKind(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
		runValidate(cmd, kind, args[1])
	},
}

// newValidateCommand creates the zones and tiers commands
func newValidateCommand(kind schema.Kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kind) + " <filename>",
		Short: fmt.Sprintf("Validate a %s configuration file", kind),
		Long: fmt.Sprintf(`Validate a %[1]s configuration file.

Errors are printed with their line number and suggested fixes. When the file has
errors, <name>%[2]s and <name>%[3]s are written to the output directory.

Examples:
  %[4]s %[1]s %[1]s.json
  %[4]s %[1]s %[1]s.json --output-dir out --apply
  %[4]s %[1]s %[1]s.json --watch`, kind, constants.FixedFileSuffix, constants.ReportFileSuffix, constants.CLIName),
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runValidate(cmd, kind, args[0])
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Watch the file and validate it again on every change")
	return cmd
}

// runValidate validates one file, or watches it, and exits with status 1 on any failure
func runValidate(cmd *cobra.Command, kind schema.Kind, path string) {
	opts, cfg, err := cli.LoadOptions(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if watch {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := cli.WatchFile(ctx, path, kind, opts, cfg.WatchDebounce); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
		return
	}

	if err := cli.RunValidate(path, kind, opts); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("%s version %s", constants.CLIName, cli.GetVersion())))
	},
}

func init() {
	// Add global flags to root command
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output showing detailed information")
	rootCmd.PersistentFlags().String("config", "", "Path to a configuration file (default ./"+constants.ConfigFileName+")")
	rootCmd.PersistentFlags().StringP("output-dir", "o", constants.DefaultOutputDir, "Directory for the fixed file and fix report")
	rootCmd.PersistentFlags().Bool("strict", false, "Also report fields that are not part of the schema")
	rootCmd.PersistentFlags().Bool("apply", false, "Write default values for missing fields into the fixed file")

	// Watch flag for the <type> <filename> form
	rootCmd.Flags().BoolP("watch", "w", false, "Watch the file and validate it again on every change")

	// Add all commands to root
	for _, kind := range schema.Kinds() {
		rootCmd.AddCommand(newValidateCommand(kind))
	}
	rootCmd.AddCommand(cli.NewCheckCommand())
	rootCmd.AddCommand(cli.NewSchemaCommand())
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Set version information in the CLI package
	cli.SetVersionInfo(version)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
