package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/onenotestats/internal/config"
	"github.com/aidanlsb/onenotestats/internal/ui"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath    string
	hierarchyPath string
	separator     string
	pathSeparator string
	dbPath        string
	noExport      bool
	verbose       bool

	logger *logrus.Logger
	cfg    *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "onenotestats <NotebookNickName> [OutputFilePath]",
		Short: "Count and list the pages of a OneNote notebook",
		Long: `Reads a OneNote notebook hierarchy, prints section group, section and page
counts, and dumps every page to a tab-separated UTF-16 file.

The recycle bin (OneNote_RecycleBin) is left out of every count and of the dump.
The output defaults to <NotebookNickName>.tsv and is never overwritten.

Examples:
  onenotestats Work
  onenotestats Work ~/reports/work-pages.tsv
  onenotestats Work --hierarchy hierarchy.xml --json`,
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Usage()
			}
			outPath := ""
			if len(args) == 2 {
				outPath = args[1]
			}
			return runInventory(cmd.Context(), opts, args[0], outPath)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to config file")
	flags.StringVar(&opts.hierarchyPath, "hierarchy", "", "Exported hierarchy XML file (overrides hierarchy_file in config)")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite file recording each run (overrides database in config)")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log progress to stderr")
	rootCmd.Flags().StringVar(&opts.separator, "separator", "", "Field separator of the dump file (default tab)")
	rootCmd.Flags().StringVar(&opts.pathSeparator, "path-separator", "", `Separator of location paths (default "\")`)
	rootCmd.Flags().BoolVar(&opts.noExport, "no-export", false, "Print counts only, do not write a dump file")

	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// setup loads configuration and the logger. It runs once before any command.
func (o *options) setup() error {
	o.logger = logrus.New()
	o.logger.SetOutput(stderr)
	o.logger.SetLevel(logrus.WarnLevel)
	if o.verbose {
		o.logger.SetLevel(logrus.DebugLevel)
	}

	var err error
	if strings.TrimSpace(o.configPath) != "" {
		o.cfg, err = config.LoadFrom(o.configPath)
	} else {
		o.cfg, err = config.Load()
	}
	if err != nil {
		return withCode(ErrConfigInvalid, err, "Fix or remove the config file")
	}
	o.logger.WithField("path", o.configPath).Debug("configuration loaded")

	if !isJSONOutput() {
		ui.ConfigureTheme(o.cfg.UI.Accent)
	}
	return nil
}

func (o *options) databasePath() string {
	if o.dbPath != "" {
		return o.dbPath
	}
	return o.cfg.Database
}

// Execute runs the CLI. Failures are reported here, either as a JSON error
// envelope or as an error chain dump on stderr.
func Execute() error {
	return execute(context.Background(), os.Args[1:])
}

func execute(ctx context.Context, args []string) error {
	jsonOutput = false
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if isJSONOutput() {
		outputErrorFromErr(err)
	} else {
		dumpErrorChain(stderr, err)
	}
	return err
}

// printLine writes a line of human-readable output.
func printLine(a ...interface{}) {
	fmt.Fprintln(stdout, a...)
}
