package main

import (
	"fmt"
	"os"

	"github.com/pstuifzand/tui-vlist/internal/app"
	"github.com/pstuifzand/tui-vlist/internal/config"
	"github.com/pstuifzand/tui-vlist/internal/logging"
	"github.com/pstuifzand/tui-vlist/internal/socket"
	"github.com/pstuifzand/tui-vlist/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	flagItemHeight int
	flagOverscan   int
	flagListHeight int
	flagDebug      bool
	flagConfig     string
	flagLogFile    string
	flagNoRemote   bool
	flagWatch      bool
)

var rootCmd = &cobra.Command{
	Use:   "vlist [file]",
	Short: "Browse large item lists in the terminal",
	Long: `vlist shows a list of items and draws only the rows that are visible,
so files with millions of lines scroll as fast as small ones.

The file is read as one item per line, as items of a JSON or YAML file
(.json, .yaml, .yml) or as the headers and bullets of a markdown file
(.md, .markdown). Use "-" to read lines from stdin.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runViewer,
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVar(&flagItemHeight, "item-height", 1, "Rows per item")
	flags.IntVar(&flagOverscan, "overscan", 3, "Items rendered beyond each edge of the viewport")
	flags.IntVar(&flagListHeight, "list-height", 0, "Fixed viewport height in rows, 0 measures the terminal")
	flags.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	flags.StringVar(&flagConfig, "config", "", "Config file (default ~/.config/tui-vlist/config.toml)")
	flags.StringVar(&flagLogFile, "log", logging.DefaultFile, "Log file")
	flags.BoolVar(&flagNoRemote, "no-remote", false, "Do not accept commands from vlist send")
	flags.BoolVarP(&flagWatch, "watch", "w", false, "Reload the file when it changes")

	rootCmd.AddCommand(rangeCmd, filterCmd, sendCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flags given on the command line
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFromFile(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("item-height") {
		cfg.ItemHeight = flagItemHeight
	}
	if flags.Changed("overscan") {
		cfg.Overscan = flagOverscan
	}
	if flags.Changed("list-height") {
		cfg.ListHeight = flagListHeight
	}
	if _, err := cfg.EngineOptions(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(flagLogFile, flagDebug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var path string
	if len(args) > 0 {
		path = args[0]
	}

	var remote *socket.Server
	if !flagNoRemote {
		remote, err = socket.NewServer(socket.DefaultDir(), os.Getpid(), logger.Named("socket"))
		if err != nil {
			// The viewer works without remote control
			logger.Warn("remote control disabled", zap.Error(err))
		} else {
			remote.Start()
			defer remote.Stop()
		}
	}

	var watcher *watch.Watcher
	if flagWatch {
		if path == "" || path == "-" {
			return fmt.Errorf("--watch needs a file")
		}
		if watcher, err = watch.New(path, watch.DefaultDebounce, logger.Named("watch")); err != nil {
			return err
		}
		if err := watcher.Start(cmd.Context()); err != nil {
			watcher.Stop()
			return err
		}
		defer watcher.Stop()
	}

	application, err := app.NewApp(app.Options{
		Path:    path,
		Config:  cfg,
		Logger:  logger,
		Debug:   flagDebug,
		Remote:  remote,
		Watch:   watcher,
		Version: version,
	})
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}

	if err := application.Run(); err != nil {
		logger.Error("runtime error", zap.Error(err))
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}
