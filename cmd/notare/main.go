package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notare-dev/notare/internal/app"
	"github.com/notare-dev/notare/internal/config"
	"github.com/notare-dev/notare/internal/events"
	"github.com/notare-dev/notare/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "notare [path]",
	Short: "Browse, search and sync a folder of markdown notes",
	Long: `notare is a keyboard-driven browser for a folder of markdown notes:
fuzzy search over titles, tags and content, inline preview, and
git-backed sync. The folder defaults to ~/notare.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is ~/.config/notare/config.yaml)")
}

// initConfig discovers the config file with viper and decodes it into
// the typed struct. A missing file keeps the defaults; a malformed one
// keeps the defaults and leaves a log line.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := config.Dir()
		cobra.CheckErr(err)
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	_ = viper.ReadInConfig()

	path := viper.ConfigFileUsed()
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		cobra.CheckErr(err)
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		logging.L().Warn("config load", zap.Error(err))
	}
}

func run(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	logCfg := logging.Config{Level: "info"}
	if logPath, err := config.LogPath(); err == nil {
		logCfg.FilePath = logPath
	}
	if err := logging.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}
	defer func() {
		_ = logging.Sync()
	}()

	watcher, err := events.NewWatcher(root)
	if err != nil {
		logging.L().Warn("file watching disabled", zap.Error(err))
	}

	// UTF-8 fallback keeps non-ASCII titles readable on odd locales.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}

	session := app.New(screen, app.Options{Root: root, Config: cfg, Watcher: watcher})
	defer session.Close()

	logging.L().Info("session started", zap.String("root", root))
	session.Run()
	return nil
}

// resolveRoot picks the note folder from the argument or the default
// location, creating it when absent.
func resolveRoot(args []string) (string, error) {
	var root string
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("resolve notes folder: %w", err)
		}
		root = abs
	} else {
		def, err := config.DefaultRoot()
		if err != nil {
			return "", err
		}
		root = def
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("create notes folder %s: %w", root, err)
	}
	return root, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
