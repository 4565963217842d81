package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/asana/internal/app"
	"github.com/zjrosen/asana/internal/booking"
	"github.com/zjrosen/asana/internal/config"
	"github.com/zjrosen/asana/internal/log"
	"github.com/zjrosen/asana/internal/mode"
	"github.com/zjrosen/asana/internal/mode/shared"
	"github.com/zjrosen/asana/internal/tracing"
	"github.com/zjrosen/asana/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config and receives the
// default file when no config exists anywhere.
const localConfigPath = ".asana/config.yaml"

var (
	version    = "dev"
	cfgFile    string
	cfgPath    string
	cfg        config.Config
	cfgErr     error
	debugFlag  bool
	plainFlag  bool
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "asana",
	Short: "Book a yoga class from your terminal",
	Long: `A terminal client for booking yoga class slots.

Fill in your details and a preferred time slot; asana validates them as you
type and submits the registration to the booking API. After a successful
booking the dashboard shows a summary of the request.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/asana/config.yaml)")
	rootCmd.PersistentFlags().String("endpoint", "",
		"booking API endpoint (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs to $ASANA_LOG (default: debug.log)")
	rootCmd.Flags().BoolVar(&plainFlag, "plain", false,
		"ask for each field line by line instead of the full-screen form")

	// Bind flags to viper
	_ = viper.BindPFlag("booking.endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
}

func initConfig() {
	cfgPath, cfgErr = loadConfig(viper.GetViper(), cfgFile)
	if cfgErr != nil {
		return
	}
	cfg, cfgErr = config.Unmarshal(viper.GetViper())
}

// loadConfig registers defaults on v and reads the first config file found.
// It returns the path that config changes should be written to.
func loadConfig(v *viper.Viper, explicit string) (string, error) {
	config.RegisterDefaults(v)

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		// Config lookup order:
		// 1. .asana/config.yaml (current directory)
		// 2. ~/.config/asana/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			v.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			v.AddConfigPath(filepath.Join(home, ".config", "asana"))
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// No config file found anywhere - create default at .asana/config.yaml
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				v.SetConfigFile(localConfigPath)
				_ = v.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		case explicit != "" && errors.Is(err, fs.ErrNotExist):
			// An explicit path that doesn't exist yet is created by `config set`
			return explicit, nil
		default:
			return "", fmt.Errorf("reading config: %w", err)
		}
	}

	if used := v.ConfigFileUsed(); used != "" {
		return used, nil
	}
	return localConfigPath, nil
}

// setup enables debug logging, then fails on a bad config and applies the theme.
func setup(_ *cobra.Command, _ []string) error {
	if err := setupLogging(); err != nil {
		return err
	}
	if cfgErr != nil {
		return cfgErr
	}
	log.Debug(log.CatConfig, "Loaded config", "path", cfgPath, "endpoint", cfg.Booking.Endpoint)

	if err := app.ApplyTheme(cfg.Theme); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}
	return nil
}

// setupLogging initializes logging if debug mode is enabled (via flag or env var).
func setupLogging() error {
	if os.Getenv("ASANA_DEBUG") == "" && !debugFlag {
		return nil
	}
	logPath := os.Getenv("ASANA_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.InitWithTeaLog(logPath, "asana")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup

	log.Info(log.CatConfig, "Asana starting", "version", version, "logPath", logPath)
	return nil
}

// newServices builds the booking client and its tracer from c.
// The returned func flushes pending spans.
func newServices(c config.Config, configPath string) (mode.Services, func(), error) {
	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      c.Tracing.Enabled,
		Exporter:     c.Tracing.Exporter,
		FilePath:     c.Tracing.FilePath,
		OTLPEndpoint: c.Tracing.OTLPEndpoint,
		SampleRate:   c.Tracing.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	})
	if err != nil {
		return mode.Services{}, nil, fmt.Errorf("initializing tracing: %w", err)
	}
	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatConfig, "Failed to flush traces", err)
		}
	}

	booker := booking.New(c.Booking.Endpoint,
		booking.WithTimeout(c.Booking.Timeout),
		booking.WithTracer(provider.Tracer()),
	)
	log.Debug(log.CatBooking, "Booking client ready", "endpoint", booker.Endpoint(), "tracing", provider.Enabled())

	return mode.Services{
		Booker:     booker,
		Config:     &c,
		ConfigPath: configPath,
		Clipboard:  shared.SystemClipboard{Out: os.Stdout},
		Clock:      shared.RealClock{},
	}, shutdown, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	services, shutdown, err := newServices(cfg, cfgPath)
	if err != nil {
		return err
	}
	defer shutdown()

	if plainFlag {
		return runPlain(cmd, services)
	}

	var opts []app.Option
	if stop, changes := watchConfig(cfgPath); changes != nil {
		defer stop()
		opts = append(opts, app.WithConfigReload(changes, func() (config.Config, error) {
			return reloadConfig(cfgPath)
		}))
	}

	zone.NewGlobal()
	model := app.New(services, opts...)
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// watchConfig starts watching path. It returns a nil channel when the file
// doesn't exist or can't be watched; the app then runs without live reload.
func watchConfig(path string) (func(), <-chan struct{}) {
	if _, err := os.Stat(path); err != nil {
		return func() {}, nil
	}
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.ErrorErr(log.CatConfig, "Config watcher unavailable", err)
		return func() {}, nil
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		log.ErrorErr(log.CatConfig, "Config watcher unavailable", err)
		return func() {}, nil
	}
	return func() { _ = w.Stop() }, changes
}

// reloadConfig reads path into a fresh viper so a failed read can't disturb
// the running config.
func reloadConfig(path string) (config.Config, error) {
	v := viper.New()
	if _, err := loadConfig(v, path); err != nil {
		return config.Config{}, err
	}
	return config.Unmarshal(v)
}

// Execute runs the root command
func Execute() error {
	defer func() {
		if logCleanup != nil {
			logCleanup()
		}
	}()
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
