package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nilshoffmann/pwiz/pkg/autostart"
	"github.com/nilshoffmann/pwiz/pkg/config"
	"github.com/nilshoffmann/pwiz/pkg/journal"
	"github.com/nilshoffmann/pwiz/pkg/notify"
	"github.com/nilshoffmann/pwiz/pkg/resolve"
	"github.com/nilshoffmann/pwiz/pkg/singleinst"
	"github.com/nilshoffmann/pwiz/pkg/starter"
)

var rootCmd = &cobra.Command{
	Use:   "autoqcstarter [channel|path]",
	Short: "Keeps AutoQC running",
	Long: `autoqcstarter watches the process table and relaunches AutoQC whenever
it is not running.

With no argument it launches the default channel. A channel name
("release", "daily") selects that channel's installation; any other
argument is treated as an explicit path to the AutoQC executable.

Only one instance runs per machine. The starter exits when AutoQC is
uninstalled or when it receives an interrupt or termination signal.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: ~/.autoqcstarter.yaml)")
	rootCmd.PersistentFlags().Duration("interval", 0, "Time between process checks")
	rootCmd.PersistentFlags().String("metrics-listen", "", "Prometheus listen address, e.g. :9093 (disabled when empty)")
	rootCmd.PersistentFlags().String("notifier", "", "How terminal failures are shown (desktop, console, none)")
	rootCmd.PersistentFlags().String("log-dir", "", "Journal directory (default: directory of this executable)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	viper.BindPFlag("interval", rootCmd.PersistentFlags().Lookup("interval"))
	viper.BindPFlag("metrics_listen", rootCmd.PersistentFlags().Lookup("metrics-listen"))
	viper.BindPFlag("notifier", rootCmd.PersistentFlags().Lookup("notifier"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".autoqcstarter")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("AUTOQC")
	viper.AutomaticEnv()

	viper.ReadInConfig()
}

// loadConfig merges defaults, the config file and flag/env overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()

	if file := viper.ConfigFileUsed(); file != "" {
		loaded, err := config.Load(file)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v := viper.GetDuration("interval"); v > 0 {
		cfg.Interval = v
	}
	if v := viper.GetString("metrics_listen"); v != "" {
		cfg.MetricsListen = v
	}
	if v := viper.GetString("notifier"); v != "" {
		cfg.Notifier = v
	}
	if v := viper.GetString("log_dir"); v != "" {
		cfg.LogDir = v
	}
	if v := viper.GetString("log_level"); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// executableDir is where the journal lives and where a co-located target
// executable is looked for.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		dir, _ := os.Getwd()
		return dir
	}
	return filepath.Dir(exe)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return starter.ErrSetupFailed("invalid configuration", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	notifier := notify.ForName(cfg.Notifier, cfg.Identity.App)

	// The journal comes up before the lock: a losing instance still owes
	// the operator log a line about the conflict.
	logDir := cfg.LogDir
	if logDir == "" {
		logDir = executableDir()
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		terminal := starter.ErrSetupFailed("could not create the log directory", err).
			WithContext("dir", logDir)
		(&starter.Reporter{Notifier: notifier, Logger: logger}).Report(terminal.Message)
		return terminal
	}
	j := journal.New(logDir, cfg.Identity.App)
	reporter := &starter.Reporter{Journal: j, Notifier: notifier, Logger: logger}

	// One starter per machine for this identity. Everything else waits
	// until the lock is held.
	guard, err := singleinst.Acquire(cfg.Identity.Key())
	if err != nil {
		if errors.Is(err, singleinst.ErrAlreadyRunning) {
			terminal := starter.ErrAlreadyRunning(cfg.Identity.Key())
			reporter.Report(
				"Another instance of " + cfg.Identity.App + " is already running. Exiting.")
			return terminal
		}
		return starter.ErrSetupFailed("could not acquire the instance lock", err)
	}
	defer guard.Release()

	j.Logf("%s started", cfg.Identity.App)

	channel := cfg.DefaultChannel()
	explicitPath := ""
	if len(args) == 1 {
		if cfg.IsChannel(args[0]) {
			channel = strings.ToLower(args[0])
		} else {
			explicitPath = args[0]
		}
	}

	target, err := resolve.Resolve(resolve.Request{
		TargetName:          cfg.Target.Name,
		Publisher:           cfg.Identity.Publisher,
		ReferenceFile:       cfg.ReferenceFileName(channel),
		ExecutableFile:      cfg.ExecutableName(channel),
		AcceptedExecutables: cfg.AcceptedExecutables(),
		ExplicitPath:        explicitPath,
		ShortcutsDir:        resolve.DefaultShortcutsDir(),
		ExecDir:             executableDir(),
	})
	if err != nil {
		displayName := strings.TrimSuffix(cfg.ExecutableName(channel), ".exe")
		terminal := starter.ErrResolutionFailed(displayName, err)
		reporter.Reportf("Unable to find %s. Exiting. %s will not start automatically at login.",
			displayName, cfg.Identity.App)
		// Keeping the login shortcut around would just reproduce this
		// failure at every login.
		if rmErr := autostart.RemoveLoginShortcut(cfg.Identity.App); rmErr != nil {
			logger.Warn("could not remove login shortcut", "error", rmErr)
		}
		return terminal
	}
	logger.Info("resolved target", "path", target.Path, "kind", target.Kind.String())

	metrics := starter.NewPrometheusMetricsCollector("autoqcstarter")
	if cfg.MetricsListen != "" {
		go serveMetrics(cfg.MetricsListen, metrics, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sup := starter.New(starter.Options{
		Target:      *target,
		TargetName:  strings.TrimSuffix(cfg.ExecutableName(channel), ".exe"),
		ProcessName: cfg.ExecutableName(channel),
		Interval:    cfg.Interval,
		Journal:     j,
		Logger:      logger,
		Metrics:     metrics,
	})

	if err := sup.Run(ctx); err != nil {
		reporter.Report(err.Error())
		return err
	}

	j.Logf("%s stopped", cfg.Identity.App)
	return nil
}

func serveMetrics(addr string, metrics *starter.PrometheusMetricsCollector, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	logger.Info("metrics server listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server error", "error", err)
	}
}
