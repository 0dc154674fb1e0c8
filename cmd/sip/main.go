package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"SIPPlanner/internal/config"
	"SIPPlanner/internal/logging"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "sip",
	Short:         "SIP calculator for a high-ROI, low-volatility portfolio",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	def := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		def = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", def, "path to the YAML config file")
}

// setup loads the config and builds the logger. quiet discards logs that
// would otherwise go to the terminal.
func setup(quiet bool) (*config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if quiet && logsToTerminal(cfg.Log.Output) {
		return cfg, logging.Nop(), nil
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func logsToTerminal(outputs []string) bool {
	if len(outputs) == 0 {
		return true
	}
	for _, o := range outputs {
		if o == "stdout" || o == "stderr" {
			return true
		}
	}
	return false
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
