package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"turtlebot/config"
	"turtlebot/host/logging"
)

var (
	configPath string
	debug      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "turtle",
	Short: "Drive a two-wheeled turtle drawing robot.",
	Long: `Drive a two-wheeled turtle drawing robot. Scripts hold one command per line ` +
		`(fd, bk, lt, rt, pu, pd, speed, accel, microstep, enable, disable, stop, status). ` +
		`They can be run on GPIO lines of this machine, simulated, or sent to the firmware ` +
		`over a serial console.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "JSON robot configuration (defaults when empty)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output including motion engine events")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadFile(configPath)
	return cfg, errors.Wrapf(err, "loading %s", configPath)
}

func newLogger() (*zap.SugaredLogger, error) {
	logger, err := logging.New("turtle", debug)
	if err != nil {
		return nil, err
	}
	logging.BridgeCore(logger, debug)
	return logger, nil
}

// openScript opens a script file, or stdin for "-"
func openScript(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	return f, errors.Wrap(err, "opening script")
}
