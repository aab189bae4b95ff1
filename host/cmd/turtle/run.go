package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"turtlebot/config"
	"turtlebot/core"
	"turtlebot/host/gpio"
	"turtlebot/host/ticker"
	"turtlebot/robot"
)

var runCmd = &cobra.Command{
	Use:   "run SCRIPT",
	Short: "Run a script on the GPIO lines of this machine",
	Long: `Run a script on the GPIO lines of this machine. Pins are named as periph.io ` +
		`knows them, e.g. GPIO17 on a Raspberry Pi. Use "-" to read commands from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runScript(ctx, args[0], cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// logIndicator reports status changes in the log in place of an LED
type logIndicator struct {
	logger *zap.SugaredLogger
}

func (l logIndicator) Show(s robot.Status) {
	l.logger.Debugw("status", "state", s.String())
}

func runScript(ctx context.Context, path string, cfg *config.Config, logger *zap.SugaredLogger) (err error) {
	script, err := openScript(path)
	if err != nil {
		return err
	}
	defer script.Close()

	board, err := gpio.Open(logger.Named("gpio"))
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, board.Close())
	}()

	sched := core.NewScheduler()
	turtle, err := robot.Build(cfg, board, sched, robot.WithIndicator(logIndicator{logger}))
	if err != nil {
		return errors.Wrap(err, "building turtle")
	}
	defer func() {
		turtle.Stop()
		err = multierr.Append(err, errors.Wrap(turtle.Disable(), "disabling motors"))
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	runner := ticker.New(sched, nil, ticker.DefaultPeriod, logger.Named("ticker"))
	go runner.Run(runCtx)

	in := robot.NewInterpreter(turtle)
	scanner := bufio.NewScanner(script)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		reply, err := in.Exec(line)
		if err != nil {
			return errors.Wrapf(err, "line %d", n)
		}
		if reply == "" {
			continue
		}
		logger.Infow("command", "line", line, "reply", reply)
		if err := turtle.Wait(ctx); err != nil {
			return errors.Wrapf(err, "line %d interrupted", n)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading script")
	}
	fmt.Fprintln(os.Stdout, "done")
	return nil
}
