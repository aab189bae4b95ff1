package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"turtlebot/host/serial"
)

var (
	device string
	baud   int
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Send commands to the turtle firmware over serial",
	Long: `Send commands read from stdin to the turtle firmware over a serial link and ` +
		`print each reply. Firmware errors are printed and the session continues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg := serial.DefaultConfig(device)
		cfg.Baud = baud
		port, err := serial.Open(cfg)
		if err != nil {
			return err
		}
		console := serial.NewConsole(port, logger.Named("console"))
		defer console.Close()
		if err := port.Flush(); err != nil {
			logger.Warnw("flushing port", "error", err)
		}

		out := cmd.OutOrStdout()
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			reply, err := console.Send(scanner.Text())
			if err != nil && !errors.Is(err, serial.ErrRemote) {
				return err
			}
			fmt.Fprintln(out, reply)
		}
		return errors.Wrap(scanner.Err(), "reading stdin")
	},
}

func init() {
	consoleCmd.Flags().StringVarP(&device, "device", "d", "/dev/ttyACM0", "serial device path")
	consoleCmd.Flags().IntVarP(&baud, "baud", "b", 115200, "baud rate (ignored for USB CDC)")
	rootCmd.AddCommand(consoleCmd)
}
