package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"turtlebot/host/sim"
)

var svgPath string

var simCmd = &cobra.Command{
	Use:   "sim SCRIPT",
	Short: "Simulate a script without hardware",
	Long: `Simulate a script on recording outputs with a virtual clock and report the ` +
		`pulses sent to each wheel. With --svg the pen-down strokes are drawn to a file.`,
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

		script, err := openScript(args[0])
		if err != nil {
			return err
		}
		defer script.Close()

		s, err := sim.New(cfg, logger.Named("sim"))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := s.RunScript(script, out); err != nil {
			return err
		}

		for _, line := range s.Hardware.StepLines() {
			fmt.Fprintf(out, "%s: %d pulses\n", line, s.Hardware.Pulses(line))
		}
		pose := s.Turtle.Pose()
		fmt.Fprintf(out, "pose: x=%.1fmm y=%.1fmm heading=%.1fdeg\n", pose.X, pose.Y, pose.Heading)
		fmt.Fprintf(out, "time: %s\n", s.Elapsed())

		if svgPath == "" {
			return nil
		}
		f, err := os.Create(svgPath)
		if err != nil {
			return errors.Wrap(err, "creating svg")
		}
		if err := s.Plotter.WriteSVG(f); err != nil {
			f.Close()
			return errors.Wrap(err, "writing svg")
		}
		return errors.Wrap(f.Close(), "closing svg")
	},
}

func init() {
	simCmd.Flags().StringVar(&svgPath, "svg", "", "write the drawn strokes to this SVG file")
	rootCmd.AddCommand(simCmd)
}
