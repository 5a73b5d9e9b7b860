package main

import (

	"github.com/spf13/cobra"
)

var phaseCmd = &cobra.Command{
	Use:   "phase [time]",
	Short: "Show the Moon's phase and paksha",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPhase,
}

func init() {
	rootCmd.AddCommand(phaseCmd)
}

func runPhase(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	at, err := parseTime(optionalArg(args), s.tz)
	if err != nil {
		return err
	}

	mp, err := s.engine.MoonPhase(at)
	if err != nil {
		return err
	}

	p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Format, s.tz)
	return p.emit(mp, func() error {
		p.title("%s", mp.Name)
		p.note("%s paksha, %.1f%% lit, elongation %.2f°", mp.Paksha, mp.Fraction*100, mp.Elongation)
		return nil
	})
}
