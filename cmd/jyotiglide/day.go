package main

import (
	"time"

	"github.com/spf13/cobra"
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Enumerate every unit kind across one sunrise-to-sunrise day",
	Long: "day finds sunrise at --lat/--lon on the given local date and the next one,\n" +
		"then lists the intervals of every unit kind in between. Where the Sun does\n" +
		"not rise the window is empty and nothing is listed.",
	Args: cobra.MaximumNArgs(1),
	RunE: runDay,
}

func init() {
	rootCmd.AddCommand(dayCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	date, err := parseTime(optionalArg(args), s.tz)
	if err != nil {
		return err
	}

	day, err := s.engine.Day(s.riseSet(), s.location(), date)
	if err != nil {
		return err
	}

	p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Format, s.tz)
	return p.emit(day, func() error {
		loc := s.location()
		p.title("%s at %.4f, %.4f", date.Format(time.DateOnly), loc.Lat, loc.Lon)
		if day.Window.Empty() {
			p.note("the Sun does not rise on this date")
			return nil
		}
		p.note("sunrise %s → next sunrise %s", p.time(day.Window.Start), p.time(day.Window.End))
		return printKinds(p, day.Kinds)
	})
}
