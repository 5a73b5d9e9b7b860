package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/jyotiglide"
)

var monthCmd = &cobra.Command{
	Use:   "month [time]",
	Short: "Name the amanta lunar month in effect at an instant",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMonth,
}

func init() {
	monthCmd.Flags().IntP("count", "n", 1, "number of consecutive months to show")
	rootCmd.AddCommand(monthCmd)
}

type monthReport struct {
	Months []jyotiglide.LunarMonth `json:"months" toml:"months"`
}

func runMonth(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	at, err := parseTime(optionalArg(args), s.tz)
	if err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")

	var report monthReport
	for i := 0; i < max(count, 1); i++ {
		m, err := s.engine.LunarMonth(at)
		if err != nil {
			return err
		}
		report.Months = append(report.Months, m)
		at = m.NextAnchor.Add(s.cfg.Search.Precision + time.Minute)
	}

	p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Format, s.tz)
	return p.emit(report, func() error {
		rows := [][]string{{"MONTH", "#", "NEW MOON", "NEXT NEW MOON", "SUN SIGN", "NOTE"}}
		for _, m := range report.Months {
			note := ""
			switch {
			case m.IsIntercalary:
				note = "adhika"
			case m.IsExpunged:
				note = "kshaya"
			}
			rows = append(rows, []string{
				m.DisplayName(), strconv.Itoa(m.Index), p.time(m.Anchor), p.time(m.NextAnchor),
				jyotiglide.SignName(m.SunSign), note,
			})
		}
		return p.table(rows)
	})
}
