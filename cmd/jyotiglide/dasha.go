package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/jyotiglide"
)

var dashaCmd = &cobra.Command{
	Use:   "dasha <birth time>",
	Short: "Lay out Vimshottari mahadasha and antardasha periods",
	Args:  cobra.ExactArgs(1),
	RunE:  runDasha,
}

func init() {
	dashaCmd.Flags().Bool("all", false, "list antardashas of every mahadasha, not just the running one")
	rootCmd.AddCommand(dashaCmd)
}

type dashaReport struct {
	Cycle jyotiglide.DashaCycle     `json:"cycle" toml:"cycle"`
	Subs  [][]jyotiglide.DashaPeriod `json:"antardashas" toml:"antardashas"`
}

func runDasha(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	birth, err := parseTime(args[0], s.tz)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")

	c, err := s.engine.Dasha(birth)
	if err != nil {
		return err
	}

	report := dashaReport{Cycle: c}
	for i := range c.Periods {
		if all || i == 0 {
			report.Subs = append(report.Subs, c.Sub(i))
		}
	}

	p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Format, s.tz)
	return p.emit(report, func() error {
		y, m, d := jyotiglide.YearsMonthsDays(c.Balance)
		p.title("Moon %.4f° in %s", c.MoonLongitude, jyotiglide.UnitName(jyotiglide.LunarMansion, c.Mansion))
		p.note("balance of %s at birth: %dy %dm %dd", c.Active.Ruler, y, m, d)

		rows := make([][]string, 0, len(c.Periods))
		for _, per := range c.Periods {
			rows = append(rows, []string{per.Ruler.String(), per.Years.String() + "y", p.time(per.Start), p.time(per.End)})
		}
		if err := p.table(rows); err != nil {
			return err
		}

		for _, subs := range report.Subs {
			fmt.Fprintln(p.w)
			p.title("%s antardashas", subs[0].Ruler)
			rows := make([][]string, 0, len(subs))
			for _, sub := range subs {
				rows = append(rows, []string{"  " + sub.Ruler.String(), sub.Years.StringFixed(3) + "y", p.time(sub.Start), p.time(sub.End)})
			}
			if err := p.table(rows); err != nil {
				return err
			}
		}
		return nil
	})
}
