package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/jyotiglide"
)

var transitionsCmd = &cobra.Command{
	Use:   "transitions",
	Short: "List unit intervals covering a time window",
	Example: "  jyotiglide transitions --kind nakshatra --from 2025-11-30 --to 2025-12-02\n" +
		"  jyotiglide transitions -k tithi -k karana --from 2025-11-30 --hours 36 -f json",
	Args: cobra.NoArgs,
	RunE: runTransitions,
}

func init() {
	f := transitionsCmd.Flags()
	f.StringSliceP("kind", "k", nil, "unit kinds to list (default all)")
	f.String("from", "", "window start (default now)")
	f.String("to", "", "window end (overrides --hours)")
	f.Float64("hours", 24, "window length in hours")
	rootCmd.AddCommand(transitionsCmd)
}

type transitionsReport struct {
	Window jyotiglide.Window             `json:"window" toml:"window"`
	Kinds  []jyotiglide.KindTransitions `json:"kinds" toml:"kinds"`
}

func runTransitions(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	kinds, err := kindsFlag(cmd)
	if err != nil {
		return err
	}

	fromS, _ := cmd.Flags().GetString("from")
	toS, _ := cmd.Flags().GetString("to")
	hours, _ := cmd.Flags().GetFloat64("hours")

	from, err := parseTime(fromS, s.tz)
	if err != nil {
		return err
	}
	to := from.Add(time.Duration(hours * float64(time.Hour)))
	if toS != "" {
		if to, err = parseTime(toS, s.tz); err != nil {
			return err
		}
	}
	if to.Before(from) {
		return fmt.Errorf("--to %s is before --from %s", to.Format(time.RFC3339), from.Format(time.RFC3339))
	}

	report := transitionsReport{Window: jyotiglide.Window{Start: from, End: to}}
	for _, kind := range kinds {
		trs, err := s.engine.Transitions(kind, from, to)
		if err != nil {
			return fmt.Errorf("%s transitions: %w", kind, err)
		}
		report.Kinds = append(report.Kinds, jyotiglide.KindTransitions{Kind: kind, Transitions: trs})
	}
	s.logger.Debug("transitions enumerated", "kinds", len(kinds), "computations", s.cache.Computations())

	p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Format, s.tz)
	return p.emit(report, func() error {
		p.note("%s → %s", p.time(from), p.time(to))
		return printKinds(p, report.Kinds)
	})
}

// printKinds renders one table per kind.
func printKinds(p *printer, kinds []jyotiglide.KindTransitions) error {
	for _, kt := range kinds {
		fmt.Fprintln(p.w)
		p.title("%s", kt.Kind)
		if len(kt.Transitions) == 0 {
			p.note("  no intervals")
			continue
		}
		rows := make([][]string, 0, len(kt.Transitions))
		for _, tr := range kt.Transitions {
			rows = append(rows, []string{
				"  " + strconv.Itoa(tr.Index), tr.Name, p.time(tr.Start), p.time(tr.End),
			})
		}
		if err := p.table(rows); err != nil {
			return err
		}
	}
	return nil
}
