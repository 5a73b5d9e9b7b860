package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/jyotiglide"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [time]",
	Short: "Show the unit of each kind in effect at an instant",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().StringSliceP("kind", "k", nil, "unit kinds to show (default all)")
	rootCmd.AddCommand(classifyCmd)
}

// unitAt is one kind's unit around an instant.
type unitAt struct {
	Kind  jyotiglide.UnitKind `json:"kind" toml:"kind"`
	Index int                 `json:"index" toml:"index"`
	Name  string              `json:"name" toml:"name"`
	Start time.Time           `json:"start,omitzero" toml:"start,omitempty"`
	End   time.Time           `json:"end,omitzero" toml:"end,omitempty"`
}

type classification struct {
	Time  time.Time `json:"time" toml:"time"`
	Units []unitAt  `json:"units" toml:"units"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	at, err := parseTime(optionalArg(args), s.tz)
	if err != nil {
		return err
	}
	kinds, err := kindsFlag(cmd)
	if err != nil {
		return err
	}

	out := classification{Time: at}
	for _, kind := range kinds {
		idx, err := s.engine.Classify(kind, at)
		if err != nil {
			return err
		}
		u := unitAt{Kind: kind, Index: idx, Name: jyotiglide.UnitName(kind, idx)}

		if start, ok, err := s.engine.UnitStart(kind, at); err != nil {
			return err
		} else if ok {
			u.Start = start
		}
		if end, ok, err := s.engine.NextBoundary(kind, at); err != nil {
			return err
		} else if ok {
			u.End = end
		}
		out.Units = append(out.Units, u)
	}

	p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Format, s.tz)
	return p.emit(out, func() error {
		p.title("%s", p.time(at))
		rows := [][]string{{"KIND", "#", "NAME", "START", "END"}}
		for _, u := range out.Units {
			rows = append(rows, []string{
				u.Kind.String(), strconv.Itoa(u.Index), u.Name, p.time(u.Start), p.time(u.End),
			})
		}
		return p.table(rows)
	})
}

// kindsFlag parses --kind, defaulting to every kind.
func kindsFlag(cmd *cobra.Command) ([]jyotiglide.UnitKind, error) {
	names, _ := cmd.Flags().GetStringSlice("kind")
	if len(names) == 0 {
		return jyotiglide.AllKinds, nil
	}
	kinds := make([]jyotiglide.UnitKind, 0, len(names))
	for _, name := range names {
		k, err := jyotiglide.ParseUnitKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
