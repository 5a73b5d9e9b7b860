package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/jyotiglide"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Measure search cost and sunrise accuracy over a run of days",
	Long: "profile enumerates every unit kind over --days days and reports how many\n" +
		"ephemeris evaluations that took. It also compares sunrise and sunset from the\n" +
		"configured provider against a reference: a CSV of date,rise,set rows in --tz\n" +
		"when --refcsv is given, otherwise the other built-in provider.",
	Args: cobra.NoArgs,
	RunE: runProfile,
}

func init() {
	f := profileCmd.Flags()
	f.String("from", "", "first local date (default today)")
	f.Int("days", 30, "number of days to profile")
	f.String("refcsv", "", "reference CSV (date,rise,set with HH:MM local times)")
	f.String("outcsv", "", "optional path to write per-day error rows")
	rootCmd.AddCommand(profileCmd)
}

type kindCost struct {
	Kind      jyotiglide.UnitKind `json:"kind" toml:"kind"`
	Intervals int                 `json:"intervals" toml:"intervals"`
}

type profileReport struct {
	From         time.Time     `json:"from" toml:"from"`
	Days         int           `json:"days" toml:"days"`
	Strategy     string        `json:"strategy" toml:"strategy"`
	Kinds        []kindCost    `json:"kinds" toml:"kinds"`
	Computations uint64        `json:"computations" toml:"computations"`
	Elapsed      time.Duration `json:"elapsed_ns" toml:"elapsed_ns"`
	Reference    string        `json:"reference" toml:"reference"`
	Rows         int           `json:"rows" toml:"rows"`
	Skipped      int           `json:"skipped" toml:"skipped"`
	RiseErr      stats         `json:"rise_err_min" toml:"rise_err_min"`
	SetErr       stats         `json:"set_err_min" toml:"set_err_min"`
	RiseSigned   stats         `json:"rise_signed_min" toml:"rise_signed_min"`
	SetSigned    stats         `json:"set_signed_min" toml:"set_signed_min"`
}

// refDay is one reference row.
type refDay struct {
	date      time.Time
	rise, set time.Time
}

func runProfile(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	fromS, _ := cmd.Flags().GetString("from")
	days, _ := cmd.Flags().GetInt("days")
	refCSV, _ := cmd.Flags().GetString("refcsv")
	outCSV, _ := cmd.Flags().GetString("outcsv")
	if days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	from, err := parseTime(fromS, s.tz)
	if err != nil {
		return err
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, s.tz)
	to := from.AddDate(0, 0, days)

	report := profileReport{From: from, Days: days, Strategy: s.cfg.Search.Strategy}

	// Search cost.
	began := time.Now()
	before := s.cache.Computations()
	for _, kind := range jyotiglide.AllKinds {
		trs, err := s.engine.Transitions(kind, from, to)
		if err != nil {
			return fmt.Errorf("%s transitions: %w", kind, err)
		}
		report.Kinds = append(report.Kinds, kindCost{Kind: kind, Intervals: len(trs)})
	}
	report.Elapsed = time.Since(began)
	report.Computations = s.cache.Computations() - before

	// Sunrise accuracy.
	ours := s.riseSet()
	refs, ref, err := referenceDays(s, refCSV, from, days)
	if err != nil {
		return err
	}
	report.Reference = ref

	var out *csv.Writer
	if outCSV != "" {
		f, err := os.Create(outCSV)
		if err != nil {
			return fmt.Errorf("failed to create outcsv %q: %w", outCSV, err)
		}
		defer f.Close()
		out = csv.NewWriter(f)
		defer out.Flush()

		if err := out.Write([]string{
			"date", "rise_err", "set_err", "rise_signed", "set_signed", "tithi", "nakshatra",
		}); err != nil {
			return fmt.Errorf("failed to write outcsv header: %w", err)
		}
	}

	loc := s.location()
	for _, rd := range refs {
		report.Rows++
		rs, err := ours.RiseSet(jyotiglide.Sun, loc, rd.date)
		if err != nil {
			s.logger.Warn("no sunrise, skipping", "date", rd.date.Format(time.DateOnly), "err", err)
			report.Skipped++
			continue
		}

		riseErr, setErr := diffMinutes(rs.Rise, rd.rise), diffMinutes(rs.Set, rd.set)
		riseSigned, setSigned := diffMinutesSigned(rs.Rise, rd.rise), diffMinutesSigned(rs.Set, rd.set)
		report.RiseErr.add(riseErr)
		report.SetErr.add(setErr)
		report.RiseSigned.add(riseSigned)
		report.SetSigned.add(setSigned)

		s.logger.Debug("day profiled", "date", rd.date.Format(time.DateOnly),
			"rise_err_min", riseErr, "set_err_min", setErr)

		if out == nil {
			continue
		}
		var tithi, nakshatra string
		if !rs.Rise.IsZero() {
			if i, err := s.engine.Classify(jyotiglide.LunarDay, rs.Rise); err == nil {
				tithi = jyotiglide.UnitName(jyotiglide.LunarDay, i)
			}
			if i, err := s.engine.Classify(jyotiglide.LunarMansion, rs.Rise); err == nil {
				nakshatra = jyotiglide.UnitName(jyotiglide.LunarMansion, i)
			}
		}
		if err := out.Write([]string{
			rd.date.Format(time.DateOnly),
			fmt.Sprintf("%.6f", riseErr),
			fmt.Sprintf("%.6f", setErr),
			fmt.Sprintf("%.6f", riseSigned),
			fmt.Sprintf("%.6f", setSigned),
			tithi,
			nakshatra,
		}); err != nil {
			s.logger.Warn("failed to write outcsv row", "err", err)
		}
	}

	p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Format, s.tz)
	return p.emit(report, func() error { return printProfile(p, report) })
}

// referenceDays loads refCSV, or computes the reference from the provider
// that is not configured.
func referenceDays(s *session, refCSV string, from time.Time, days int) ([]refDay, string, error) {
	if refCSV != "" {
		refs, err := readReferenceCSV(refCSV, s.tz, s.logger.Warn)
		return refs, refCSV, err
	}

	var other jyotiglide.RiseSetProvider = jyotiglide.NOAARiseSet{}
	name := "noaa"
	if s.cfg.RiseSet.Provider == "noaa" {
		other, name = jyotiglide.SolverRiseSet{}, "solver"
	}

	refs := make([]refDay, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		rs, err := other.RiseSet(jyotiglide.Sun, s.location(), date)
		if err != nil {
			rs = jyotiglide.RiseSet{}
		}
		refs = append(refs, refDay{date: date, rise: rs.Rise, set: rs.Set})
	}
	return refs, name, nil
}

// readReferenceCSV parses rows of date,rise,set. A leading header row is
// skipped; malformed rows are reported through warn and dropped.
func readReferenceCSV(path string, loc *time.Location, warn func(msg string, args ...any)) ([]refDay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open refcsv %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // allow variable, we validate

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file %q", path)
	}

	startIdx := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		startIdx = 1
	}

	var refs []refDay
	for i := startIdx; i < len(records); i++ {
		row := records[i]
		if len(row) < 3 {
			warn("expected date,rise,set", "row", i+1, "columns", len(row))
			continue
		}
		date, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(row[0]), loc)
		if err != nil {
			warn("invalid date", "row", i+1, "err", err)
			continue
		}
		rise, err := parseLocalTime(date, strings.TrimSpace(row[1]))
		if err != nil {
			warn("invalid rise time", "row", i+1, "err", err)
			continue
		}
		set, err := parseLocalTime(date, strings.TrimSpace(row[2]))
		if err != nil {
			warn("invalid set time", "row", i+1, "err", err)
			continue
		}
		refs = append(refs, refDay{date: date, rise: rise, set: set})
	}
	return refs, nil
}

// parseLocalTime reads HH:MM on date's calendar day in date's location.
// An empty field or "-" means the event did not happen.
func parseLocalTime(date time.Time, hhmm string) (time.Time, error) {
	if hhmm == "" || hhmm == "-" {
		return time.Time{}, nil
	}
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("want HH:MM, got %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return time.Time{}, fmt.Errorf("bad hour in %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("bad minute in %q", hhmm)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location()), nil
}

func printProfile(p *printer, r profileReport) error {
	p.title("=== jyotiglide profiler summary ===")
	intervals := 0
	rows := [][]string{{"KIND", "INTERVALS"}}
	for _, k := range r.Kinds {
		intervals += k.Intervals
		rows = append(rows, []string{k.Kind.String(), strconv.Itoa(k.Intervals)})
	}
	if err := p.table(rows); err != nil {
		return err
	}

	perInterval := math.NaN()
	if intervals > 0 {
		perInterval = float64(r.Computations) / float64(intervals)
	}
	fmt.Fprintf(p.w, "Days:         %d from %s (%s search)\n", r.Days, r.From.Format(time.DateOnly), r.Strategy)
	fmt.Fprintf(p.w, "Evaluations:  %d (%.1f per interval)\n", r.Computations, perInterval)
	fmt.Fprintf(p.w, "Elapsed:      %s\n", r.Elapsed.Round(time.Millisecond))

	fmt.Fprintln(p.w)
	p.title("Sunrise/sunset vs %s", r.Reference)
	fmt.Fprintf(p.w, "Rows:   %d (processed), %d skipped\n", r.Rows-r.Skipped, r.Skipped)
	if r.RiseErr.Count == 0 {
		p.note("No valid rows to compute stats.")
		return nil
	}

	for _, sec := range []struct {
		label string
		s     stats
	}{
		{"Rise error (minutes)", r.RiseErr},
		{"Set error (minutes)", r.SetErr},
		{"Rise signed error (minutes, ours - ref)", r.RiseSigned},
		{"Set signed error (minutes, ours - ref)", r.SetSigned},
	} {
		fmt.Fprintf(p.w, "\n%s:\n", sec.label)
		fmt.Fprintf(p.w, "  count: %d\n", sec.s.Count)
		fmt.Fprintf(p.w, "  min:   %.3f\n", sec.s.Min)
		fmt.Fprintf(p.w, "  max:   %.3f\n", sec.s.Max)
		fmt.Fprintf(p.w, "  avg:   %.3f\n", sec.s.avg())
	}
	return nil
}
