package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/jyotiglide"
)

// Each case runs a different subcommand: cobra keeps flag values between
// Execute calls, and slice flags such as --kind would accumulate.
func TestCommands_JSON(t *testing.T) {
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	from := time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, out []byte)
	}{
		{
			name: "transitions",
			args: []string{"transitions", "--kind", "nakshatra", "--from", "2025-11-30", "--hours", "24"},
			check: func(t *testing.T, out []byte) {
				var r transitionsReport
				require.NoError(t, json.Unmarshal(out, &r))

				assert.True(t, r.Window.Start.Equal(from))
				assert.True(t, r.Window.End.Equal(from.Add(24*time.Hour)))
				require.Len(t, r.Kinds, 1)
				assert.Equal(t, jyotiglide.LunarMansion, r.Kinds[0].Kind)

				trs := r.Kinds[0].Transitions
				require.NotEmpty(t, trs)
				assert.False(t, trs[0].Start.After(from))
				assert.True(t, trs[len(trs)-1].End.Equal(r.Window.End))
				for i := 1; i < len(trs); i++ {
					assert.True(t, trs[i].Start.Equal(trs[i-1].End), "gap before interval %d", i)
					assert.Equal(t, jyotiglide.UnitName(jyotiglide.LunarMansion, trs[i].Index), trs[i].Name)
				}
			},
		},
		{
			name: "month",
			args: []string{"month", "2023-08-01", "--count", "2"},
			check: func(t *testing.T, out []byte) {
				var r monthReport
				require.NoError(t, json.Unmarshal(out, &r))
				require.Len(t, r.Months, 2)

				assert.Equal(t, "Shravana", r.Months[0].Name)
				assert.True(t, r.Months[0].IsIntercalary)
				assert.Equal(t, "Shravana", r.Months[1].Name)
				assert.False(t, r.Months[1].IsIntercalary)
				assert.True(t, r.Months[1].Anchor.Equal(r.Months[0].NextAnchor))
			},
		},
		{
			name: "classify",
			args: []string{"classify", "2025-11-30T06:00", "--kind", "tithi", "--kind", "rashi"},
			check: func(t *testing.T, out []byte) {
				var r classification
				require.NoError(t, json.Unmarshal(out, &r))
				require.Len(t, r.Units, 2)
				assert.Equal(t, jyotiglide.LunarDay, r.Units[0].Kind)
				assert.Equal(t, jyotiglide.ZodiacSign, r.Units[1].Kind)

				for _, u := range r.Units {
					assert.Equal(t, jyotiglide.UnitName(u.Kind, u.Index), u.Name)
					assert.False(t, u.Start.After(r.Time), "%s starts after the instant", u.Kind)
					assert.True(t, u.End.After(r.Time), "%s ends before the instant", u.Kind)
				}
			},
		},
		{
			name: "dasha",
			args: []string{"dasha", "1990-05-04T08:45"},
			check: func(t *testing.T, out []byte) {
				var r struct {
					Cycle struct {
						Periods []map[string]any `json:"periods"`
					} `json:"cycle"`
					Subs [][]map[string]any `json:"antardashas"`
				}
				require.NoError(t, json.Unmarshal(out, &r))
				assert.Len(t, r.Cycle.Periods, 9)
				require.Len(t, r.Subs, 1)
				assert.Len(t, r.Subs[0], 9)
				assert.Equal(t, r.Cycle.Periods[0]["ruler"], r.Subs[0][0]["ruler"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(append(tt.args, "--format", "json", "--tz", "UTC"))

			require.NoError(t, rootCmd.Execute())
			tt.check(t, out.Bytes())
		})
	}
}
