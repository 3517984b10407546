package recommendations

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseOptions reads raw min_score and limit values over the given defaults.
// Invalid values fall back to the defaults and are reported as warnings.
func ParseOptions(minScore, limit string, defaults Options) (Options, []string) {
	opts := defaults.withDefaults()
	var warnings []string

	if raw := strings.TrimSpace(minScore); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			warnings = append(warnings, fmt.Sprintf("ignored invalid min_score %q; expected a fraction between 0 and 1", raw))
		} else {
			opts.MinScore = v
		}
	}
	if raw := strings.TrimSpace(limit); raw != "" {
		v, err := strconv.Atoi(raw)
		switch {
		case err != nil || v <= 0:
			warnings = append(warnings, fmt.Sprintf("ignored invalid limit %q", raw))
		case v > MaxLimit:
			warnings = append(warnings, fmt.Sprintf("limit capped at %d", MaxLimit))
			opts.Limit = MaxLimit
		default:
			opts.Limit = v
		}
	}
	return opts, warnings
}

func (o Options) withDefaults() Options {
	if o.MinScore < 0 || o.MinScore > 1 {
		o.MinScore = DefaultMinScore
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	return o
}
