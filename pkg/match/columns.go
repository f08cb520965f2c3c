package match

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// DeriveSuffixedColumns expands a shared column spec into one spec per input
// by appending "_<suffix>" to every column, e.g. "RA DEC" with suffixes a, b, c
// becomes "RA_a DEC_a", "RA_b DEC_b", "RA_c DEC_c". This fits inputs that are
// themselves suffixed outputs of an earlier match.
//
// With two or fewer inputs, or when columns were given per input, the
// per-input columns are returned as they are.
func (c *Config) DeriveSuffixedColumns() []string {
	if len(c.inputs) <= 2 || !c.sharedValues {
		return c.Values()
	}
	columns := strings.Fields(c.values[0])
	out := make([]string, len(c.suffixes))
	for i, sfx := range c.suffixes {
		parts := make([]string, len(columns))
		for j, col := range columns {
			parts[j] = col + "_" + sfx
		}
		out[i] = strings.Join(parts, " ")
	}
	log.Debug().Strs("values", out).Msg("derived suffixed match columns")
	return out
}
