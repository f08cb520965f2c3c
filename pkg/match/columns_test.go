package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSuffixedColumns(t *testing.T) {
	opts := baseOptions(t)
	opts.Values = Single("RA DEC")
	opts.Suffixes = []string{"a", "b", "c"}
	cfg, err := Resolve(opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"RA_a DEC_a", "RA_b DEC_b", "RA_c DEC_c"}, cfg.DeriveSuffixedColumns())
	// the config itself is unchanged
	assert.Equal(t, []string{"RA DEC", "RA DEC", "RA DEC"}, cfg.Values())
}

func TestDeriveSuffixedColumnsCollapsesWhitespace(t *testing.T) {
	opts := baseOptions(t)
	opts.Values = Single("RA\t DEC  PMRA")
	cfg, err := Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"RA_1 DEC_1 PMRA_1", "RA_2 DEC_2 PMRA_2", "RA_3 DEC_3 PMRA_3"}, cfg.DeriveSuffixedColumns())
}

func TestDeriveSuffixedColumnsNoOp(t *testing.T) {
	opts := baseOptions(t)
	opts.Inputs = []string{"a.csv", "b.csv"}
	cfg, err := Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"RA DEC", "RA DEC"}, cfg.DeriveSuffixedColumns())

	opts = baseOptions(t)
	opts.Values = PerInput("RA DEC", "ra dec", "x y")
	cfg, err = Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"RA DEC", "ra dec", "x y"}, cfg.DeriveSuffixedColumns())
}

func TestSuffixedValuesAppliedAtConstruction(t *testing.T) {
	opts := baseOptions(t)
	opts.Suffixes = []string{"a", "b", "c"}
	opts.SuffixedValues = true
	cfg, err := Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"RA_a DEC_a", "RA_b DEC_b", "RA_c DEC_c"}, cfg.Values())
	// already per-input, so a second derivation changes nothing
	assert.Equal(t, cfg.Values(), cfg.DeriveSuffixedColumns())
}
