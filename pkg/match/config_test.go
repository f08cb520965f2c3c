package match

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func baseOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Inputs:     []string{"a.csv", "b.csv", "c.csv"},
		InputDir:   t.TempDir(),
		Radius:     0.1,
		OutputFile: "test.csv",
	}
}

func TestNewInfersSuffixesAndFormats(t *testing.T) {
	cfg, err := New(baseOptions(t))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.NIn())
	assert.Equal(t, []string{"1", "2", "3"}, cfg.Suffixes())
	assert.Equal(t, FormatCSV, cfg.OutputFormat())
	assert.Equal(t, []Format{FormatCSV, FormatCSV, FormatCSV}, cfg.InputFormats())
	assert.Equal(t, []string{"RA DEC", "RA DEC", "RA DEC"}, cfg.Values())
	assert.Equal(t, "Nmatch_commands.txt", cfg.CommandFile())
	assert.Equal(t, MatcherSky, cfg.Matcher())
	assert.Equal(t, MultiModeGroup, cfg.MultiMode())
	assert.Equal(t, JoinMatch, cfg.JoinMode())
	assert.Equal(t, RunnerParallel, cfg.Runner())
	assert.Equal(t, ProgressTime, cfg.Progress())
	assert.Equal(t, FixColsDups, cfg.FixCols())
	assert.Equal(t, 0, cfg.ReferenceIndex())
}

func TestNewSuffixesForAnyN(t *testing.T) {
	for n := 2; n <= 12; n++ {
		opts := baseOptions(t)
		opts.Inputs = nil
		for i := 0; i < n; i++ {
			opts.Inputs = append(opts.Inputs, "dir/in"+strconv.Itoa(i)+".fits")
		}
		cfg, err := Resolve(opts)
		require.NoError(t, err)
		suffixes := cfg.Suffixes()
		require.Len(t, suffixes, n)
		for i, s := range suffixes {
			assert.Equal(t, strconv.Itoa(i+1), s)
		}
	}
}

func TestNewKeepsUserSuffixes(t *testing.T) {
	opts := baseOptions(t)
	opts.Suffixes = []string{"aa", "bb", "cc"}
	cfg, err := New(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "bb", "cc"}, cfg.Suffixes())
}

func TestNewSuffixLengthMismatch(t *testing.T) {
	for _, suffixes := range [][]string{{"aa", "bb"}, {"aa", "bb", "cc", "dd"}} {
		opts := baseOptions(t)
		opts.Suffixes = suffixes
		_, err := New(opts)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLengthMismatch)
		assert.Contains(t, err.Error(), "length of suffix list")
	}
}

func TestNewRejectsMissingEntries(t *testing.T) {
	cases := []struct {
		name     string
		inputs   []string
		suffixes []string
		msg      string
	}{
		{"nan input", []string{"a.csv", "NaN", "c.csv"}, []string{"aa", "bb", "dd"}, "input file list"},
		{"empty input", []string{"a.csv", "", "c.csv"}, []string{"aa", "bb", "dd"}, "input file list"},
		{"blank input", []string{"a.csv", "  ", "c.csv"}, nil, "input file list"},
		{"nan suffix", []string{"a.csv", "b.csv", "c.csv"}, []string{"nan", "bb", "dd"}, "user-provided suffix list"},
		{"empty suffix", []string{"a.csv", "b.csv", "c.csv"}, []string{"aa", "", ""}, "user-provided suffix list"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := baseOptions(t)
			opts.Inputs = tc.inputs
			opts.Suffixes = tc.suffixes
			_, err := New(opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrEmptyEntry)
			assert.Contains(t, err.Error(), "empty strings or NaN entries encountered in "+tc.msg)
		})
	}
}

func TestNewRejectsDuplicateSuffixes(t *testing.T) {
	opts := baseOptions(t)
	opts.Suffixes = []string{"a", "b", "a"}
	_, err := Resolve(opts)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestNewPreconditions(t *testing.T) {
	opts := baseOptions(t)
	opts.Inputs = []string{"a.csv"}
	_, err := Resolve(opts)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	opts = baseOptions(t)
	opts.Radius = 0
	_, err = Resolve(opts)
	assert.ErrorIs(t, err, ErrInvalidValue)

	opts = baseOptions(t)
	opts.Radius = -1
	_, err = Resolve(opts)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestNewBroadcastLengths(t *testing.T) {
	opts := baseOptions(t)
	opts.Values = PerInput("RA DEC", "RAJ2000 DEJ2000")
	_, err := Resolve(opts)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	opts = baseOptions(t)
	opts.InputFormats = PerInput(FormatCSV, FormatFITS)
	_, err = Resolve(opts)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	opts = baseOptions(t)
	opts.InputFormats = PerInput(FormatFITS)
	cfg, err := Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, []Format{FormatFITS, FormatFITS, FormatFITS}, cfg.InputFormats())

	opts = baseOptions(t)
	opts.Values = PerInput("RAJ2000 DEJ2000", "RAJ2000 DEJ2000", "RA DE")
	cfg, err = Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"RAJ2000 DEJ2000", "RAJ2000 DEJ2000", "RA DE"}, cfg.Values())
}

func TestNewRejectsEmptyPerInputLists(t *testing.T) {
	opts := baseOptions(t)
	opts.Values = PerInput[string]()
	_, err := Resolve(opts)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.ErrorIs(t, err, ErrConfig)

	opts = baseOptions(t)
	opts.InputFormats = PerInput[Format]()
	_, err = Resolve(opts)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	var unset Broadcast[string]
	assert.False(t, unset.IsSet())
	assert.True(t, PerInput[string]().IsSet())
}

func TestNewRejectsBadFormats(t *testing.T) {
	opts := baseOptions(t)
	opts.Inputs = []string{"a.csv", "b.txt", "c.csv"}
	_, err := Resolve(opts)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "'txt'")

	opts = baseOptions(t)
	opts.Inputs = []string{"a.csv", "b", "c.csv"}
	_, err = Resolve(opts)
	assert.ErrorIs(t, err, ErrMissingExtension)

	opts = baseOptions(t)
	opts.OutputFormat = "parquet"
	_, err = Resolve(opts)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	opts = baseOptions(t)
	opts.InputFormats = Single(Format("xml"))
	_, err = Resolve(opts)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNewExplicitFormatsSkipInference(t *testing.T) {
	opts := baseOptions(t)
	opts.Inputs = []string{"a", "b", "c"}
	opts.InputFormats = Single(FormatVOTable)
	opts.OutputFile = "result"
	opts.OutputFormat = FormatFITS
	cfg, err := Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, FormatFITS, cfg.OutputFormat())
	assert.Equal(t, FormatVOTable, cfg.InputFormats()[2])
}

func TestNewCreatesLayoutIdempotently(t *testing.T) {
	opts := baseOptions(t)
	cfg, err := New(opts)
	require.NoError(t, err)

	layout := cfg.Layout()
	for _, d := range []string{layout.Root, layout.Scripts, layout.Matches} {
		fi, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, fi.IsDir())
	}
	assert.Equal(t, filepath.Join(opts.InputDir, DefaultWorkDir, "scripts"), layout.Scripts)

	_, err = New(opts)
	require.NoError(t, err)
}

func TestNewPropagatesDirectoryErrors(t *testing.T) {
	opts := baseOptions(t)
	opts.InputDir = filepath.Join(opts.InputDir, "does", "not", "exist")
	_, err := New(opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrConfig)
}

func TestResolveLeavesFilesystemAlone(t *testing.T) {
	opts := baseOptions(t)
	_, err := Resolve(opts)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(opts.InputDir, DefaultWorkDir))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRejectedConfigCreatesNothing(t *testing.T) {
	opts := baseOptions(t)
	opts.Suffixes = []string{"only-one"}
	_, err := New(opts)
	require.Error(t, err)
	_, err = os.Stat(filepath.Join(opts.InputDir, DefaultWorkDir))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReferenceIndex(t *testing.T) {
	opts := baseOptions(t)
	opts.Reference = "b.csv"
	opts.MultiMode = MultiModePairs
	cfg, err := Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.ReferenceIndex())

	opts.MultiMode = MultiModeGroup
	cfg, err = Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.ReferenceIndex())

	opts.Reference = "z.csv"
	_, err = Resolve(opts)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestCommandFileName(t *testing.T) {
	opts := baseOptions(t)
	opts.CommandFileName = "N_match_commands_t2.txt"
	cfg, err := Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, "N_match_commands_t2.txt", cfg.CommandFile())

	opts.CommandFileName = "orion"
	cfg, err = Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, "orion.txt", cfg.CommandFile())
}

func TestConfigAccessorsReturnCopies(t *testing.T) {
	cfg, err := Resolve(baseOptions(t))
	require.NoError(t, err)
	s := cfg.Suffixes()
	s[0] = "mutated"
	in := cfg.Inputs()
	in[0] = "mutated"
	assert.Equal(t, "1", cfg.Suffixes()[0])
	assert.Equal(t, "a.csv", cfg.Inputs()[0])
}

func TestOmitSuffixesWarnsAboutIgnoredSuffixes(t *testing.T) {
	buf := captureLog(t)
	opts := baseOptions(t)
	opts.Suffixes = []string{"2MASS", "WISE", "Gaia"}
	opts.OmitSuffixes = true
	cfg, err := Resolve(opts)
	require.NoError(t, err)
	assert.False(t, cfg.EmitSuffixes())
	assert.Contains(t, buf.String(), "omit-suffixes")

	buf.Reset()
	opts.SuffixedValues = true
	cfg, err = Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, "RA_WISE DEC_WISE", cfg.Values()[1])
	assert.NotContains(t, buf.String(), "omit-suffixes")
}

func TestWorkDirMustStayBelowInputDir(t *testing.T) {
	for _, wd := range []string{"/tmp/work", "..", "../elsewhere", "a/../../b"} {
		opts := baseOptions(t)
		opts.WorkDir = wd
		_, err := Resolve(opts)
		assert.ErrorIs(t, err, ErrInvalidValue, wd)
	}

	opts := baseOptions(t)
	opts.WorkDir = "runs/orion"
	cfg, err := Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, "../../../a.csv", cfg.Layout().InputPath("a.csv"))
}
