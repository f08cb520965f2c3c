package match

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	DefaultValues          = "RA DEC"
	DefaultOutputFile      = "matched.csv"
	DefaultCommandFileName = "Nmatch_commands"
	DefaultWorkDir         = "CatMatcher_cwd"

	// CommandFileExt is the extension the runner script looks for.
	CommandFileExt = ".txt"
)

// Options are the raw, user-supplied fields of a match job.
// Zero values select the documented defaults.
type Options struct {
	Inputs   []string
	InputDir string
	Radius   float64 // arcseconds

	Values       Broadcast[string] // whitespace-separated column names; default "RA DEC"
	InputFormats Broadcast[Format] // inferred from the input names when unset

	OutputFile   string
	OutputFormat Format // inferred from OutputFile when empty

	Suffixes       []string // default "1".."N"
	OmitSuffixes   bool
	SuffixedValues bool // expand shared Values with the suffixes, see DeriveSuffixedColumns

	Matcher   Matcher
	MultiMode MultiMode
	JoinMode  JoinMode
	Runner    Runner
	Progress  Progress
	FixCols   FixCols

	// Reference names the input all others are matched against in pairs mode.
	Reference string

	InputCommand  string
	OutputCommand string

	CommandFileName string // without extension
	WorkDir         string
}

// Config is a validated match job. It is immutable once built.
type Config struct {
	inputs       []string
	radius       float64
	values       []string
	sharedValues bool
	inputFormats []Format
	outputFile   string
	outputFormat Format
	suffixes     []string
	omitSuffixes bool

	matcher   Matcher
	multiMode MultiMode
	joinMode  JoinMode
	runner    Runner
	progress  Progress
	fixCols   FixCols

	referenceIndex int

	inputCommand  string
	outputCommand string

	commandFile string
	layout      Layout
}

// New validates opts and establishes the job's directory layout.
// Directories are only created once every field has been accepted.
func New(opts Options) (*Config, error) {
	cfg, err := Resolve(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.layout.Ensure(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve validates and normalizes opts without touching the filesystem.
func Resolve(opts Options) (*Config, error) {
	n := len(opts.Inputs)
	if n < 2 {
		return nil, configErrorf("inputs", ErrLengthMismatch, "at least two input files are required, got %d", n)
	}
	if i := firstMissing(opts.Inputs); i >= 0 {
		return nil, configErrorf("inputs", ErrEmptyEntry,
			"empty strings or NaN entries encountered in input file list (entry %d)", i+1)
	}
	if strings.TrimSpace(opts.InputDir) == "" {
		return nil, configErrorf("input-dir", ErrInvalidValue, "input directory is required")
	}
	if math.IsNaN(opts.Radius) || math.IsInf(opts.Radius, 0) || opts.Radius <= 0 {
		return nil, configErrorf("radius", ErrInvalidValue, "match radius must be positive, got %v", opts.Radius)
	}

	cfg := &Config{
		inputs:       append([]string(nil), opts.Inputs...),
		radius:       opts.Radius,
		omitSuffixes: opts.OmitSuffixes,
	}
	if opts.OmitSuffixes && len(opts.Suffixes) > 0 && !opts.SuffixedValues {
		log.Warn().Strs("suffixes", opts.Suffixes).
			Msg("suffixes are not emitted with omit-suffixes, ignoring")
	}

	suffixes, err := resolveSuffixes(opts.Suffixes, n)
	if err != nil {
		return nil, err
	}
	cfg.suffixes = suffixes

	if err := cfg.resolveFormats(opts); err != nil {
		return nil, err
	}

	values := opts.Values
	if !values.IsSet() {
		values = Single(DefaultValues)
	}
	cfg.sharedValues = values.IsShared()
	if cfg.values, err = values.Expand("values", n); err != nil {
		return nil, err
	}
	for i, v := range cfg.values {
		if strings.TrimSpace(v) == "" {
			return nil, configErrorf("values", ErrEmptyEntry, "match columns for input %d are empty", i+1)
		}
	}
	if opts.SuffixedValues {
		cfg.values = cfg.DeriveSuffixedColumns()
		cfg.sharedValues = false
	}

	if err := cfg.resolveModes(opts); err != nil {
		return nil, err
	}

	if opts.Reference != "" {
		idx := indexOf(cfg.inputs, opts.Reference)
		if idx < 0 {
			return nil, configErrorf("reference", ErrInvalidValue, "reference %q is not one of the input files", opts.Reference)
		}
		if cfg.multiMode == MultiModePairs {
			cfg.referenceIndex = idx + 1
		} else {
			log.Warn().Str("reference", opts.Reference).Str("multimode", string(cfg.multiMode)).
				Msg("reference table is only used with multimode=pairs, ignoring")
		}
	}

	cfg.inputCommand = opts.InputCommand
	cfg.outputCommand = opts.OutputCommand

	stem := opts.CommandFileName
	if stem == "" {
		stem = DefaultCommandFileName
	}
	cfg.commandFile = strings.TrimSuffix(stem, CommandFileExt) + CommandFileExt

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = DefaultWorkDir
	}
	if !validWorkDir(workDir) {
		return nil, configErrorf("work-dir", ErrInvalidValue, "working directory %q must be relative to the input directory", workDir)
	}
	cfg.layout = NewLayout(opts.InputDir, workDir)

	log.Debug().Int("nin", n).Strs("suffixes", cfg.suffixes).Str("root", cfg.layout.Root).Msg("resolved match configuration")
	return cfg, nil
}

func resolveSuffixes(given []string, n int) ([]string, error) {
	if len(given) == 0 {
		out := make([]string, n)
		for i := range out {
			out[i] = strconv.Itoa(i + 1)
		}
		return out, nil
	}
	if len(given) != n {
		return nil, configErrorf("suffixes", ErrLengthMismatch,
			"length of suffix list (%d) does not match number of input files (%d)", len(given), n)
	}
	if i := firstMissing(given); i >= 0 {
		return nil, configErrorf("suffixes", ErrEmptyEntry,
			"empty strings or NaN entries encountered in user-provided suffix list (entry %d)", i+1)
	}
	seen := make(map[string]struct{}, n)
	for _, s := range given {
		if _, ok := seen[s]; ok {
			return nil, configErrorf("suffixes", ErrInvalidValue, "duplicate suffix %q", s)
		}
		seen[s] = struct{}{}
	}
	return append([]string(nil), given...), nil
}

func (c *Config) resolveFormats(opts Options) error {
	n := len(c.inputs)
	if opts.InputFormats.IsSet() {
		formats, err := opts.InputFormats.Expand("ifmt", n)
		if err != nil {
			return err
		}
		for _, f := range formats {
			if _, err := ParseFormat(string(f)); err != nil {
				return err
			}
		}
		c.inputFormats = formats
	} else {
		c.inputFormats = make([]Format, n)
		for i, in := range c.inputs {
			f, err := InferFormat(in)
			if err != nil {
				return err
			}
			c.inputFormats[i] = f
		}
	}

	c.outputFile = opts.OutputFile
	if c.outputFile == "" {
		c.outputFile = DefaultOutputFile
	}
	if opts.OutputFormat != "" {
		f, err := ParseFormat(string(opts.OutputFormat))
		if err != nil {
			return err
		}
		c.outputFormat = f
		return nil
	}
	f, err := InferFormat(c.outputFile)
	if err != nil {
		return err
	}
	c.outputFormat = f
	return nil
}

func (c *Config) resolveModes(opts Options) error {
	var err error
	if c.matcher, err = ParseMatcher(string(opts.Matcher)); err != nil {
		return err
	}
	if c.multiMode, err = ParseMultiMode(string(opts.MultiMode)); err != nil {
		return err
	}
	if c.joinMode, err = ParseJoinMode(string(opts.JoinMode)); err != nil {
		return err
	}
	if c.runner, err = ParseRunner(string(opts.Runner)); err != nil {
		return err
	}
	if c.progress, err = ParseProgress(string(opts.Progress)); err != nil {
		return err
	}
	if c.fixCols, err = ParseFixCols(string(opts.FixCols)); err != nil {
		return err
	}
	return nil
}

// firstMissing returns the index of the first empty or NaN-like entry, or -1.
func firstMissing(entries []string) int {
	for i, e := range entries {
		t := strings.TrimSpace(e)
		if t == "" || strings.EqualFold(t, "nan") {
			return i
		}
	}
	return -1
}

func indexOf(items []string, s string) int {
	for i, it := range items {
		if it == s {
			return i
		}
	}
	return -1
}

func (c *Config) Inputs() []string { return append([]string(nil), c.inputs...) }
func (c *Config) NIn() int         { return len(c.inputs) }
func (c *Config) Radius() float64  { return c.radius }

// Values returns the match columns of each input.
func (c *Config) Values() []string { return append([]string(nil), c.values...) }

func (c *Config) InputFormats() []Format { return append([]Format(nil), c.inputFormats...) }
func (c *Config) OutputFile() string     { return c.outputFile }
func (c *Config) OutputFormat() Format   { return c.outputFormat }

// Suffixes returns the per-input suffixes, without the leading underscore.
func (c *Config) Suffixes() []string { return append([]string(nil), c.suffixes...) }

// EmitSuffixes reports whether suffix clauses belong in the command.
func (c *Config) EmitSuffixes() bool { return !c.omitSuffixes }

func (c *Config) Matcher() Matcher     { return c.matcher }
func (c *Config) MultiMode() MultiMode { return c.multiMode }
func (c *Config) JoinMode() JoinMode   { return c.joinMode }
func (c *Config) Runner() Runner       { return c.runner }
func (c *Config) Progress() Progress   { return c.progress }
func (c *Config) FixCols() FixCols     { return c.fixCols }

// ReferenceIndex is the 1-based iref in pairs mode, or 0 when there is none.
func (c *Config) ReferenceIndex() int { return c.referenceIndex }

func (c *Config) InputCommand() string  { return c.inputCommand }
func (c *Config) OutputCommand() string { return c.outputCommand }

// CommandFile is the command file name, including CommandFileExt.
func (c *Config) CommandFile() string { return c.commandFile }

func (c *Config) Layout() Layout { return c.layout }
