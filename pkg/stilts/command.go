package stilts

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-go-golems/stilts-matcher/pkg/match"
)

// Task is the STILTS task every generated command runs.
const Task = "stilts tmatchn"

const lineBreak = " \\\n\t"

// PathPolicy decides how file names appear in a command. match.Layout
// resolves them relative to its scripts directory.
type PathPolicy interface {
	InputPath(name string) string
	OutputPath(name string) string
	ScriptsDir() string
}

// GeneratedCommand is the tmatchn command text and the file it is persisted to.
type GeneratedCommand struct {
	Text string
	Path string
}

// BuildJoinCommand renders the N-way tmatchn command for cfg:
//
//	stilts tmatchn multimode=group nin=3 matcher=sky params=1 \
//		in1=../../a.csv ifmt1=csv suffix1='_a' values1='RA DEC' \
//		...
//		join1=match \
//		join2=match join3=match \
//		fixcols=dups out=../matches/matched.csv ofmt=csv progress=time
func BuildJoinCommand(cfg *match.Config, paths PathPolicy) GeneratedCommand {
	var b strings.Builder
	n := cfg.NIn()

	fmt.Fprintf(&b, "%s multimode=%s nin=%d matcher=%s params=%s",
		Task, cfg.MultiMode(), n, cfg.Matcher(), FormatRadius(cfg.Radius()))
	if cfg.MultiMode() == match.MultiModePairs && cfg.ReferenceIndex() > 0 {
		fmt.Fprintf(&b, " iref=%d", cfg.ReferenceIndex())
	}

	for _, c := range InputClauses(cfg, paths) {
		b.WriteString(lineBreak)
		b.WriteString(c.String())
	}

	b.WriteString(lineBreak)
	b.WriteString(joinBlock(n, cfg.JoinMode()))

	b.WriteString(lineBreak)
	fmt.Fprintf(&b, "fixcols=%s", cfg.FixCols())
	if cfg.OutputCommand() != "" {
		fmt.Fprintf(&b, " ocmd='%s'", cfg.OutputCommand())
	}
	fmt.Fprintf(&b, " out=%s ofmt=%s progress=%s", paths.OutputPath(cfg.OutputFile()), cfg.OutputFormat(), cfg.Progress())

	return GeneratedCommand{
		Text: b.String(),
		Path: filepath.Join(paths.ScriptsDir(), cfg.CommandFile()),
	}
}

// InputClause holds the per-input parameters of a tmatchn command, 1-indexed.
type InputClause struct {
	Index   int
	Input   string
	Path    string
	Format  match.Format
	Suffix  string // empty when suffixes are omitted
	Values  string
	Command string
}

func (c InputClause) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "in%d=%s ifmt%d=%s", c.Index, c.Path, c.Index, c.Format)
	if c.Suffix != "" {
		fmt.Fprintf(&b, " suffix%d='_%s'", c.Index, c.Suffix)
	}
	fmt.Fprintf(&b, " values%d='%s'", c.Index, c.Values)
	if c.Command != "" {
		fmt.Fprintf(&b, " icmd%d='%s'", c.Index, c.Command)
	}
	return b.String()
}

// InputClauses resolves the normalized per-input fields of cfg.
func InputClauses(cfg *match.Config, paths PathPolicy) []InputClause {
	inputs := cfg.Inputs()
	formats := cfg.InputFormats()
	values := cfg.Values()
	suffixes := cfg.Suffixes()

	out := make([]InputClause, len(inputs))
	for i, in := range inputs {
		c := InputClause{
			Index:   i + 1,
			Input:   in,
			Path:    paths.InputPath(in),
			Format:  formats[i],
			Values:  values[i],
			Command: cfg.InputCommand(),
		}
		if cfg.EmitSuffixes() {
			c.Suffix = suffixes[i]
		}
		out[i] = c
	}
	return out
}

// joinBlock emits join1..joinN, breaking the line after join<n/2>.
func joinBlock(n int, mode match.JoinMode) string {
	var b strings.Builder
	mid := n / 2
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "join%d=%s", i, mode)
		switch {
		case i == n:
		case i == mid:
			b.WriteString(lineBreak)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// FormatRadius prints r in its shortest exact decimal form, so 1 stays "1".
func FormatRadius(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
