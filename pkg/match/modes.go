package match

import "strings"

// Matcher selects the STILTS match engine.
type Matcher string

const (
	MatcherSky    Matcher = "sky"
	MatcherSkyErr Matcher = "skyerr"
	MatcherExact  Matcher = "exact"
)

// MultiMode is the tmatchn multimode parameter.
type MultiMode string

const (
	MultiModePairs MultiMode = "pairs"
	MultiModeGroup MultiMode = "group"
)

// JoinMode decides which rows of each input survive the join.
type JoinMode string

const (
	JoinDefault JoinMode = "default"
	JoinMatch   JoinMode = "match"
	JoinNoMatch JoinMode = "nomatch"
	JoinAlways  JoinMode = "always"
)

type Runner string

const (
	RunnerParallel    Runner = "parallel"
	RunnerParallelAll Runner = "parallel-all"
	RunnerSequential  Runner = "sequential"
	RunnerClassic     Runner = "classic"
	RunnerPartest     Runner = "partest"
)

type Progress string

const (
	ProgressNone    Progress = "none"
	ProgressLog     Progress = "log"
	ProgressTime    Progress = "time"
	ProgressProfile Progress = "profile"
)

// FixCols governs which output columns get the input suffix appended.
type FixCols string

const (
	FixColsNone FixCols = "none"
	FixColsDups FixCols = "dups"
	FixColsAll  FixCols = "all"
)

// Choice lists, also used for glazed choice parameters.
var (
	MatcherChoices   = []string{string(MatcherSky), string(MatcherSkyErr), string(MatcherExact)}
	MultiModeChoices = []string{string(MultiModePairs), string(MultiModeGroup)}
	JoinModeChoices  = []string{string(JoinDefault), string(JoinMatch), string(JoinNoMatch), string(JoinAlways)}
	RunnerChoices    = []string{string(RunnerParallel), string(RunnerParallelAll), string(RunnerSequential), string(RunnerClassic), string(RunnerPartest)}
	ProgressChoices  = []string{string(ProgressNone), string(ProgressLog), string(ProgressTime), string(ProgressProfile)}
	FixColsChoices   = []string{string(FixColsNone), string(FixColsDups), string(FixColsAll)}
)

// pickChoice returns def for an empty value and rejects anything outside choices.
func pickChoice(field, value, def string, choices []string) (string, error) {
	if value == "" {
		return def, nil
	}
	for _, c := range choices {
		if value == c {
			return value, nil
		}
	}
	return "", configErrorf(field, ErrInvalidValue, "%q is not one of [%s]", value, strings.Join(choices, ", "))
}

func ParseMatcher(s string) (Matcher, error) {
	v, err := pickChoice("matcher", s, string(MatcherSky), MatcherChoices)
	return Matcher(v), err
}

func ParseMultiMode(s string) (MultiMode, error) {
	v, err := pickChoice("multimode", s, string(MultiModeGroup), MultiModeChoices)
	return MultiMode(v), err
}

func ParseJoinMode(s string) (JoinMode, error) {
	v, err := pickChoice("join", s, string(JoinMatch), JoinModeChoices)
	return JoinMode(v), err
}

func ParseRunner(s string) (Runner, error) {
	v, err := pickChoice("runner", s, string(RunnerParallel), RunnerChoices)
	return Runner(v), err
}

func ParseProgress(s string) (Progress, error) {
	v, err := pickChoice("progress", s, string(ProgressTime), ProgressChoices)
	return Progress(v), err
}

func ParseFixCols(s string) (FixCols, error) {
	v, err := pickChoice("fixcols", s, string(FixColsDups), FixColsChoices)
	return FixCols(v), err
}

// String forms are what tmatchn expects on its command line.
func (m Matcher) String() string   { return string(m) }
func (m MultiMode) String() string { return string(m) }
func (j JoinMode) String() string  { return string(j) }
func (r Runner) String() string    { return string(r) }
func (p Progress) String() string  { return string(p) }
func (f FixCols) String() string   { return string(f) }
