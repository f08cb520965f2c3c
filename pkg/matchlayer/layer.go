package matchlayer

import (
	"fmt"
	"strings"

	glzcms "github.com/go-go-golems/glazed/pkg/cmds"
	glzlayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/stilts-matcher/pkg/match"
)

const MatchLayerSlug = "match"

type MatchSettings struct {
	Inputs         []string `glazed.parameter:"inputs"`
	InputDir       string   `glazed.parameter:"input-dir"`
	Radius         float64  `glazed.parameter:"radius"`
	Values         []string `glazed.parameter:"values"`
	Ifmt           []string `glazed.parameter:"ifmt"`
	Output         string   `glazed.parameter:"output"`
	Ofmt           string   `glazed.parameter:"ofmt"`
	Suffixes       []string `glazed.parameter:"suffixes"`
	OmitSuffixes   bool     `glazed.parameter:"omit-suffixes"`
	SuffixedValues bool     `glazed.parameter:"suffixed-values"`
	Matcher        string   `glazed.parameter:"matcher"`
	MultiMode      string   `glazed.parameter:"multimode"`
	Join           string   `glazed.parameter:"join"`
	Runner         string   `glazed.parameter:"runner"`
	Progress       string   `glazed.parameter:"progress"`
	FixCols        string   `glazed.parameter:"fixcols"`
	Reference      string   `glazed.parameter:"reference"`
	InputCommand   string   `glazed.parameter:"icmd"`
	OutputCommand  string   `glazed.parameter:"ocmd"`
	CommandFile    string   `glazed.parameter:"command-file"`
	WorkDir        string   `glazed.parameter:"work-dir"`
	ParamsFile     string   `glazed.parameter:"params-file"`
}

// NewMatchLayer defines a reusable parameter layer describing one match job.
func NewMatchLayer() (glzlayers.ParameterLayer, error) {
	return glzlayers.NewParameterLayer(
		MatchLayerSlug,
		"STILTS match settings",
		glzlayers.WithParameterDefinitions(
			parameters.NewParameterDefinition("inputs", parameters.ParameterTypeStringList, parameters.WithShortFlag("i"), parameters.WithHelp("Input catalog files, relative to --input-dir")),
			parameters.NewParameterDefinition("input-dir", parameters.ParameterTypeString, parameters.WithDefault("."), parameters.WithHelp("Directory containing the input files")),
			parameters.NewParameterDefinition("radius", parameters.ParameterTypeFloat, parameters.WithShortFlag("r"), parameters.WithDefault(0.0), parameters.WithHelp("Match radius in arcseconds")),
			parameters.NewParameterDefinition("values", parameters.ParameterTypeStringList, parameters.WithDefault([]string{match.DefaultValues}), parameters.WithHelp("Match columns; one entry shared by all inputs or one per input")),
			parameters.NewParameterDefinition("ifmt", parameters.ParameterTypeStringList, parameters.WithHelp("Input formats; one shared or one per input (default: inferred from extension)")),
			parameters.NewParameterDefinition("output", parameters.ParameterTypeString, parameters.WithShortFlag("o"), parameters.WithDefault(match.DefaultOutputFile), parameters.WithHelp("Output file name, written to the matches directory")),
			parameters.NewParameterDefinition("ofmt", parameters.ParameterTypeString, parameters.WithHelp("Output format (default: inferred from --output)")),
			parameters.NewParameterDefinition("suffixes", parameters.ParameterTypeStringList, parameters.WithHelp("Column suffix per input (default: 1..N)")),
			parameters.NewParameterDefinition("omit-suffixes", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Do not emit suffixN clauses")),
			parameters.NewParameterDefinition("suffixed-values", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Append _<suffix> to shared match columns for each input")),
			parameters.NewParameterDefinition("matcher", parameters.ParameterTypeChoice, parameters.WithChoices(match.MatcherChoices...), parameters.WithDefault(string(match.MatcherSky)), parameters.WithHelp("Match engine")),
			parameters.NewParameterDefinition("multimode", parameters.ParameterTypeChoice, parameters.WithChoices(match.MultiModeChoices...), parameters.WithDefault(string(match.MultiModeGroup)), parameters.WithHelp("Multi-table match mode")),
			parameters.NewParameterDefinition("join", parameters.ParameterTypeChoice, parameters.WithChoices(match.JoinModeChoices...), parameters.WithDefault(string(match.JoinMatch)), parameters.WithHelp("Row retention for every input")),
			parameters.NewParameterDefinition("runner", parameters.ParameterTypeChoice, parameters.WithChoices(match.RunnerChoices...), parameters.WithDefault(string(match.RunnerParallel)), parameters.WithHelp("STILTS execution mode")),
			parameters.NewParameterDefinition("progress", parameters.ParameterTypeChoice, parameters.WithChoices(match.ProgressChoices...), parameters.WithDefault(string(match.ProgressTime)), parameters.WithHelp("Progress reporting")),
			parameters.NewParameterDefinition("fixcols", parameters.ParameterTypeChoice, parameters.WithChoices(match.FixColsChoices...), parameters.WithDefault(string(match.FixColsDups)), parameters.WithHelp("Which output columns get suffixes")),
			parameters.NewParameterDefinition("reference", parameters.ParameterTypeString, parameters.WithHelp("Reference input for multimode=pairs")),
			parameters.NewParameterDefinition("icmd", parameters.ParameterTypeString, parameters.WithHelp("Processing command applied to every input table")),
			parameters.NewParameterDefinition("ocmd", parameters.ParameterTypeString, parameters.WithHelp("Processing command applied to the output table")),
			parameters.NewParameterDefinition("command-file", parameters.ParameterTypeString, parameters.WithDefault(match.DefaultCommandFileName), parameters.WithHelp("Command file name, .txt is appended")),
			parameters.NewParameterDefinition("work-dir", parameters.ParameterTypeString, parameters.WithDefault(match.DefaultWorkDir), parameters.WithHelp("Working directory created under --input-dir")),
			parameters.NewParameterDefinition("params-file", parameters.ParameterTypeString, parameters.WithHelp("YAML file with match parameters; flags take precedence")),
		),
	)
}

// AddMatchLayerToCommand attaches the layer to a Glazed command description.
func AddMatchLayerToCommand(c glzcms.Command) (glzcms.Command, error) {
	l, err := NewMatchLayer()
	if err != nil {
		return nil, err
	}
	c.Description().Layers.Set(MatchLayerSlug, l)
	return c, nil
}

// GetMatchSettings returns parsed match settings from the ParsedLayers.
func GetMatchSettings(parsed *glzlayers.ParsedLayers) (*MatchSettings, error) {
	var s MatchSettings
	if err := parsed.InitializeStruct(MatchLayerSlug, &s); err != nil {
		return nil, fmt.Errorf("failed to parse match settings: %w", err)
	}
	return &s, nil
}

// Options converts the settings into match options. A single --values or
// --ifmt entry is shared by every input.
func (s *MatchSettings) Options() match.Options {
	opts := match.Options{
		Inputs:          s.Inputs,
		InputDir:        s.InputDir,
		Radius:          s.Radius,
		OutputFile:      s.Output,
		OutputFormat:    match.Format(strings.TrimSpace(s.Ofmt)),
		Suffixes:        s.Suffixes,
		OmitSuffixes:    s.OmitSuffixes,
		SuffixedValues:  s.SuffixedValues,
		Matcher:         match.Matcher(s.Matcher),
		MultiMode:       match.MultiMode(s.MultiMode),
		JoinMode:        match.JoinMode(s.Join),
		Runner:          match.Runner(s.Runner),
		Progress:        match.Progress(s.Progress),
		FixCols:         match.FixCols(s.FixCols),
		Reference:       s.Reference,
		InputCommand:    s.InputCommand,
		OutputCommand:   s.OutputCommand,
		CommandFileName: s.CommandFile,
		WorkDir:         s.WorkDir,
	}
	switch len(s.Values) {
	case 0:
	case 1:
		opts.Values = match.Single(s.Values[0])
	default:
		opts.Values = match.PerInput(s.Values...)
	}
	if len(s.Ifmt) > 0 {
		formats := make([]match.Format, len(s.Ifmt))
		for i, f := range s.Ifmt {
			formats[i] = match.Format(f)
		}
		opts.InputFormats = match.PerInput(formats...)
	}
	return opts
}
