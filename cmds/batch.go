package cmds

import (
	"context"
	"fmt"
	"strings"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/stilts-matcher/pkg/batch"
	"github.com/go-go-golems/stilts-matcher/pkg/cmdutil"
	"github.com/go-go-golems/stilts-matcher/pkg/jobfile"
	"github.com/go-go-golems/stilts-matcher/pkg/output"
	"github.com/go-go-golems/stilts-matcher/pkg/stilts"
)

type BatchCommand struct{ *gcmds.CommandDescription }

type BatchSettings struct {
	Config          string   `glazed.parameter:"config"`
	BasePath        string   `glazed.parameter:"base-path"`
	Jobs            []string `glazed.parameter:"jobs"`
	ContinueOnError bool     `glazed.parameter:"continue-on-error"`
	DryRun          bool     `glazed.parameter:"dry-run"`
	Execute         bool     `glazed.parameter:"execute"`
	Shell           string   `glazed.parameter:"shell"`
	Quiet           bool     `glazed.parameter:"quiet"`
	NoColor         bool     `glazed.parameter:"no-color"`
}

func NewBatchCommand() (*BatchCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}

	cd := gcmds.NewCommandDescription(
		"batch",
		gcmds.WithShort("Build (and optionally run) several match jobs from a YAML file"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("config", parameters.ParameterTypeString, parameters.WithRequired(true), parameters.WithHelp("Job YAML file"), parameters.WithShortFlag("f")),
			parameters.NewParameterDefinition("base-path", parameters.ParameterTypeString, parameters.WithHelp("Directory prepended to relative job input directories")),
			parameters.NewParameterDefinition("jobs", parameters.ParameterTypeStringList, parameters.WithHelp("Only process jobs with these names; default all")),
			parameters.NewParameterDefinition("continue-on-error", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Continue processing on errors")),
			parameters.NewParameterDefinition("dry-run", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Print commands without creating directories or files")),
			parameters.NewParameterDefinition("execute", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Run each job's scripts directory after writing its command")),
			parameters.NewParameterDefinition("shell", parameters.ParameterTypeString, parameters.WithHelp("Shell used with --execute (default: run.shell from config, else zsh)")),
			parameters.NewParameterDefinition("quiet", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Do not capture or print the shell output")),
			parameters.NewParameterDefinition("no-color", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Disable colored output")),
		),
		gcmds.WithLayersList(layer),
	)
	return &BatchCommand{cd}, nil
}

func (c *BatchCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	s := &BatchSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	output.InitConsole(s.NoColor)
	if s.DryRun && s.Execute {
		return fmt.Errorf("--dry-run and --execute are mutually exclusive")
	}

	f, err := jobfile.Load(s.Config)
	if err != nil {
		return err
	}
	if len(s.Jobs) > 0 {
		selected, unknown := cmdutil.SelectByName(f.Jobs, s.Jobs, func(j jobfile.Job) string { return j.Name })
		if len(unknown) > 0 {
			log.Warn().Strs("jobs", unknown).Msg("unknown job names")
			fmt.Println(output.Warnf("no job named %s in %s", strings.Join(unknown, ", "), s.Config))
		}
		f.Jobs = selected
	}

	proc := batch.Processor{}
	_, err = proc.Process(ctx, f, batch.ProcessorOptions{
		BasePath:        s.BasePath,
		ContinueOnError: s.ContinueOnError,
		DryRun:          s.DryRun,
		Execute:         s.Execute,
		Exec: stilts.ExecuteOptions{
			Shell:   resolveShell(s.Shell),
			Capture: !s.Quiet,
		},
	})
	return err
}

var _ gcmds.BareCommand = &BatchCommand{}
