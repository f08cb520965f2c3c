package cmds

import (
	"context"
	"errors"
	"fmt"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"

	"github.com/go-go-golems/stilts-matcher/pkg/jobfile"
	"github.com/go-go-golems/stilts-matcher/pkg/match"
)

type ValidateCommand struct{ *gcmds.CommandDescription }

type ValidateSettings struct {
	Config   string `glazed.parameter:"config"`
	BasePath string `glazed.parameter:"base-path"`
	Strict   bool   `glazed.parameter:"strict"`
}

func NewValidateCommand() (*ValidateCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"validate",
		gcmds.WithShort("Check every job of a YAML file without writing anything"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("config", parameters.ParameterTypeString, parameters.WithRequired(true), parameters.WithHelp("Job YAML file"), parameters.WithShortFlag("f")),
			parameters.NewParameterDefinition("base-path", parameters.ParameterTypeString, parameters.WithHelp("Directory prepended to relative job input directories")),
			parameters.NewParameterDefinition("strict", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Return an error when any job is invalid")),
		),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	return &ValidateCommand{cd}, nil
}

func (c *ValidateCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	s := &ValidateSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	f, err := jobfile.Load(s.Config)
	if err != nil {
		return err
	}
	basePath := f.BasePathFor(s.BasePath)

	invalid := 0
	for _, job := range f.Jobs {
		var row types.Row
		cfg, err := match.Resolve(job.Options(basePath))
		if err != nil {
			invalid++
			row = types.NewRow(
				types.MRP("job", job.Name),
				types.MRP("status", "error"),
				types.MRP("field", errorField(err)),
				types.MRP("error", err.Error()),
			)
		} else {
			row = types.NewRow(
				types.MRP("job", job.Name),
				types.MRP("status", "ok"),
				types.MRP("inputs", cfg.NIn()),
				types.MRP("command_file", cfg.CommandFile()),
				types.MRP("scripts_dir", cfg.Layout().Scripts),
			)
		}
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}
	if s.Strict && invalid > 0 {
		return fmt.Errorf("%d of %d jobs are invalid", invalid, len(f.Jobs))
	}
	return nil
}

func errorField(err error) string {
	var ce *match.ConfigError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}

var _ gcmds.GlazeCommand = &ValidateCommand{}
