package cmds

import (
	"context"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"

	"github.com/go-go-golems/stilts-matcher/pkg/match"
	"github.com/go-go-golems/stilts-matcher/pkg/matchlayer"
	"github.com/go-go-golems/stilts-matcher/pkg/stilts"
)

type PlanCommand struct{ *gcmds.CommandDescription }

func NewPlanCommand() (*PlanCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"plan",
		gcmds.WithShort("Show the resolved per-input settings of a match job"),
		gcmds.WithLong("Resolves the match settings without touching the filesystem and emits one row per input with the path, format, suffix and columns that the command will use."),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	_, err = matchlayer.AddMatchLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &PlanCommand{cd}, nil
}

func (c *PlanCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	ms, err := matchlayer.GetMatchSettings(parsed)
	if err != nil {
		return err
	}
	cfg, err := match.Resolve(ms.Options())
	if err != nil {
		return err
	}

	ref := cfg.ReferenceIndex()
	for _, cl := range stilts.InputClauses(cfg, cfg.Layout()) {
		row := types.NewRow(
			types.MRP("index", cl.Index),
			types.MRP("input", cl.Input),
			types.MRP("path", cl.Path),
			types.MRP("ifmt", string(cl.Format)),
			types.MRP("suffix", cl.Suffix),
			types.MRP("values", cl.Values),
			types.MRP("join", cfg.JoinMode().String()),
			types.MRP("reference", ref == cl.Index),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}

	// trailing summary row for the job-wide settings
	row := types.NewRow(
		types.MRP("index", 0),
		types.MRP("input", ""),
		types.MRP("path", cfg.Layout().OutputPath(cfg.OutputFile())),
		types.MRP("ifmt", string(cfg.OutputFormat())),
		types.MRP("suffix", ""),
		types.MRP("values", ""),
		types.MRP("join", ""),
		types.MRP("reference", false),
		types.MRP("matcher", cfg.Matcher().String()),
		types.MRP("radius", stilts.FormatRadius(cfg.Radius())),
		types.MRP("multimode", cfg.MultiMode().String()),
		types.MRP("runner", cfg.Runner().String()),
		types.MRP("command_file", cfg.CommandFile()),
	)
	return gp.AddRow(ctx, row)
}

var _ gcmds.GlazeCommand = &PlanCommand{}
