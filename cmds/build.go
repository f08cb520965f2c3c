package cmds

import (
	"context"
	"fmt"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/stilts-matcher/pkg/match"
	"github.com/go-go-golems/stilts-matcher/pkg/matchlayer"
	"github.com/go-go-golems/stilts-matcher/pkg/stilts"
)

type BuildCommand struct{ *gcmds.CommandDescription }

type BuildSettings struct {
	Print  bool `glazed.parameter:"print"`
	DryRun bool `glazed.parameter:"dry-run"`
}

func NewBuildCommand() (*BuildCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"build",
		gcmds.WithShort("Write the tmatchn command for one match job"),
		gcmds.WithLong("Validates the match settings, creates the working directory and writes an executable command file into its scripts directory."),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("print", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Also print the command to stdout")),
			parameters.NewParameterDefinition("dry-run", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Print the command without creating directories or files")),
		),
		gcmds.WithLayersList(layer),
	)
	_, err = matchlayer.AddMatchLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &BuildCommand{cd}, nil
}

func (c *BuildCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	s := &BuildSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	ms, err := matchlayer.GetMatchSettings(parsed)
	if err != nil {
		return err
	}

	if s.DryRun {
		cfg, err := match.Resolve(ms.Options())
		if err != nil {
			return err
		}
		fmt.Println(stilts.BuildJoinCommand(cfg, cfg.Layout()).Text)
		return nil
	}

	cfg, err := match.New(ms.Options())
	if err != nil {
		return err
	}
	cmd := stilts.BuildJoinCommand(cfg, cfg.Layout())
	if err := stilts.Persist(cmd); err != nil {
		return err
	}
	fmt.Printf("Command written to %s\n", cmd.Path)
	if s.Print {
		fmt.Println(cmd.Text)
	}
	return nil
}

var _ gcmds.BareCommand = &BuildCommand{}
