package main

import (
	"fmt"
	"os"

	"github.com/go-go-golems/glazed/pkg/cli"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/middlewares"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	appglazed "github.com/go-go-golems/stilts-matcher/pkg/glazed"
	"github.com/go-go-golems/stilts-matcher/pkg/match"
	"github.com/go-go-golems/stilts-matcher/pkg/matchlayer"
	"github.com/go-go-golems/stilts-matcher/pkg/stilts"
)

// Prints the command a params file describes without touching the filesystem.
//
//	go run ./cmd/examples/params-file-example orion.yaml
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: params-file-example <params.yaml>")
		os.Exit(2)
	}

	cs, err := cli.NewCommandSettingsLayer()
	if err != nil {
		panic(err)
	}
	matchLayer, err := matchlayer.NewMatchLayer()
	if err != nil {
		panic(err)
	}
	pls := glayers.NewParameterLayers(glayers.WithLayers(cs, matchLayer))
	parsed := glayers.NewParsedLayers()

	mw := []middlewares.Middleware{
		appglazed.UpdateFromParamsFile(os.Args[1], parameters.WithParseStepSource("params-file")),
		middlewares.SetFromDefaults(parameters.WithParseStepSource("defaults")),
	}
	if err := middlewares.ExecuteMiddlewares(pls, parsed, mw...); err != nil {
		panic(err)
	}

	ms, err := matchlayer.GetMatchSettings(parsed)
	if err != nil {
		panic(err)
	}
	cfg, err := match.Resolve(ms.Options())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cmd := stilts.BuildJoinCommand(cfg, cfg.Layout())
	fmt.Printf("# %s\n%s\n", cmd.Path, cmd.Text)
}
