package cmds

import (
	"context"
	"fmt"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/spf13/viper"

	"github.com/go-go-golems/stilts-matcher/pkg/match"
	"github.com/go-go-golems/stilts-matcher/pkg/matchlayer"
	"github.com/go-go-golems/stilts-matcher/pkg/output"
	"github.com/go-go-golems/stilts-matcher/pkg/stilts"
)

type RunCommand struct{ *gcmds.CommandDescription }

type RunSettings struct {
	Shell      string `glazed.parameter:"shell"`
	Quiet      bool   `glazed.parameter:"quiet"`
	FailOnExit bool   `glazed.parameter:"fail-on-exit"`
	Print      bool   `glazed.parameter:"print"`
	NoColor    bool   `glazed.parameter:"no-color"`
}

func NewRunCommand() (*RunCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"run",
		gcmds.WithShort("Build, persist and execute one match job"),
		gcmds.WithLong("Writes the tmatchn command like build does, then runs every executable command file of the scripts directory through a shell. A non-zero exit code is reported; use --fail-on-exit to turn it into an error."),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("shell", parameters.ParameterTypeString, parameters.WithHelp("Shell used to run the scripts (default: run.shell from config, else zsh)")),
			parameters.NewParameterDefinition("quiet", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Do not capture or print the shell output")),
			parameters.NewParameterDefinition("fail-on-exit", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Return an error when the shell exits non-zero")),
			parameters.NewParameterDefinition("print", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Print the command before running it")),
			parameters.NewParameterDefinition("no-color", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Disable colored output")),
		),
		gcmds.WithLayersList(layer),
	)
	_, err = matchlayer.AddMatchLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &RunCommand{cd}, nil
}

func (c *RunCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	s := &RunSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	ms, err := matchlayer.GetMatchSettings(parsed)
	if err != nil {
		return err
	}
	output.InitConsole(s.NoColor)

	cfg, err := match.New(ms.Options())
	if err != nil {
		return err
	}

	res, err := stilts.PerformMatch(ctx, cfg, stilts.RunOptions{
		Execute: stilts.ExecuteOptions{
			Shell:   resolveShell(s.Shell),
			Capture: !s.Quiet,
		},
	})
	if res != nil {
		fmt.Println(output.Notef("Command written to %s", res.Command.Path))
		if s.Print {
			fmt.Println(res.Command.Text)
		}
	}
	if err != nil {
		return err
	}

	if !s.Quiet {
		fmt.Print(output.Indent(res.Exec.Stdout, "  | "))
		fmt.Print(output.Indent(res.Exec.Stderr, "  ! "))
	}
	fmt.Println(output.ExitStatus(res.Exec.ExitCode))
	if s.FailOnExit && res.Exec.ExitCode != 0 {
		return fmt.Errorf("match run exited with code %d", res.Exec.ExitCode)
	}
	return nil
}

// resolveShell prefers the flag, then the run.shell config key.
func resolveShell(flag string) string {
	if flag != "" {
		return flag
	}
	if sh := viper.GetString("run.shell"); sh != "" {
		return sh
	}
	return stilts.DefaultShell
}

var _ gcmds.BareCommand = &RunCommand{}
