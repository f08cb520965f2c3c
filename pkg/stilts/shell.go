package stilts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/stilts-matcher/pkg/match"
)

const (
	// RunnerScriptName is the runner script written next to the command files.
	RunnerScriptName = "stilts_execute.sh"
	DefaultShell     = "zsh"
)

var ErrInterpreterNotFound = errors.New("shell interpreter not found")

// RunnerScript returns a script that runs every executable command file in
// its working directory, in glob order, and reports the ones it skips.
func RunnerScript(shell string) string {
	if shell == "" {
		shell = DefaultShell
	}
	name := filepath.Base(shell)

	var b strings.Builder
	fmt.Fprintf(&b, "#!/usr/bin/env %s\n\n", name)
	switch name {
	case "zsh":
		b.WriteString("setopt NULL_GLOB\n")
		b.WriteString("[ -f ~/.zshrc ] && source ~/.zshrc\n\n")
	case "bash":
		b.WriteString("[ -f ~/.bashrc ] && source ~/.bashrc\n\n")
	}
	b.WriteString("echo \"Current directory: $(pwd)\"\n\n")
	fmt.Fprintf(&b, "for file in *%s; do\n", match.CommandFileExt)
	b.WriteString("    [ -f \"$file\" ] || continue\n")
	b.WriteString("    if [ -x \"$file\" ]; then\n")
	b.WriteString("        ./\"$file\"\n")
	b.WriteString("    else\n")
	b.WriteString("        echo \"$file is not executable\"\n")
	b.WriteString("    fi\n")
	b.WriteString("done\n")
	return b.String()
}

// WriteRunnerScript writes content (or the default runner for shell) to dir/name
// and makes it executable.
func WriteRunnerScript(dir, name, content string) (string, error) {
	if name == "" {
		name = RunnerScriptName
	}
	path := filepath.Join(dir, name)
	if err := writeExecutable(path, content); err != nil {
		return "", err
	}
	log.Debug().Str("path", path).Msg("runner script written")
	return path, nil
}

type ExecuteOptions struct {
	Shell      string // default zsh
	ScriptName string // default stilts_execute.sh
	Script     string // default RunnerScript(Shell)
	Capture    bool
}

// ExecResult is what the runner shell reported. Stdout and Stderr are only
// filled when output was captured.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Execute writes the runner script into dir and runs it there with the chosen
// shell, blocking until the shell exits. A non-zero exit code is returned in the
// result, not as an error. There is no timeout besides ctx.
func Execute(ctx context.Context, dir string, opts ExecuteOptions) (*ExecResult, error) {
	shell := opts.Shell
	if shell == "" {
		shell = DefaultShell
	}
	script := opts.Script
	if script == "" {
		script = RunnerScript(shell)
	}
	scriptPath, err := WriteRunnerScript(dir, opts.ScriptName, script)
	if err != nil {
		return nil, err
	}

	if _, err := exec.LookPath(shell); err != nil {
		return &ExecResult{ExitCode: -1}, fmt.Errorf("%w: %s: %v", ErrInterpreterNotFound, shell, err)
	}

	cmd := exec.CommandContext(ctx, shell, filepath.Base(scriptPath))
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	if opts.Capture {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	log.Info().Str("shell", shell).Str("dir", dir).Msg("executing runner script")
	res := &ExecResult{}
	err = cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		res.ExitCode = -1
		return res, fmt.Errorf("failed to run %s: %w", scriptPath, err)
	}
	if ctx.Err() != nil {
		return res, fmt.Errorf("runner script interrupted: %w", ctx.Err())
	}
	log.Info().Int("exit_code", res.ExitCode).Msg("runner script finished")
	return res, nil
}
