package stilts

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/stilts-matcher/pkg/match"
)

type RunOptions struct {
	Execute ExecuteOptions
	// DryRun stops after the command file has been written.
	DryRun bool
}

type RunResult struct {
	Command GeneratedCommand
	// Exec is nil for dry runs.
	Exec *ExecResult
}

// PerformMatch builds the join command for cfg, persists it into the scripts
// directory and runs the scripts directory through the shell.
func PerformMatch(ctx context.Context, cfg *match.Config, opts RunOptions) (*RunResult, error) {
	layout := cfg.Layout()
	cmd := BuildJoinCommand(cfg, layout)
	log.Debug().Str("path", cmd.Path).Int("nin", cfg.NIn()).Msg("built join command")

	if err := Persist(cmd); err != nil {
		return nil, fmt.Errorf("failed to persist command: %w", err)
	}
	res := &RunResult{Command: cmd}
	if opts.DryRun {
		return res, nil
	}

	execRes, err := Execute(ctx, layout.Scripts, opts.Execute)
	res.Exec = execRes
	if err != nil {
		return res, err
	}
	if execRes.ExitCode != 0 {
		log.Warn().Int("exit_code", execRes.ExitCode).Str("dir", layout.Scripts).Msg("match run exited with non-zero status")
	}
	return res, nil
}
