package batch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/stilts-matcher/pkg/jobfile"
	"github.com/go-go-golems/stilts-matcher/pkg/match"
	"github.com/go-go-golems/stilts-matcher/pkg/output"
	"github.com/go-go-golems/stilts-matcher/pkg/stilts"
)

type Processor struct {
	Out io.Writer // progress output; defaults to os.Stdout
	Err io.Writer // per-job failures; defaults to os.Stderr
}

type ProcessorOptions struct {
	BasePath        string
	ContinueOnError bool
	// DryRun builds and prints commands without writing anything.
	DryRun  bool
	Execute bool
	Exec    stilts.ExecuteOptions
}

// JobResult records what happened to one job.
type JobResult struct {
	Name    string
	Command stilts.GeneratedCommand
	Exec    *stilts.ExecResult
	Err     error
}

func (p *Processor) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

func (p *Processor) errOut() io.Writer {
	if p.Err == nil {
		return os.Stderr
	}
	return p.Err
}

// Process runs the jobs of f one after another.
func (p *Processor) Process(ctx context.Context, f *jobfile.File, opts ProcessorOptions) ([]JobResult, error) {
	return p.processSequential(ctx, f.Jobs, f.BasePathFor(opts.BasePath), opts)
}

func (p *Processor) processSequential(ctx context.Context, jobs []jobfile.Job, basePath string, opts ProcessorOptions) ([]JobResult, error) {
	var errors []error
	results := make([]JobResult, 0, len(jobs))
	scriptDirs := map[string]string{}

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		fmt.Fprint(p.out(), output.JobHeader(i+1, len(jobs), job.Name, job.Description))
		log.Debug().Str("job", job.Name).Int("inputs", len(job.Inputs)).Msg("batch job start")

		res := p.processJob(ctx, job, basePath, opts, scriptDirs)
		results = append(results, res)
		if res.Err != nil {
			fmt.Fprintf(p.errOut(), "Job '%s' failed: %s\n", job.Name, output.ShortError(res.Err))
			errors = append(errors, res.Err)
			if !opts.ContinueOnError {
				return results, fmt.Errorf("job '%s' failed: %w", job.Name, res.Err)
			}
			continue
		}
		fmt.Fprintf(p.out(), "✓ Job '%s' completed successfully\n", job.Name)
	}
	if len(errors) > 0 {
		fmt.Fprintf(p.out(), "\nCompleted with %d errors out of %d jobs\n", len(errors), len(jobs))
		return results, fmt.Errorf("batch processing completed with %d errors", len(errors))
	}
	fmt.Fprintf(p.out(), "\n✓ All %d jobs completed successfully\n", len(jobs))
	return results, nil
}

func (p *Processor) processJob(ctx context.Context, job jobfile.Job, basePath string, opts ProcessorOptions, scriptDirs map[string]string) JobResult {
	res := JobResult{Name: job.Name}
	mopts := job.Options(basePath)

	var cfg *match.Config
	var err error
	if opts.DryRun {
		cfg, err = match.Resolve(mopts)
	} else {
		cfg, err = match.New(mopts)
	}
	if err != nil {
		res.Err = err
		return res
	}

	// the runner executes every command file of a scripts directory, so jobs
	// sharing one also run each other's commands
	scripts := cfg.Layout().Scripts
	if other, ok := scriptDirs[scripts]; ok {
		log.Warn().Str("job", job.Name).Str("other", other).Str("dir", scripts).Msg("jobs share a scripts directory")
		fmt.Fprintln(p.out(), output.Warnf("job '%s' shares %s with job '%s'", job.Name, scripts, other))
	} else {
		scriptDirs[scripts] = job.Name
	}

	if opts.DryRun {
		res.Command = stilts.BuildJoinCommand(cfg, cfg.Layout())
		fmt.Fprintln(p.out(), output.Notef("# %s", res.Command.Path))
		fmt.Fprintln(p.out(), res.Command.Text)
		return res
	}

	run, err := stilts.PerformMatch(ctx, cfg, stilts.RunOptions{
		Execute: opts.Exec,
		DryRun:  !opts.Execute,
	})
	if run != nil {
		res.Command = run.Command
		res.Exec = run.Exec
	}
	if err != nil {
		res.Err = err
		return res
	}
	fmt.Fprintln(p.out(), output.Notef("  command written to %s", res.Command.Path))
	if res.Exec != nil {
		fmt.Fprint(p.out(), output.Indent(res.Exec.Stdout, "  | "))
		fmt.Fprint(p.out(), output.Indent(res.Exec.Stderr, "  ! "))
		fmt.Fprintln(p.out(), output.ExitStatus(res.Exec.ExitCode))
	}
	return res
}
