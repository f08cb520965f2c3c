package jobfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-go-golems/stilts-matcher/pkg/match"
)

// Load reads and decodes a job file.
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse job YAML: %w", err)
	}
	for i, job := range f.Jobs {
		if strings.TrimSpace(job.Name) == "" {
			f.Jobs[i].Name = fmt.Sprintf("job-%d", i+1)
		}
	}
	return &f, nil
}

// BasePathFor returns override when set, else the file's base_path, without
// a trailing slash.
func (f *File) BasePathFor(override string) string {
	basePath := f.BasePath
	if override != "" {
		basePath = override
	}
	if basePath == "/" {
		return basePath
	}
	return strings.TrimSuffix(basePath, "/")
}

// Options converts the job into match options. A relative input_dir is joined
// onto basePath; a job without input_dir uses basePath itself.
func (j Job) Options(basePath string) match.Options {
	inputDir := strings.TrimSpace(j.InputDir)
	switch {
	case inputDir == "":
		inputDir = basePath
	case basePath != "" && !filepath.IsAbs(inputDir):
		inputDir = filepath.Join(basePath, inputDir)
	}
	opts := match.Options{
		Inputs:          j.Inputs,
		InputDir:        inputDir,
		Radius:          j.Radius,
		OutputFile:      j.Output,
		OutputFormat:    match.Format(j.Ofmt),
		Suffixes:        j.Suffixes,
		OmitSuffixes:    j.OmitSuffixes,
		SuffixedValues:  j.SuffixedValues,
		Matcher:         match.Matcher(j.Matcher),
		MultiMode:       match.MultiMode(j.MultiMode),
		JoinMode:        match.JoinMode(j.Join),
		Runner:          match.Runner(j.Runner),
		Progress:        match.Progress(j.Progress),
		FixCols:         match.FixCols(j.FixCols),
		Reference:       j.Reference,
		InputCommand:    j.InputCommand,
		OutputCommand:   j.OutputCommand,
		CommandFileName: j.CommandFile,
		WorkDir:         j.WorkDir,
	}
	if !j.Values.IsZero() {
		opts.Values = broadcast(j.Values)
	}
	if !j.Ifmt.IsZero() {
		formats := make([]match.Format, len(j.Ifmt.Items))
		for i, f := range j.Ifmt.Items {
			formats[i] = match.Format(f)
		}
		if j.Ifmt.List {
			opts.InputFormats = match.PerInput(formats...)
		} else {
			opts.InputFormats = match.Single(formats[0])
		}
	}
	return opts
}

func broadcast(s StringOrList) match.Broadcast[string] {
	if s.List {
		return match.PerInput(s.Items...)
	}
	return match.Single(s.Items[0])
}
