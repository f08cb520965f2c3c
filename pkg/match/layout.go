package match

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	ScriptsDirName = "scripts"
	MatchesDirName = "matches"
)

// Layout is the working-directory structure of one match job:
//
//	<Base>/<workdir>/scripts/   command files and the runner script
//	<Base>/<workdir>/matches/   join results written by STILTS
//
// Paths emitted into commands are relative to Scripts, because the runner
// executes command files from there.
type Layout struct {
	Base    string
	Root    string
	Scripts string
	Matches string

	depth int // path elements between Base and Scripts
}

// NewLayout places the job root workDir under base. workDir must be a
// relative path that stays below base; Resolve enforces that.
func NewLayout(base, workDir string) Layout {
	base = filepath.Clean(filepath.FromSlash(base))
	workDir = filepath.Clean(filepath.FromSlash(workDir))
	root := filepath.Join(base, workDir)
	depth := 1
	if workDir != "." {
		depth += len(strings.Split(workDir, string(filepath.Separator)))
	}
	return Layout{
		Base:    base,
		Root:    root,
		Scripts: filepath.Join(root, ScriptsDirName),
		Matches: filepath.Join(root, MatchesDirName),
		depth:   depth,
	}
}

// validWorkDir reports whether workDir is relative and does not climb out of
// its base directory.
func validWorkDir(workDir string) bool {
	if filepath.IsAbs(workDir) || strings.HasPrefix(workDir, "/") {
		return false
	}
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(workDir)))
	return clean != ".." && !strings.HasPrefix(clean, "../")
}

// Ensure creates Root, Scripts and Matches. Existing directories are left alone.
func (l Layout) Ensure() error {
	for _, d := range []string{l.Root, l.Scripts, l.Matches} {
		if err := os.Mkdir(d, 0o755); err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
		log.Debug().Str("dir", d).Msg("created match directory")
	}
	return nil
}

// ScriptsDir is where command files are persisted.
func (l Layout) ScriptsDir() string { return l.Scripts }

// InputPath resolves an input file name relative to the scripts directory.
// Absolute names are returned unchanged.
func (l Layout) InputPath(name string) string {
	if isAbs(name) {
		return filepath.ToSlash(name)
	}
	up := strings.Repeat("../", l.depth)
	return up + filepath.ToSlash(filepath.Clean(filepath.FromSlash(name)))
}

// OutputPath resolves the result file name relative to the scripts directory.
// Absolute names are returned unchanged.
func (l Layout) OutputPath(name string) string {
	if isAbs(name) {
		return filepath.ToSlash(name)
	}
	return "../" + MatchesDirName + "/" + filepath.ToSlash(filepath.Clean(filepath.FromSlash(name)))
}

func isAbs(name string) bool {
	return filepath.IsAbs(name) || strings.HasPrefix(name, "/")
}
