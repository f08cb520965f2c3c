package match

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutRelativePaths(t *testing.T) {
	l := NewLayout("Data/example_files/", "CatMatcher_cwd")
	assert.Equal(t, "Data/example_files/CatMatcher_cwd/scripts", filepath.ToSlash(l.Scripts))
	assert.Equal(t, "../../a.csv", l.InputPath("a.csv"))
	assert.Equal(t, "../../sub/b.fits", l.InputPath("sub/b.fits"))
	assert.Equal(t, "../matches/matched.csv", l.OutputPath("matched.csv"))
}

func TestLayoutCurrentDirectory(t *testing.T) {
	l := NewLayout(".", "work")
	assert.Equal(t, "../../a.csv", l.InputPath("a.csv"))
	assert.Equal(t, "../matches/out.fits", l.OutputPath("out.fits"))
}

func TestLayoutAbsoluteNamesPassThrough(t *testing.T) {
	l := NewLayout("data", "work")
	assert.Equal(t, "/abs/a.csv", l.InputPath("/abs/a.csv"))
	assert.Equal(t, "/abs/out.csv", l.OutputPath("/abs/out.csv"))
}

func TestLayoutNestedWorkDir(t *testing.T) {
	l := NewLayout("data", "runs/orion")
	assert.Equal(t, "../../../a.csv", l.InputPath("a.csv"))
	assert.Equal(t, "../matches/out.csv", l.OutputPath("out.csv"))
	assert.Equal(t, "data/runs/orion/matches", filepath.ToSlash(l.Matches))
}
