package cmds

import (
	"fmt"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/stilts-matcher/pkg/match"
	"github.com/go-go-golems/stilts-matcher/pkg/matchlayer"
	"github.com/go-go-golems/stilts-matcher/pkg/stilts"
)

func TestCommandsConstruct(t *testing.T) {
	build, err := NewBuildCommand()
	require.NoError(t, err)
	assert.Equal(t, "build", build.Name)
	_, ok := build.Description().Layers.Get(matchlayer.MatchLayerSlug)
	assert.True(t, ok)

	run, err := NewRunCommand()
	require.NoError(t, err)
	_, ok = run.Description().Layers.Get(matchlayer.MatchLayerSlug)
	assert.True(t, ok)

	plan, err := NewPlanCommand()
	require.NoError(t, err)
	_, ok = plan.Description().Layers.Get(matchlayer.MatchLayerSlug)
	assert.True(t, ok)

	batch, err := NewBatchCommand()
	require.NoError(t, err)
	_, ok = batch.Description().Layers.Get(matchlayer.MatchLayerSlug)
	assert.False(t, ok)

	_, err = NewValidateCommand()
	require.NoError(t, err)
}

func TestResolveShell(t *testing.T) {
	t.Cleanup(viper.Reset)

	assert.Equal(t, stilts.DefaultShell, resolveShell(""))

	viper.Set("run.shell", "bash")
	assert.Equal(t, "bash", resolveShell(""))
	assert.Equal(t, "sh", resolveShell("sh"))
}

func TestErrorField(t *testing.T) {
	_, err := match.Resolve(match.Options{Inputs: []string{"a.csv"}, Radius: 1})
	require.Error(t, err)
	assert.Equal(t, "inputs", errorField(err))

	assert.Equal(t, "", errorField(fmt.Errorf("plain")))
}
