package build

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlan_EveryShaderEveryStage(t *testing.T) {
	t.Parallel()

	jobs := Plan("shaders", []string{"tri", "sky", "tri"})

	require.Len(t, jobs, 6)
	require.Equal(t, Job{
		Shader:   "tri",
		Stage:    StageFragment,
		Source:   filepath.Join("shaders", "tri.frag"),
		Artifact: filepath.Join("shaders", "tri.frag.spv"),
	}, jobs[0])
	require.Equal(t, StageVertex, jobs[1].Stage)
	require.Equal(t, filepath.Join("shaders", "sky.vert.spv"), jobs[3].Artifact)
	require.Equal(t, jobs[0], jobs[4])
}

func TestOutcome_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{"nothing", Outcome{}, ""},
		{"compiled only", Outcome{Completed: []string{"a", "b"}}, "2 compiled"},
		{"skipped and compiled", Outcome{Completed: []string{"a"}, Skipped: []string{"b"}}, "1 skipped, 1 compiled"},
		{"all categories", Outcome{
			Completed: []string{"a"},
			Skipped:   []string{"b", "c"},
			Failed:    []Failure{{Source: "d"}},
		}, "1 failed, 2 skipped, 1 compiled"},
		{"failed only", Outcome{Failed: []Failure{{Source: "d"}, {Source: "e"}}}, "2 failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.outcome.Summary())
		})
	}
}
