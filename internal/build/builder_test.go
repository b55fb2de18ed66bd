package build

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/shaderbuild/internal/compiler"
	"github.com/vk/shaderbuild/internal/diag"
	"github.com/vk/shaderbuild/internal/testutil"
)

func newTestBuilder(t *testing.T, root, bin string, workers int, policy compiler.Policy) (*Builder, *testutil.SafeBuffer) {
	t.Helper()
	out := &testutil.SafeBuffer{}
	b := New(Options{
		SourceDir: root,
		Compiler:  compiler.New(bin, nil, 0),
		Policy:    policy,
		Workers:   workers,
	}, diag.NewReporter(out))
	return b, out
}

func TestRun_SkippedFragmentCompiledVertex(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	bin := testutil.WriteFakeCompiler(t)
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{"tri.vert": "void main() {}"})
	b, out := newTestBuilder(t, root, bin, 1, "")

	// --- Act ---
	outcome, err := b.Run(context.Background(), []string{"tri"})

	// --- Assert ---
	require.NoError(t, err)
	require.True(t, outcome.OK())
	require.Equal(t, []string{filepath.Join(root, "tri.frag")}, outcome.Skipped)
	require.Equal(t, []string{filepath.Join(root, "tri.vert.spv")}, outcome.Completed)
	require.Empty(t, outcome.Failed)
	require.Equal(t, "1 skipped, 1 compiled", outcome.Summary())
	require.FileExists(t, filepath.Join(root, "tri.vert.spv"))

	// One skip against a one-entry manifest reaches the all-skipped threshold.
	expected := "Shaders: 1 skipped, 1 compiled\n" +
		diag.Format(diag.SeverityWarning, diag.Subject, "All skipped, ensure the path is correct") + "\n" +
		"Shader compilation successfully completed\n"
	require.Equal(t, expected, out.String())

	// The missing stage never reached the compiler.
	require.Equal(t, []string{filepath.Join(root, "tri.vert")}, testutil.Invocations(t, bin))
}

func TestRun_FailuresAreReportedAfterSummary(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	bin := testutil.WriteFakeCompiler(t)
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"mesh.frag": "void main() {}",
		"mesh.vert": testutil.MarkError,
		"sky.frag":  "void main() {}",
		"sky.vert":  "void main() {}",
	})
	b, out := newTestBuilder(t, root, bin, 4, compiler.PolicyStderr)

	// --- Act ---
	outcome, err := b.Run(context.Background(), []string{"mesh", "sky"})

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, outcome.OK())
	require.Len(t, outcome.Failed, 1)

	src := filepath.Join(root, "mesh.vert")
	require.Equal(t, src, outcome.Failed[0].Source)
	require.Equal(t, fmt.Sprintf("%s:1: error: '%s' : undeclared identifier\n", src, testutil.MarkError), outcome.Failed[0].Message)
	require.Equal(t, []string{
		filepath.Join(root, "mesh.frag.spv"),
		filepath.Join(root, "sky.frag.spv"),
		filepath.Join(root, "sky.vert.spv"),
	}, outcome.Completed)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Equal(t, "Shaders: 1 failed, 3 compiled", lines[0])
	require.Equal(t, diag.Format(diag.SeverityError, src, outcome.Failed[0].Message), strings.Join(lines[1:], "\n")+"\n")
	require.NotContains(t, out.String(), "successfully completed")
}

func TestRun_WarningPolicy(t *testing.T) {
	t.Parallel()

	bin := testutil.WriteFakeCompiler(t)
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"ui.frag": testutil.MarkWarning,
		"ui.vert": testutil.MarkSilentFail,
	})

	t.Run("stderr counts warnings as failures", func(t *testing.T) {
		b, _ := newTestBuilder(t, root, bin, 1, compiler.PolicyStderr)
		outcome, err := b.Run(context.Background(), []string{"ui"})
		require.NoError(t, err)
		require.Len(t, outcome.Failed, 1)
		assert.Equal(t, filepath.Join(root, "ui.frag"), outcome.Failed[0].Source)
		assert.Contains(t, outcome.Failed[0].Message, "warning")
		assert.Equal(t, []string{filepath.Join(root, "ui.vert.spv")}, outcome.Completed)
	})

	t.Run("exit-code ignores warnings", func(t *testing.T) {
		b, _ := newTestBuilder(t, root, bin, 1, compiler.PolicyExitCode)
		outcome, err := b.Run(context.Background(), []string{"ui"})
		require.NoError(t, err)
		require.Equal(t, []string{filepath.Join(root, "ui.frag.spv")}, outcome.Completed)
		require.Equal(t, []Failure{{Source: filepath.Join(root, "ui.vert"), Message: "exit status 3"}}, outcome.Failed)
	})
}

func TestRun_EveryJobClassifiedOnce(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	bin := testutil.WriteFakeCompiler(t)
	root := t.TempDir()
	files := map[string]string{}
	var shaders []string
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("s%02d", i)
		shaders = append(shaders, name)
		switch i % 4 {
		case 0:
			files[name+".frag"] = "void main() {}"
			files[name+".vert"] = "void main() {}"
		case 1:
			files[name+".vert"] = testutil.MarkError
		case 2:
			files[name+".frag"] = "void main() {}"
		}
	}
	shaders = append(shaders, "", "s00")
	testutil.WriteFiles(t, root, files)

	seq, _ := newTestBuilder(t, root, bin, 1, "")
	par, _ := newTestBuilder(t, root, bin, 8, "")

	// --- Act ---
	seqOutcome, err := seq.Run(context.Background(), shaders)
	require.NoError(t, err)
	parOutcome, err := par.Run(context.Background(), shaders)
	require.NoError(t, err)

	// --- Assert ---
	require.Equal(t, 2*len(shaders), seqOutcome.Total())
	require.Equal(t, seqOutcome, parOutcome)
	require.Len(t, seqOutcome.Failed, 3)
}

func TestRun_Preconditions(t *testing.T) {
	t.Parallel()

	bin := testutil.WriteFakeCompiler(t)
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{"tri.frag": "void main() {}"})

	t.Run("missing compiler", func(t *testing.T) {
		missing := filepath.Join(root, "glslc")
		b, out := newTestBuilder(t, filepath.Join(root, "nope"), missing, 1, "")

		outcome, err := b.Run(context.Background(), []string{"tri"})

		var pe *PreconditionError
		require.True(t, errors.As(err, &pe))
		require.Zero(t, outcome.Total())
		require.Equal(t, diag.Format(diag.SeverityError, diag.Subject, "Compiler executable not found in "+missing)+"\n", out.String())
	})

	t.Run("missing source dir", func(t *testing.T) {
		missing := filepath.Join(root, "nope")
		b, out := newTestBuilder(t, missing, bin, 1, "")

		outcome, err := b.Run(context.Background(), []string{"tri"})

		var pe *PreconditionError
		require.True(t, errors.As(err, &pe))
		require.Zero(t, outcome.Total())
		require.Equal(t, diag.Format(diag.SeverityError, diag.Subject, "Cannot find path "+missing)+"\n", out.String())
		require.Empty(t, testutil.Invocations(t, bin))
	})

	t.Run("source dir given as compiler", func(t *testing.T) {
		b, _ := newTestBuilder(t, root, root, 1, "")
		_, err := b.Run(context.Background(), []string{"tri"})
		require.ErrorContains(t, err, "Compiler executable not found")
	})
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	bin := testutil.WriteFakeCompiler(t)
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{"tri.frag": "void main() {}"})
	b, out := newTestBuilder(t, root, bin, 2, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Run(ctx, []string{"tri"})
	require.ErrorIs(t, err, context.Canceled)
	require.NotContains(t, out.String(), "Shaders:")
}

func TestBuilder_DefaultWorkers(t *testing.T) {
	t.Parallel()

	b := New(Options{}, diag.NewReporter(&testutil.SafeBuffer{}))
	require.Positive(t, b.Workers())
}

func TestRun_ProgressCalledOncePerJob(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	bin := testutil.WriteFakeCompiler(t)
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"a.frag": "void main() {}",
		"b.vert": testutil.MarkError,
	})

	var mu sync.Mutex
	seen := map[Status]int{}
	b := New(Options{
		SourceDir: root,
		Compiler:  compiler.New(bin, nil, 0),
		Workers:   4,
		Progress: func(_ Job, status Status) {
			mu.Lock()
			defer mu.Unlock()
			seen[status]++
		},
	}, diag.NewReporter(&testutil.SafeBuffer{}))

	// --- Act ---
	_, err := b.Run(context.Background(), []string{"a", "b"})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, map[Status]int{StatusCompiled: 1, StatusSkipped: 2, StatusFailed: 1}, seen)
}
