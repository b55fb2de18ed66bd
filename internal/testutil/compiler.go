package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Markers recognised by the fake compiler when they appear in a shader source.
const (
	// MarkError makes the fake compiler print an error to stderr and exit 1.
	MarkError = "FAKE_ERROR"
	// MarkWarning makes it print a warning to stderr, still write the artifact and exit 0.
	MarkWarning = "FAKE_WARNING"
	// MarkSilentFail makes it exit 3 without writing anything to stderr.
	MarkSilentFail = "FAKE_SILENT_FAIL"
	// MarkSleep makes it sleep for 5 seconds before compiling.
	MarkSleep = "FAKE_SLEEP"
)

// InvocationLog is the file, next to the fake compiler, that records one
// source path per invocation.
const InvocationLog = "invocations.log"

// fakeGlslc mimics glslc's "<src> -o <dst>" interface.
const fakeGlslc = `#!/bin/sh
src=""
dst=""
while [ $# -gt 0 ]; do
	case "$1" in
	-o) dst="$2"; shift 2 ;;
	-*) shift ;;
	*) src="$1"; shift ;;
	esac
done
echo "$src" >> "$(dirname "$0")/` + InvocationLog + `"
echo "compiling $src"
if grep -q ` + MarkSleep + ` "$src"; then
	sleep 5 >/dev/null 2>&1
fi
if grep -q ` + MarkError + ` "$src"; then
	echo "$src:1: error: '` + MarkError + `' : undeclared identifier" >&2
	exit 1
fi
if grep -q ` + MarkSilentFail + ` "$src"; then
	exit 3
fi
if grep -q ` + MarkWarning + ` "$src"; then
	echo "$src:1: warning: version 450 is unknown" >&2
fi
printf 'SPIRV' > "$dst"
`

// RequireShell skips the test on platforms without /bin/sh.
func RequireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler requires /bin/sh")
	}
}

// WriteFakeCompiler installs an executable fake glslc into its own temporary
// directory and returns its path.
func WriteFakeCompiler(t *testing.T) string {
	t.Helper()
	RequireShell(t)

	path := filepath.Join(t.TempDir(), "glslc")
	require.NoError(t, os.WriteFile(path, []byte(fakeGlslc), 0o755))
	return path
}

// Invocations returns the source paths the fake compiler at bin was run on,
// in invocation order.
func Invocations(t *testing.T, bin string) []string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(filepath.Dir(bin), InvocationLog))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Fields(string(data))
}

// WriteFiles creates each named file under root with the given content,
// creating parent directories as needed.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}
