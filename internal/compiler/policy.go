package compiler

import (
	"fmt"
	"strings"
)

// Policy decides which signals of a finished compiler run mean failure.
type Policy string

const (
	// PolicyStderr treats any output on stderr as failure, whatever the exit
	// code. Warnings printed by the compiler therefore fail the shader.
	PolicyStderr Policy = "stderr"
	// PolicyExitCode only looks at the exit code.
	PolicyExitCode Policy = "exit-code"
	// PolicyEither fails on stderr output or a non-zero exit code.
	PolicyEither Policy = "either"
)

// DefaultPolicy is the policy used when none is configured.
const DefaultPolicy = PolicyStderr

// ParsePolicy converts a user-supplied name into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyStderr, PolicyExitCode, PolicyEither:
		return p, nil
	case "":
		return DefaultPolicy, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q: must be 'stderr', 'exit-code' or 'either'", s)
	}
}

// Classify reports whether res is a failure under p and, if so, the message
// to show for it. Stderr text is returned verbatim.
func (p Policy) Classify(res *Result) (failed bool, message string) {
	stderr := string(res.Stderr)
	switch p {
	case PolicyExitCode:
		if res.ExitCode == 0 {
			return false, ""
		}
	case PolicyEither:
		if stderr == "" && res.ExitCode == 0 {
			return false, ""
		}
	default:
		if stderr == "" {
			return false, ""
		}
		return true, stderr
	}

	if stderr != "" {
		return true, stderr
	}
	return true, fmt.Sprintf("exit status %d", res.ExitCode)
}
