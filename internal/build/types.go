package build

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Stage is a shader pipeline stage, used as the source file extension.
type Stage string

const (
	StageFragment Stage = "frag"
	StageVertex   Stage = "vert"
)

// Stages lists the stages attempted for every shader, in order.
var Stages = []Stage{StageFragment, StageVertex}

// ArtifactSuffix is appended to a source path to name its compiled artifact.
const ArtifactSuffix = ".spv"

// Job is a single (shader, stage) compilation unit.
type Job struct {
	Shader   string
	Stage    Stage
	Source   string
	Artifact string
}

// NewJob resolves the source and artifact paths of shader for stage under root.
func NewJob(root, shader string, stage Stage) Job {
	src := fmt.Sprintf("%s.%s", shader, stage)
	return Job{
		Shader:   shader,
		Stage:    stage,
		Source:   filepath.Join(root, src),
		Artifact: filepath.Join(root, src+ArtifactSuffix),
	}
}

// Plan expands shaders into jobs: every shader, every stage, in order.
func Plan(root string, shaders []string) []Job {
	jobs := make([]Job, 0, len(shaders)*len(Stages))
	for _, shader := range shaders {
		for _, stage := range Stages {
			jobs = append(jobs, NewJob(root, shader, stage))
		}
	}
	return jobs
}

// Status is the classification of a finished job.
type Status string

const (
	StatusPending  Status = ""
	StatusCompiled Status = "compiled"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// Failure is a source file the compiler rejected.
type Failure struct {
	Source  string
	Message string
}

// Outcome is the classified result of a build run.
type Outcome struct {
	// Completed holds artifact paths.
	Completed []string
	// Skipped holds source paths that do not exist.
	Skipped []string
	// Failed holds rejected sources with the compiler's error text.
	Failed []Failure
}

// Total returns the number of classified jobs.
func (o *Outcome) Total() int {
	return len(o.Completed) + len(o.Skipped) + len(o.Failed)
}

// OK reports whether no job failed.
func (o *Outcome) OK() bool {
	return len(o.Failed) == 0
}

// Summary lists the non-zero counts as "<n> failed, <n> skipped, <n> compiled",
// keeping that order and omitting empty categories.
func (o *Outcome) Summary() string {
	var parts []string
	if n := len(o.Failed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}
	if n := len(o.Skipped); n > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", n))
	}
	if n := len(o.Completed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d compiled", n))
	}
	return strings.Join(parts, ", ")
}

// PreconditionError is returned when the build cannot start at all.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}
