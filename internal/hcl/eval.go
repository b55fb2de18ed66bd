package hcl

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions available to settings expressions.
var functions = map[string]function.Function{
	"coalesce":  stdlib.CoalesceFunc,
	"join":      stdlib.JoinFunc,
	"lookup":    stdlib.LookupFunc,
	"lower":     stdlib.LowerFunc,
	"trimspace": stdlib.TrimSpaceFunc,
	"upper":     stdlib.UpperFunc,
}

// evalContext exposes the process environment as the `env` map.
func (l *Loader) evalContext() *hcl.EvalContext {
	environ := l.environ
	if environ == nil {
		environ = os.Environ
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envValue(environ()),
		},
		Functions: functions,
	}
}

// envValue converts KEY=VALUE pairs into a cty map of strings.
func envValue(environ []string) cty.Value {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	return cty.MapVal(vars)
}
