// Package routertest provides an in-memory Executor for tests.
package routertest

import (
	"context"
	"fmt"

	"github.com/leffw/torch-cli/internal/router"
)

// Call is one recorded execution.
type Call struct {
	Mode       router.Mode
	Invocation router.Invocation
}

// Recorder records invocations instead of running them. Capture replies
// with Outputs[node]; Errors[node] fails both modes for that node.
type Recorder struct {
	Calls   []Call
	Outputs map[string]string
	Errors  map[string]error
}

func New() *Recorder {
	return &Recorder{Outputs: make(map[string]string), Errors: make(map[string]error)}
}

func (r *Recorder) Attach(ctx context.Context, inv router.Invocation) error {
	r.Calls = append(r.Calls, Call{Mode: router.Interactive, Invocation: inv})
	return r.Errors[inv.Node]
}

func (r *Recorder) Capture(ctx context.Context, inv router.Invocation) ([]byte, error) {
	r.Calls = append(r.Calls, Call{Mode: router.Captured, Invocation: inv})
	if err := r.Errors[inv.Node]; err != nil {
		return nil, err
	}
	out, ok := r.Outputs[inv.Node]
	if !ok {
		return nil, fmt.Errorf("no captured output for %s", inv.Node)
	}
	return []byte(out), nil
}

// Commands returns "node mode command" lines for each recorded call.
func (r *Recorder) Commands() []string {
	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		out = append(out, fmt.Sprintf("%s %s %s", c.Invocation.Node, c.Mode, c.Invocation.Command))
	}
	return out
}
