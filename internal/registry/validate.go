package registry

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/compose-spec/compose-go/v2/cli"
	composetypes "github.com/compose-spec/compose-go/v2/types"
)

// ValidationError reports a fleet document problem with a suggested fix.
type ValidationError struct {
	Field      string // dotted path, e.g. "services.alice.ports"
	Message    string // what's wrong
	Suggestion string // how to fix it
}

// Validate loads the fleet document through the compose loader and checks
// the invariants torch relies on: the backend is present, dependencies
// resolve, and no host port or container name is used twice.
func Validate(ctx context.Context, path, backend string) ([]ValidationError, error) {
	opts, err := cli.NewProjectOptions(
		[]string{path},
		cli.WithDotEnv,
		cli.WithInterpolation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("project options: %w", err)
	}

	project, err := cli.ProjectFromOptions(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return checkProject(project, backend), nil
}

func checkProject(project *composetypes.Project, backend string) []ValidationError {
	var errs []ValidationError

	if _, ok := project.Services[backend]; !ok {
		errs = append(errs, ValidationError{
			Field:      "services." + backend,
			Message:    "backend node is missing",
			Suggestion: "run 'torch init' to recreate the fleet document",
		})
	}

	names := make([]string, 0, len(project.Services))
	for name := range project.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	portOwner := make(map[int]string)
	containerOwner := make(map[string]string)

	for _, name := range names {
		svc := project.Services[name]

		for dep := range svc.DependsOn {
			if _, ok := project.Services[dep]; !ok {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("services.%s.depends_on", name),
					Message: fmt.Sprintf("depends on unknown node %s", dep),
				})
			}
		}

		if svc.ContainerName != "" {
			if other, ok := containerOwner[svc.ContainerName]; ok {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("services.%s.container_name", name),
					Message: fmt.Sprintf("container name %s already used by %s", svc.ContainerName, other),
				})
			}
			containerOwner[svc.ContainerName] = name
		}

		for _, p := range svc.Ports {
			published, err := strconv.Atoi(p.Published)
			if err != nil || published == 0 {
				continue
			}
			if other, ok := portOwner[published]; ok && other != name {
				errs = append(errs, ValidationError{
					Field:      fmt.Sprintf("services.%s.ports", name),
					Message:    fmt.Sprintf("host port %d already bound by %s", published, other),
					Suggestion: "remove one of the nodes and create it again to get fresh ports",
				})
				continue
			}
			portOwner[published] = name
		}
	}

	return errs
}
