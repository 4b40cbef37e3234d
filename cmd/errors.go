package cmd

import (
	"errors"
	"os"

	"github.com/leffw/torch-cli/internal/allocator"
	"github.com/leffw/torch-cli/internal/docker"
	"github.com/leffw/torch-cli/internal/fleet"
	"github.com/leffw/torch-cli/internal/registry"
	"github.com/leffw/torch-cli/internal/router"
)

// describe picks the headline and hint shown for a failed command.
func describe(err error) (title, hint string) {
	var execErr *docker.ExecError
	switch {
	case errors.Is(err, registry.ErrProtected):
		return "Node is protected", "the backend node cannot be removed"
	case errors.Is(err, registry.ErrAlreadyExists):
		return "Node already exists", "pick another name or run 'torch remove' first"
	case errors.Is(err, router.ErrNodeNotFound), errors.Is(err, registry.ErrNotFound):
		return "Node does not exist", "run 'torch listnodes' to see the fleet"
	case errors.Is(err, router.ErrMalformedResponse):
		return "Unexpected node response", "check the node with 'torch logs <name>'"
	case errors.Is(err, fleet.ErrInvalidName):
		return "Invalid node name", ""
	case errors.Is(err, allocator.ErrPortExhausted):
		return "No ports left", "lower ports.seed in torch.yml"
	case errors.Is(err, os.ErrNotExist):
		return "Fleet not found", "run 'torch init' to create one"
	case errors.As(err, &execErr):
		return "docker failed", "is the docker daemon running?"
	}
	return "Command failed", ""
}
