// Package docker drives the docker CLI: compose for fleet lifecycle,
// exec for node commands and logs for node output.
package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/leffw/torch-cli/internal/router"
	"golang.org/x/term"
)

// ExecError is a docker invocation that could not start or exited non-zero.
type ExecError struct {
	Args     []string
	ExitCode int
	Err      error
}

func (e *ExecError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// CommandFunc creates the process for a docker invocation.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Client runs docker commands for one fleet document.
type Client struct {
	Binary      string
	ComposeFile string

	Command    CommandFunc
	LookPath   func(string) (string, error)
	IsTerminal func() bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a client wired to the process's standard streams.
func New(binary, composeFile string) *Client {
	return &Client{
		Binary:      binary,
		ComposeFile: composeFile,
		Command:     exec.CommandContext,
		LookPath:    exec.LookPath,
		IsTerminal:  func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Check reports whether the docker binary can be found.
func (c *Client) Check() (string, error) {
	path, err := c.LookPath(c.Binary)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH", c.Binary)
	}
	return path, nil
}

// Apply brings the running containers in line with the fleet document,
// removing containers of nodes that no longer exist.
func (c *Client) Apply(ctx context.Context) error {
	return c.compose(ctx, "up", "-d", "--remove-orphans")
}

// StopAll stops and removes every fleet container.
func (c *Client) StopAll(ctx context.Context) error {
	return c.compose(ctx, "down", "--remove-orphans")
}

// RestartAll restarts every fleet container.
func (c *Client) RestartAll(ctx context.Context) error {
	return c.compose(ctx, "restart")
}

func (c *Client) compose(ctx context.Context, args ...string) error {
	full := append([]string{"compose", "-f", c.ComposeFile}, args...)
	log.Debug("compose", "action", args[0], "file", c.ComposeFile)
	return c.run(ctx, full, c.Stdin, c.Stdout)
}

// Logs streams a container's output to the terminal.
func (c *Client) Logs(ctx context.Context, container string, follow bool) error {
	args := []string{"logs"}
	if follow {
		args = append(args, "--follow")
	}
	args = append(args, container)
	return c.run(ctx, args, nil, c.Stdout)
}

// Attach runs an invocation inside its container on the operator's
// terminal. A TTY is allocated only when stdin is one.
func (c *Client) Attach(ctx context.Context, inv router.Invocation) error {
	args := []string{"exec", "-i"}
	if c.IsTerminal != nil && c.IsTerminal() {
		args = append(args, "-t")
	}
	args = append(args, inv.Container, "sh", "-c", inv.Command)
	return c.run(ctx, args, c.Stdin, c.Stdout)
}

// Capture runs an invocation inside its container and returns its stdout.
func (c *Client) Capture(ctx context.Context, inv router.Invocation) ([]byte, error) {
	var stdout bytes.Buffer
	args := []string{"exec", "-i", inv.Container, "sh", "-c", inv.Command}
	if err := c.run(ctx, args, nil, &stdout); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

func (c *Client) run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := c.Command(ctx, c.Binary, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		full := append([]string{c.Binary}, args...)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExecError{Args: full, ExitCode: exitErr.ExitCode(), Err: err}
		}
		return &ExecError{Args: full, Err: err}
	}
	return nil
}
