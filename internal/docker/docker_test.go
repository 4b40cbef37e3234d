package docker

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/leffw/torch-cli/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDocker records docker invocations and runs script in their place.
type fakeDocker struct {
	calls  []string
	script string
}

func (f *fakeDocker) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	script := f.script
	if script == "" {
		script = "true"
	}
	return exec.CommandContext(ctx, "sh", "-c", script)
}

func newClient(f *fakeDocker, tty bool) (*Client, *bytes.Buffer) {
	var out bytes.Buffer
	c := New("docker", "/tmp/torch/docker-compose.yaml")
	c.Command = f.command
	c.IsTerminal = func() bool { return tty }
	c.Stdin = strings.NewReader("")
	c.Stdout = &out
	c.Stderr = &bytes.Buffer{}
	return c, &out
}

func TestComposeLifecycle(t *testing.T) {
	f := &fakeDocker{}
	c, _ := newClient(f, false)
	ctx := context.Background()

	require.NoError(t, c.Apply(ctx))
	require.NoError(t, c.StopAll(ctx))
	require.NoError(t, c.RestartAll(ctx))

	assert.Equal(t, []string{
		"docker compose -f /tmp/torch/docker-compose.yaml up -d --remove-orphans",
		"docker compose -f /tmp/torch/docker-compose.yaml down --remove-orphans",
		"docker compose -f /tmp/torch/docker-compose.yaml restart",
	}, f.calls)
}

func TestLogs(t *testing.T) {
	f := &fakeDocker{script: "echo started"}
	c, out := newClient(f, false)

	require.NoError(t, c.Logs(context.Background(), "torch.alice", false))
	require.NoError(t, c.Logs(context.Background(), "torch.alice", true))

	assert.Equal(t, []string{
		"docker logs torch.alice",
		"docker logs --follow torch.alice",
	}, f.calls)
	assert.Equal(t, "started\nstarted\n", out.String())
}

func TestAttachAllocatesTTYOnlyOnTerminal(t *testing.T) {
	inv := router.Invocation{Node: "alice", Container: "torch.alice", Command: "lncli getinfo"}

	f := &fakeDocker{}
	c, _ := newClient(f, true)
	require.NoError(t, c.Attach(context.Background(), inv))

	f2 := &fakeDocker{}
	c2, _ := newClient(f2, false)
	require.NoError(t, c2.Attach(context.Background(), inv))

	assert.Equal(t, []string{"docker exec -i -t torch.alice sh -c lncli getinfo"}, f.calls)
	assert.Equal(t, []string{"docker exec -i torch.alice sh -c lncli getinfo"}, f2.calls)
}

func TestCapture(t *testing.T) {
	f := &fakeDocker{script: `printf '{"identity_pubkey":"02ab"}'`}
	c, out := newClient(f, true)

	got, err := c.Capture(context.Background(), router.Invocation{Node: "alice", Container: "torch.alice", Command: "lncli getinfo"})
	require.NoError(t, err)

	assert.Equal(t, `{"identity_pubkey":"02ab"}`, string(got))
	assert.Empty(t, out.String(), "captured output must not reach the terminal")
	assert.Equal(t, []string{"docker exec -i torch.alice sh -c lncli getinfo"}, f.calls)
}

func TestRunReportsExitStatus(t *testing.T) {
	f := &fakeDocker{script: "exit 3"}
	c, _ := newClient(f, false)

	err := c.Apply(context.Background())
	require.Error(t, err)

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 3, execErr.ExitCode)
	assert.Contains(t, err.Error(), "docker compose -f /tmp/torch/docker-compose.yaml up -d --remove-orphans exited with status 3")
}

func TestCheck(t *testing.T) {
	c := New("docker", "x")
	c.LookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }

	path, err := c.Check()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/docker", path)

	c.LookPath = func(name string) (string, error) { return "", exec.ErrNotFound }
	_, err = c.Check()
	assert.Error(t, err)
}
