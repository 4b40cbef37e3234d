package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leffw/torch-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFleet() *model.Fleet {
	f := model.NewFleet("torch")
	f.Add(&model.NodeDefinition{
		Name:          "bitcoin",
		Image:         "ruimarinho/bitcoin-core:0.21",
		ContainerName: "torch.bitcoin",
		Ports:         []string{"18443:18443"},
		Restart:       model.RestartAlways,
	})
	return f
}

func lndNode(name string, ports model.Ports) *model.NodeDefinition {
	var bindings []string
	for _, m := range ports.Mappings() {
		bindings = append(bindings, m.String())
	}
	return &model.NodeDefinition{
		Name:          name,
		Image:         "lightninglabs/lnd:v0.12.0-beta",
		ContainerName: "torch." + name,
		Ports:         bindings,
		Volumes:       []string{"/tmp/torch/data/" + name + ":/root/.lnd"},
		DependsOn:     []string{"bitcoin"},
		Restart:       model.RestartAlways,
	}
}

func newFileStore(t *testing.T) FileStore {
	t.Helper()
	store := FileStore{Path: filepath.Join(t.TempDir(), "docker-compose.yaml")}
	require.NoError(t, store.Persist(seedFleet()))
	return store
}

func TestOpenRequiresBackend(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "docker-compose.yaml")}
	require.NoError(t, store.Persist(model.NewFleet("torch")))

	_, err := Open(store, "bitcoin")
	assert.Error(t, err)
}

func TestOpenMissingDocument(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "missing.yaml")}

	_, err := Open(store, "bitcoin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestInsertGetList(t *testing.T) {
	reg, err := Open(newFileStore(t), "bitcoin")
	require.NoError(t, err)

	require.NoError(t, reg.Insert(lndNode("alice", model.Ports{Listen: 9735, Control: 10009, Web: 8080})))
	require.NoError(t, reg.Insert(lndNode("bob", model.Ports{Listen: 9736, Control: 10010, Web: 8081})))

	assert.Equal(t, []string{"bitcoin", "alice", "bob"}, reg.List())

	alice, err := reg.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, model.KindLightningPeer, alice.Kind)

	backend, err := reg.Get("bitcoin")
	require.NoError(t, err)
	assert.Equal(t, model.KindBackend, backend.Kind)

	err = reg.Insert(lndNode("alice", model.Ports{Listen: 1, Control: 2, Web: 3}))
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = reg.Get("carol")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	reg, err := Open(newFileStore(t), "bitcoin")
	require.NoError(t, err)
	require.NoError(t, reg.Insert(lndNode("alice", model.Ports{Listen: 9735, Control: 10009, Web: 8080})))

	_, err = reg.Remove("bitcoin")
	assert.ErrorIs(t, err, ErrProtected)
	assert.Equal(t, []string{"bitcoin", "alice"}, reg.List())

	_, err = reg.Remove("carol")
	assert.ErrorIs(t, err, ErrNotFound)

	def, err := reg.Remove("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", def.Name)

	_, err = reg.Get("alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersistRoundTrip(t *testing.T) {
	store := newFileStore(t)
	reg, err := Open(store, "bitcoin")
	require.NoError(t, err)

	require.NoError(t, reg.Insert(lndNode("zed", model.Ports{Listen: 9735, Control: 10009, Web: 8080})))
	require.NoError(t, reg.Insert(lndNode("alice", model.Ports{Listen: 9736, Control: 10010, Web: 8081})))
	require.NoError(t, reg.Persist())

	_, err = os.Stat(store.Path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must not be left behind")

	again, err := Open(store, "bitcoin")
	require.NoError(t, err)
	assert.Equal(t, []string{"bitcoin", "zed", "alice"}, again.List())

	zed, err := again.Get("zed")
	require.NoError(t, err)
	port, err := zed.ControlPort()
	require.NoError(t, err)
	assert.Equal(t, 10009, port)
}

func TestInUsePorts(t *testing.T) {
	reg, err := Open(newFileStore(t), "bitcoin")
	require.NoError(t, err)
	require.NoError(t, reg.Insert(lndNode("alice", model.Ports{Listen: 9735, Control: 10009, Web: 8080})))

	used := reg.InUsePorts()
	assert.True(t, used[18443])
	assert.True(t, used[9735])
	assert.True(t, used[10009])
	assert.True(t, used[8080])
	assert.False(t, used[9736])
}

func TestValidate(t *testing.T) {
	store := newFileStore(t)
	reg, err := Open(store, "bitcoin")
	require.NoError(t, err)
	require.NoError(t, reg.Insert(lndNode("alice", model.Ports{Listen: 9735, Control: 10009, Web: 8080})))
	require.NoError(t, reg.Persist())

	errs, err := Validate(context.Background(), store.Path, "bitcoin")
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateReportsCollisions(t *testing.T) {
	store := newFileStore(t)
	reg, err := Open(store, "bitcoin")
	require.NoError(t, err)
	require.NoError(t, reg.Insert(lndNode("alice", model.Ports{Listen: 9735, Control: 10009, Web: 8080})))
	clash := lndNode("bob", model.Ports{Listen: 9736, Control: 10009, Web: 8081})
	require.NoError(t, reg.Insert(clash))
	require.NoError(t, reg.Persist())

	errs, err := Validate(context.Background(), store.Path, "bitcoin")
	require.NoError(t, err)

	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "services.bob.ports")
}

func TestValidateMissingBackend(t *testing.T) {
	store := newFileStore(t)

	errs, err := Validate(context.Background(), store.Path, "btc")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "services.btc", errs[0].Field)
}
