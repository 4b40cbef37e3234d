package fleet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leffw/torch-cli/internal/builder"
	"github.com/leffw/torch-cli/internal/model"
	"github.com/leffw/torch-cli/internal/registry"
)

// Init lays out a new fleet root: the data directory, the backend's
// bitcoin.conf and a fleet document holding only the backend node. It
// returns false without touching anything if a fleet document exists.
func (m *Manager) Init() (bool, error) {
	cfg := m.Config

	if _, err := os.Stat(cfg.ComposePath()); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	backendData := cfg.NodeDataPath(cfg.Backend.Name)
	if err := os.MkdirAll(backendData, 0755); err != nil {
		return false, fmt.Errorf("creating fleet root: %w", err)
	}

	conf, err := builder.BitcoinConf(cfg.Backend)
	if err != nil {
		return false, fmt.Errorf("rendering bitcoin.conf: %w", err)
	}
	if err := registry.WriteFileAtomic(filepath.Join(backendData, "bitcoin.conf"), []byte(conf), 0644); err != nil {
		return false, err
	}

	fleet := model.NewFleet(cfg.Network)
	fleet.Add(builder.Backend(cfg))
	if err := m.Store.Persist(fleet); err != nil {
		return false, err
	}
	return true, nil
}
