package config

import (
	"path/filepath"
	"strings"

	"github.com/leffw/torch-cli/internal/util"
	"github.com/spf13/viper"
)

type Config struct {
	Root        string          `mapstructure:"root"`
	ComposeFile string          `mapstructure:"compose_file"`
	StateFile   string          `mapstructure:"state_file"`
	DataDir     string          `mapstructure:"data_dir"`
	Docker      string          `mapstructure:"docker"`
	Network     string          `mapstructure:"network"`
	LogLevel    string          `mapstructure:"log_level"`
	Backend     BackendConfig   `mapstructure:"backend"`
	Lightning   LightningConfig `mapstructure:"lightning"`
	Ports       PortsConfig     `mapstructure:"ports"`
}

// BackendConfig describes the reserved bitcoind node every peer depends on.
type BackendConfig struct {
	Name         string `mapstructure:"name"`
	Image        string `mapstructure:"image"`
	DataDir      string `mapstructure:"data_dir"` // inside the container
	RPCUser      string `mapstructure:"rpc_user"`
	RPCPass      string `mapstructure:"rpc_pass"`
	RPCPort      int    `mapstructure:"rpc_port"`
	ZMQBlockPort int    `mapstructure:"zmq_block_port"`
	ZMQTxPort    int    `mapstructure:"zmq_tx_port"`
}

type LightningConfig struct {
	Image string `mapstructure:"image"`
	Dir   string `mapstructure:"dir"` // lnddir inside the container
}

type PortsConfig struct {
	Seed []int `mapstructure:"seed"` // listen, control, web
}

// Default returns the configuration used when no torch.yml is present.
func Default() *Config {
	return &Config{
		Root:        "~/.torch",
		ComposeFile: "docker-compose.yaml",
		StateFile:   "config.json",
		DataDir:     "data",
		Docker:      "docker",
		Network:     "torch",
		LogLevel:    "info",
		Backend: BackendConfig{
			Name:         "bitcoin",
			Image:        "ruimarinho/bitcoin-core:0.21",
			DataDir:      "/home/bitcoin/.bitcoin",
			RPCUser:      "root",
			RPCPass:      "root",
			RPCPort:      18443,
			ZMQBlockPort: 28332,
			ZMQTxPort:    28333,
		},
		Lightning: LightningConfig{
			Image: "lightninglabs/lnd:v0.12.0-beta",
			Dir:   "/root/.lnd",
		},
		Ports: PortsConfig{
			Seed: []int{9734, 10008, 8079},
		},
	}
}

// EnvPrefix scopes environment overrides: TORCH_NETWORK, TORCH_BACKEND_IMAGE.
const EnvPrefix = "torch"

func Load() (*Config, error) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	cfg := Default()
	setDefaults(viper.GetViper(), cfg)

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.Root = util.ExpandPath(cfg.Root)

	return cfg, nil
}

// ComposePath is the fleet document.
func (c *Config) ComposePath() string {
	return filepath.Join(c.Root, c.ComposeFile)
}

// StatePath is the port allocator state document.
func (c *Config) StatePath() string {
	return filepath.Join(c.Root, c.StateFile)
}

// NodeDataPath is the host directory holding a node's private state.
func (c *Config) NodeDataPath(name string) string {
	return filepath.Join(c.Root, c.DataDir, name)
}

// ContainerName is the name a node's container is reachable by on the
// fleet's internal network.
func (c *Config) ContainerName(name string) string {
	return c.Network + "." + name
}

// setDefaults registers every key with viper. Unmarshal only consults the
// environment for keys viper already knows about.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("root", d.Root)
	v.SetDefault("compose_file", d.ComposeFile)
	v.SetDefault("state_file", d.StateFile)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("docker", d.Docker)
	v.SetDefault("network", d.Network)
	v.SetDefault("log_level", d.LogLevel)

	v.SetDefault("backend.name", d.Backend.Name)
	v.SetDefault("backend.image", d.Backend.Image)
	v.SetDefault("backend.data_dir", d.Backend.DataDir)
	v.SetDefault("backend.rpc_user", d.Backend.RPCUser)
	v.SetDefault("backend.rpc_pass", d.Backend.RPCPass)
	v.SetDefault("backend.rpc_port", d.Backend.RPCPort)
	v.SetDefault("backend.zmq_block_port", d.Backend.ZMQBlockPort)
	v.SetDefault("backend.zmq_tx_port", d.Backend.ZMQTxPort)

	v.SetDefault("lightning.image", d.Lightning.Image)
	v.SetDefault("lightning.dir", d.Lightning.Dir)

	v.SetDefault("ports.seed", d.Ports.Seed)
}
