package config

import (
	"encoding"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"
)

// FullNode is the emporium daemon config.
type FullNode struct {
	API       API
	Datastore Datastore
	Metrics   Metrics
}

// API contains configs for the rpc endpoint.
type API struct {
	ListenAddress string
	Timeout       Duration
}

type Datastore struct {
	// Path is relative to the repo directory.
	Path string
}

type Metrics struct {
	Enabled bool
}

func DefaultFullNode() *FullNode {
	return &FullNode{
		API: API{
			ListenAddress: "127.0.0.1:7766",
			Timeout:       Duration(30 * time.Second),
		},
		Datastore: Datastore{
			Path: "datastore",
		},
		Metrics: Metrics{
			Enabled: true,
		},
	}
}

// FromFile loads config from a toml file, layered over the defaults.
// A missing file yields the defaults unchanged.
func FromFile(path string) (*FullNode, error) {
	cfg := DefaultFullNode()
	_, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, xerrors.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// WriteFile persists the config; used by repo init.
func (c *FullNode) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return xerrors.Errorf("creating config file: %w", err)
	}
	defer f.Close() //nolint:errcheck
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return xerrors.Errorf("encoding config: %w", err)
	}
	return nil
}

var (
	_ encoding.TextMarshaler   = (*Duration)(nil)
	_ encoding.TextUnmarshaler = (*Duration)(nil)
)

// Duration is a wrapper type for time.Duration for decoding and
// encoding from/to TOML.
type Duration time.Duration

func (dur *Duration) UnmarshalText(text []byte) error {
	d, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*dur = Duration(d)
	return nil
}

func (dur Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(dur).String()), nil
}
