package main

import (
	"os"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/docker/go-units"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Trace distributions understood by generateTrace.
const (
	distRand = "rand"
	distFreq = "freq"
	distScan = "scan"
)

// config is the simulator configuration. It is read from an optional TOML
// file and then overridden by command line flags.
type config struct {
	Capacity   int    `toml:"capacity"`
	Operations string `toml:"operations"`
	Keyspace   int64  `toml:"keyspace"`
	Dist       string `toml:"distribution"`
	Workers    int    `toml:"workers"`
	Seed       uint64 `toml:"seed"`
	SampleRate int    `toml:"sample_rate"`
	Name       string `toml:"name"`
}

func defaultConfig() config {
	return config{
		Capacity:   8192,
		Operations: "1M",
		Keyspace:   32768,
		Dist:       distRand,
		Workers:    1,
		Seed:       1,
		SampleRate: 64,
		Name:       "lrusim",
	}
}

// loadConfig reads path into cfg. Keys missing from the file keep the value
// they already had.
func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config")
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "failed to parse config %s: %v", path, err)
	}
	return nil
}

// operations returns the number of operations to replay. Human readable
// sizes such as "100k" or "2M" are accepted.
func (c *config) operations() (int64, error) {
	n, err := units.FromHumanSize(c.Operations)
	if err != nil {
		return 0, errors.Wrapf(errdefs.ErrInvalidArgument, "invalid operations %q: %v", c.Operations, err)
	}
	return n, nil
}

func (c *config) validate() error {
	if c.Capacity <= 0 {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "capacity must be positive, got %d", c.Capacity)
	}
	if c.Keyspace <= 0 {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "keyspace must be positive, got %d", c.Keyspace)
	}
	if c.Workers <= 0 {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "workers must be positive, got %d", c.Workers)
	}
	if c.SampleRate <= 0 {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "sample_rate must be positive, got %d", c.SampleRate)
	}
	switch strings.ToLower(c.Dist) {
	case distRand, distFreq, distScan:
		c.Dist = strings.ToLower(c.Dist)
	default:
		return errors.Wrapf(errdefs.ErrInvalidArgument, "unknown distribution %q", c.Dist)
	}
	if n, err := c.operations(); err != nil {
		return err
	} else if n <= 0 {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "operations must be positive, got %d", n)
	}
	return nil
}
