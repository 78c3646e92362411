// Package config loads run configuration from YAML files or base64
// encoded inline data.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/anggasct/trafficflow"
	"gopkg.in/yaml.v2"
)

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Timing: trafficflow.DefaultTimingPolicy(),
		Clock:  Clock{Interval: 1},
		Log:    Log{Level: "info"},
	}
}

// Load reads and decodes the YAML file at path
func Load(path string) (Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config file load err: %w", err)
	}
	return Decode(file)
}

// DecodeBase64 decodes base64 encoded YAML, as passed through -config-data
func DecodeBase64(data string) (Config, error) {
	file, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return Config{}, fmt.Errorf("config data load err: %w", err)
	}
	return Decode(file)
}

// Decode parses YAML on top of Default. Unknown keys are rejected.
func Decode(data []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("config decode err: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the timing policy, clock and any static counts
func (c Config) Validate() error {
	if err := c.Timing.Validate(); err != nil {
		return err
	}
	if c.Clock.Interval < 0 {
		return trafficflow.NewConfigurationError("clock", fmt.Sprintf("interval must not be negative, got %v", c.Clock.Interval))
	}
	if len(c.Counts) > 0 {
		if _, err := c.VehicleCounts(); err != nil {
			return err
		}
	}
	return nil
}

// TimingPolicy returns the scheduling policy
func (c Config) TimingPolicy() trafficflow.TimingPolicy {
	return c.Timing
}

// HasCounts reports whether the file carries static counts
func (c Config) HasCounts() bool {
	return len(c.Counts) > 0
}

// VehicleCounts converts the named counts to a validated VehicleCounts
func (c Config) VehicleCounts() (trafficflow.VehicleCounts, error) {
	counts := make(trafficflow.VehicleCounts, len(c.Counts))
	for name, n := range c.Counts {
		d, err := trafficflow.ParseDirection(name)
		if err != nil {
			return nil, err
		}
		if _, dup := counts[d]; dup {
			return nil, trafficflow.NewConfigurationError("counts", fmt.Sprintf("direction %s given more than once", d))
		}
		counts[d] = n
	}
	if err := counts.Validate(); err != nil {
		return nil, err
	}
	return counts, nil
}

// TickInterval returns the wall-clock duration of one tick; zero means fast
func (c Config) TickInterval() time.Duration {
	if c.Clock.Fast || c.Clock.Interval == 0 {
		return 0
	}
	return time.Duration(c.Clock.Interval * float64(time.Second))
}
