package config

import "github.com/anggasct/trafficflow"

// Clock controls how ticks are paced
type Clock struct {
	Interval float64 `yaml:"interval"`       // seconds per tick
	Fast     bool    `yaml:"fast,omitempty"` // ignore Interval and tick as fast as possible
}

// Output names the files written after a run
type Output struct {
	Dashboard string `yaml:"dashboard,omitempty"` // HTML dashboard path
	DOT       string `yaml:"dot,omitempty"`       // Graphviz phase plan path
}

// Log configures the process logger
type Log struct {
	Level string `yaml:"level,omitempty"`
}

// Config is the file layout read by Load and Decode
type Config struct {
	Timing trafficflow.TimingPolicy `yaml:"timing"`
	Clock  Clock                    `yaml:"clock"`
	// Counts holds static vehicle counts keyed by direction name ("north" or "n")
	Counts map[string]int `yaml:"counts,omitempty"`
	Output Output         `yaml:"output,omitempty"`
	Log    Log            `yaml:"log,omitempty"`
}
