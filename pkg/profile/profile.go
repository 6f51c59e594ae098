// Package profile loads the optional logforge.yaml run profile.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSocket is where a running emitter listens for status requests.
const DefaultSocket = "/tmp/logforge.sock"

// Profile represents a logforge.yaml configuration file.
type Profile struct {
	Version    int      `yaml:"version"              json:"version"`
	Dir        string   `yaml:"dir"                  json:"dir"`
	Host       string   `yaml:"host,omitempty"       json:"host,omitempty"`
	Categories []string `yaml:"categories,omitempty" json:"categories,omitempty"` // empty = all
	Socket     string   `yaml:"socket,omitempty"     json:"socket,omitempty"`
	Seed       uint64   `yaml:"seed,omitempty"       json:"seed,omitempty"` // 0 = time-seeded

	// FilePath is where the profile was loaded from (not serialized).
	FilePath string `yaml:"-" json:"-"`
}

// Default returns the profile used when no logforge.yaml exists.
func Default() *Profile {
	return &Profile{
		Version: 1,
		Dir:     "logs",
		Host:    "sandbox",
		Socket:  DefaultSocket,
	}
}

// Parse decodes a profile from YAML bytes and applies defaults.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if p.Host == "" {
		p.Host = "sandbox"
	}
	if p.Socket == "" {
		p.Socket = DefaultSocket
	}
	return &p, nil
}

// Load reads and parses a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, err
	}
	p.FilePath = path
	return p, nil
}

// Save writes the profile to path as YAML.
func Save(p *Profile, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
