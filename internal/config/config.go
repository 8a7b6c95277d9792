// Package config loads YAML configuration for the gridlight servers.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gridlight/internal/fov"
)

// Server holds all configuration shared by the SSH and inspector servers.
type Server struct {
	// SSH front end
	SSHPort     int    `yaml:"ssh_port"`
	HostKeyFile string `yaml:"host_key_file"`

	// Websocket inspector
	InspectorPort int `yaml:"inspector_port"`

	// Map served to new sessions
	Map MapConfig `yaml:"map"`

	// FOV defaults for new sessions
	FOV FOVConfig `yaml:"fov"`
}

// MapConfig sets the dimensions of generated demo maps.
type MapConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"` // 0 = time-based
}

// FOVConfig sets the starting calculation parameters for a session.
type FOVConfig struct {
	Radius float64 `yaml:"radius"`
	Shape  string  `yaml:"shape"` // circle, square, diamond
}

// Default returns a Server config with working defaults.
func Default() Server {
	return Server{
		SSHPort:       2222,
		HostKeyFile:   "server_host_key",
		InspectorPort: 8080,
		Map:           MapConfig{Width: 72, Height: 40},
		FOV:           FOVConfig{Radius: 12, Shape: "circle"},
	}
}

// Load reads a YAML file over the defaults. A missing file is not an
// error: the defaults are returned unchanged.
func Load(path string) (Server, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the servers cannot run with.
func (c Server) Validate() error {
	if c.SSHPort <= 0 || c.SSHPort > 65535 {
		return fmt.Errorf("ssh_port %d out of range", c.SSHPort)
	}
	if c.InspectorPort <= 0 || c.InspectorPort > 65535 {
		return fmt.Errorf("inspector_port %d out of range", c.InspectorPort)
	}
	if c.Map.Width < 10 || c.Map.Height < 10 {
		return fmt.Errorf("map %dx%d too small, need at least 10x10", c.Map.Width, c.Map.Height)
	}
	if _, err := fov.ParseShape(c.FOV.Shape); err != nil {
		return err
	}
	return nil
}

// Shape returns the parsed FOV shape. Call Validate first.
func (c Server) Shape() fov.Shape {
	s, _ := fov.ParseShape(c.FOV.Shape)
	return s
}
