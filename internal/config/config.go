// Package config provides configuration management for go-hello.
package config

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// Greeting server defaults
	DefaultListenPort = 3000
	DefaultGreeting   = "Hello World!"

	// Host document element the UI mounts into
	DefaultMountID = "root"
)

var (
	ErrInvalidPort = errors.New("invalid port")
	ErrSSLFiles    = errors.New("SSL enabled but cert_file or key_file not specified")
)

// MainConfig holds the main configuration for go-hello
type MainConfig struct {
	// Mutex for thread-safe access
	mux sync.Mutex

	// Web server settings
	Web *WebConfig `json:"web"`

	// UI renderer settings
	UI UIConfig `json:"ui"`

	AppVersion string `json:"app_version"` // Application version, set at build time
}

// WebConfig holds greeting server configuration
type WebConfig struct {
	ListenHost string `json:"listen_host"`
	ListenPort int    `json:"listen_port"`
	SSL        bool   `json:"ssl"`
	CertFile   string `json:"cert_file,omitempty"`
	KeyFile    string `json:"key_file,omitempty"`
	Debug      bool   `json:"debug"` // gin debug mode and request logging
}

// UIConfig holds static UI renderer configuration
type UIConfig struct {
	MountID  string `json:"mount_id"`
	HostFile string `json:"host_file,omitempty"` // empty: embedded index.html
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *MainConfig {
	maincfg := &MainConfig{
		AppVersion: AppVersion,
		Web: &WebConfig{
			ListenPort: DefaultListenPort,
			SSL:        false,
		},
		UI: UIConfig{
			MountID: DefaultMountID,
		},
	}

	maincfg.mux.Lock()
	log.Printf("MainConfig initialized (version: %s)", maincfg.AppVersion)
	maincfg.mux.Unlock()
	return maincfg
}

// Validate checks the web configuration before the server binds.
func (c *WebConfig) Validate() error {
	if c.ListenPort < 1 || c.ListenPort > 65535 {
		return fmt.Errorf("%w: %d (must be between 1 and 65535)", ErrInvalidPort, c.ListenPort)
	}
	if c.SSL && (c.CertFile == "" || c.KeyFile == "") {
		return ErrSSLFiles
	}
	return nil
}

// Protocol returns the URL scheme the server answers on.
func (c *WebConfig) Protocol() string {
	if c.SSL {
		return "https"
	}
	return "http"
}
