package config

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mandelsoft/vfs/pkg/vfs"

	ftypes "go.hackfix.me/fwblock/firewall/types"
	"go.hackfix.me/fwblock/shell"
)

// Default configuration values.
const (
	DefaultFirewallType = ftypes.FirewallNetsh
	DefaultClassKey     = shell.DefaultClassKey
	DefaultVerbKey      = shell.DefaultVerbKey
	DefaultMenuLabel    = shell.DefaultMenuLabel
)

// Config represents the application configuration, read from a JSON file on a
// filesystem.
type Config struct {
	Firewall Firewall
	Shell    Shell

	fs   vfs.FileSystem
	path string
}

// NewConfig creates a new Config instance with the specified filesystem
// and configuration file path.
func NewConfig(fs vfs.FileSystem, path string) *Config {
	return &Config{fs: fs, path: path}
}

// Load reads and parses the configuration file from the filesystem.
// If the file doesn't exist, it initializes with an empty configuration.
func (c *Config) Load() error {
	configJSON, err := vfs.ReadFile(c.fs, c.path)
	if err != nil && !vfs.IsErrNotExist(err) {
		return fmt.Errorf("failed reading configuration file: %w", err)
	}

	// Ensure that unmarshalling JSON doesn't fail if the file doesn't exist or is empty.
	if len(configJSON) == 0 {
		configJSON = []byte("{}")
	}

	if err = json.Unmarshal(configJSON, c); err != nil {
		return fmt.Errorf("failed parsing configuration file: %w", err)
	}

	return nil
}

// Path returns the filesystem path where the configuration is stored.
func (c *Config) Path() string {
	return c.path
}

// Firewall defines firewall-specific configuration options.
type Firewall struct {
	// Type is the firewall backend used on this system.
	Type sql.Null[ftypes.FirewallType] `json:"type"`
	// Tool is the path to the netsh executable. If unset, it's resolved from
	// the SystemRoot environment variable.
	Tool sql.Null[string] `json:"tool"`
	// NoMatchMarker is the text netsh prints when a rule query matches nothing.
	// It must be changed on Windows installations with a non-English display
	// language.
	NoMatchMarker sql.Null[string] `json:"no_match_marker"`
}

// Shell defines options of the Explorer context-menu integration.
type Shell struct {
	// ClassKey is the file class under HKEY_CLASSES_ROOT the menu is added to.
	ClassKey sql.Null[string] `json:"class_key"`
	// VerbKey is the name of the context-menu verb key.
	VerbKey sql.Null[string] `json:"verb_key"`
	// MenuLabel is the text of the context-menu entry.
	MenuLabel sql.Null[string] `json:"menu_label"`
}

type cfgWrapper struct {
	Firewall fwCfgWrapper    `json:"firewall"`
	Shell    shellCfgWrapper `json:"shell"`
}
type fwCfgWrapper struct {
	Type          string `json:"type,omitempty"`
	Tool          string `json:"tool,omitempty"`
	NoMatchMarker string `json:"no_match_marker,omitempty"`
}
type shellCfgWrapper struct {
	ClassKey  string `json:"class_key,omitempty"`
	VerbKey   string `json:"verb_key,omitempty"`
	MenuLabel string `json:"menu_label,omitempty"`
}

// UnmarshalJSON implements custom JSON unmarshaling to convert plain values
// into sql.Null types.
func (c *Config) UnmarshalJSON(data []byte) error {
	var w cfgWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		//nolint:wrapcheck // This is fine.
		return err
	}

	if w.Firewall.Type != "" {
		ft, err := ftypes.FirewallTypeFromString(w.Firewall.Type)
		if err != nil {
			return err
		}
		c.Firewall.Type = sql.Null[ftypes.FirewallType]{V: ft, Valid: true}
	}
	c.Firewall.Tool = toNull(w.Firewall.Tool)
	c.Firewall.NoMatchMarker = toNull(w.Firewall.NoMatchMarker)

	c.Shell.ClassKey = toNull(w.Shell.ClassKey)
	c.Shell.VerbKey = toNull(w.Shell.VerbKey)
	c.Shell.MenuLabel = toNull(w.Shell.MenuLabel)

	return nil
}

// SetDefaults sets default configuration values if they weren't set already.
// The netsh tool path and no-match marker are left for the firewall package to
// resolve, since they depend on the environment.
func (c *Config) SetDefaults() {
	if !c.Firewall.Type.Valid {
		c.Firewall.Type = sql.Null[ftypes.FirewallType]{V: DefaultFirewallType, Valid: true}
	}
	if !c.Shell.ClassKey.Valid {
		c.Shell.ClassKey = toNull(DefaultClassKey)
	}
	if !c.Shell.VerbKey.Valid {
		c.Shell.VerbKey = toNull(DefaultVerbKey)
	}
	if !c.Shell.MenuLabel.Valid {
		c.Shell.MenuLabel = toNull(DefaultMenuLabel)
	}
}

func toNull(v string) sql.Null[string] {
	return sql.Null[string]{V: v, Valid: v != ""}
}
