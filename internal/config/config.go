// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"

	"github.com/joomcode/errorx"
	"github.com/spf13/viper"

	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/pkg/logx"
	"github.com/cardano-ops/cnodectl/pkg/sanity"
)

// Config holds the global configuration for the application.
type Config struct {
	Log     logx.LoggingConfig `yaml:"log" json:"log"`
	Ansible AnsibleConfig      `yaml:"ansible" json:"ansible"`
	Node    NodeConfig         `yaml:"node" json:"node"`
	Setup   SetupConfig        `yaml:"setup" json:"setup"`
}

// AnsibleConfig represents the `ansible` configuration block: where the
// automation files live and which files a run uses.
type AnsibleConfig struct {
	InstallDir          string   `yaml:"installDir" json:"installDir"`
	InstallPlaybook     string   `yaml:"installPlaybook" json:"installPlaybook"`
	UninstallPlaybook   string   `yaml:"uninstallPlaybook" json:"uninstallPlaybook"`
	Inventory           string   `yaml:"inventory" json:"inventory"`
	ParameterTemplate   string   `yaml:"parameterTemplate" json:"parameterTemplate"`
	UninstallParameters string   `yaml:"uninstallParameters" json:"uninstallParameters"`
	Collections         []string `yaml:"collections" json:"collections"`
}

// NodeConfig represents the `node` configuration block.
type NodeConfig struct {
	Port        int    `yaml:"port" json:"port"`
	ServiceName string `yaml:"serviceName" json:"serviceName"`
	// VersionsURL serves the dependency version set as JSON.
	VersionsURL string `yaml:"versionsUrl" json:"versionsUrl"`
}

// SetupConfig represents the `setup` configuration block.
type SetupConfig struct {
	// ArchiveURL is the zip archive of the automation files.
	ArchiveURL string `yaml:"archiveUrl" json:"archiveUrl"`
	// RcFile is the shell rc file that receives the pipx PATH export line.
	RcFile string `yaml:"rcFile" json:"rcFile"`
	// ExcludeDirs are top-level directories of the archive that are skipped
	// during extraction, such as the CLI source tree shipped alongside the
	// automation files.
	ExcludeDirs []string `yaml:"excludeDirs" json:"excludeDirs"`
}

// Validate validates all ansible configuration fields to ensure they are safe
// and secure before any playbook run.
func (c *AnsibleConfig) Validate() error {
	if c.InstallDir != "" {
		if _, err := sanity.SanitizePath(c.InstallDir); err != nil {
			return errorx.IllegalArgument.Wrap(err, "invalid install dir: %s", c.InstallDir)
		}
	}

	for _, name := range []string{c.InstallPlaybook, c.UninstallPlaybook, c.Inventory, c.ParameterTemplate, c.UninstallParameters} {
		if strings.Contains(name, "/") {
			return errorx.IllegalArgument.New("automation file name must not contain a path: %s", name)
		}
	}

	return nil
}

// Validate validates the node configuration fields.
func (c *NodeConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errorx.IllegalArgument.New("invalid port %d: must be within [1, 65535]", c.Port)
	}

	if c.VersionsURL != "" {
		if err := sanity.ValidateURL(c.VersionsURL, &sanity.ValidateURLOptions{AllowHTTP: true}); err != nil {
			return errorx.IllegalArgument.Wrap(err, "invalid versions url: %s", c.VersionsURL)
		}
	}

	return nil
}

// Validate validates the setup configuration fields.
func (c *SetupConfig) Validate() error {
	if c.ArchiveURL != "" {
		if err := sanity.ValidateURL(c.ArchiveURL, nil); err != nil {
			return errorx.IllegalArgument.Wrap(err, "invalid archive url: %s", c.ArchiveURL)
		}
	}

	for _, dir := range c.ExcludeDirs {
		if strings.Contains(dir, "..") {
			return errorx.IllegalArgument.New("excluded directory must not contain a parent reference: %s", dir)
		}
	}

	return nil
}

// Validate validates all configuration fields to ensure they are safe and secure.
func (c Config) Validate() error {
	if err := c.Ansible.Validate(); err != nil {
		return err
	}
	if err := c.Node.Validate(); err != nil {
		return err
	}
	if err := c.Setup.Validate(); err != nil {
		return err
	}
	return nil
}

var globalConfig = defaults()

func defaults() Config {
	return Config{
		Log: logx.LoggingConfig{
			Level:          "Info",
			ConsoleLogging: true,
			FileLogging:    false,
		},
		Ansible: AnsibleConfig{
			InstallDir:          "/opt/cnode-automation",
			InstallPlaybook:     "install-cardano-node.yml",
			UninstallPlaybook:   "uninstall-cardano-node.yml",
			Inventory:           "inventory.ini",
			ParameterTemplate:   "cardano-params.yml",
			UninstallParameters: "cardano-uninstall-params.yml",
			Collections:         []string{"community.general", "ansible.posix"},
		},
		Node: NodeConfig{
			Port:        core.DefaultCardanoPort,
			ServiceName: core.NodeServiceName,
			VersionsURL: "https://raw.githubusercontent.com/cardano-ops/cnode-automation/main/dependency-versions.json",
		},
		Setup: SetupConfig{
			ArchiveURL:  "https://github.com/cardano-ops/cnode-automation/archive/refs/heads/main.zip",
			RcFile:      ".bashrc",
			ExcludeDirs: []string{"src", ".github"},
		},
	}
}

// Initialize loads the configuration from the specified file. An empty path
// keeps the built-in defaults.
func Initialize(path string) error {
	if path != "" {
		globalConfig = defaults()
		viper.Reset()
		viper.SetConfigFile(path)
		viper.SetEnvPrefix("CNODECTL")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

		err := viper.ReadInConfig()
		if err != nil {
			return NotFoundError.Wrap(err, "failed to read config file: %s", path).
				WithProperty(errorx.PropertyPayload(), path)
		}

		if err := viper.Unmarshal(&globalConfig); err != nil {
			return errorx.IllegalFormat.Wrap(err, "failed to parse configuration").
				WithProperty(errorx.PropertyPayload(), path)
		}
	}

	if err := globalConfig.Validate(); err != nil {
		globalConfig = defaults()
		return errorx.IllegalState.Wrap(err, "invalid configuration").
			WithProperty(errorx.PropertyPayload(), path)
	}

	core.SetInstallDir(globalConfig.Ansible.InstallDir)

	return nil
}

// Get returns the loaded configuration.
func Get() Config {
	return globalConfig
}

func Set(c *Config) error {
	if err := c.Validate(); err != nil {
		return errorx.IllegalState.Wrap(err, "invalid configuration")
	}

	globalConfig = *c
	core.SetInstallDir(globalConfig.Ansible.InstallDir)
	return nil
}
