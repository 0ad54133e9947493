// SPDX-License-Identifier: Apache-2.0

package version

import (
	"encoding/json"
	"runtime"
	"strings"

	"github.com/joomcode/errorx"
	"gopkg.in/yaml.v3"
)

// Info is the build identity reported by the version command.
type Info struct {
	Number    string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	GoVersion string `json:"go" yaml:"go"`
}

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Format renders the info in the requested output format.
func (v Info) Format(format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		output, err := json.Marshal(v)
		if err != nil {
			return "", errorx.IllegalFormat.Wrap(err, "failed to render version info as JSON")
		}
		return string(output), nil
	case FormatYAML:
		output, err := yaml.Marshal(v)
		if err != nil {
			return "", errorx.IllegalFormat.Wrap(err, "failed to render version info as YAML")
		}
		return string(output), nil
	default:
		return "", errorx.IllegalFormat.New("unsupported format: %s", format)
	}
}

// Get returns the info for the running binary.
func Get() Info {
	return Info{
		Number:    Number(),
		Commit:    Commit(),
		GoVersion: runtime.Version(),
	}
}
