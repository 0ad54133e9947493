// SPDX-License-Identifier: Apache-2.0

package params

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joomcode/errorx"
	"gopkg.in/yaml.v3"

	"github.com/cardano-ops/cnodectl/internal/deps"
	"github.com/cardano-ops/cnodectl/pkg/fsx"
)

const maxTemplateSize = 1 << 20

// Keys substituted into the parameter template.
const (
	KeyCardanoPort        = "cardano_port"
	KeyCardanoNodeVersion = "cardano_node_version"
	KeyIohkNixVersion     = "iohk_nix_version"
	KeyLibsodiumVersion   = "libsodium_version"
	KeySecp256k1Version   = "secp256k1_version"
	KeyBlstVersion        = "blst_version"
	KeyGhcVersion         = "ghc_version"
	KeyCabalVersion       = "cabal_version"
)

// PatchSet carries the values substituted into a parameter template.
// Zero/empty fields leave the template's value untouched.
type PatchSet struct {
	Port        int
	NodeVersion string
	Versions    *deps.VersionSet
}

func (ps PatchSet) values() map[string]string {
	m := map[string]string{}

	if ps.Port != 0 {
		m[KeyCardanoPort] = fmt.Sprintf("%d", ps.Port)
	}
	if ps.NodeVersion != "" {
		m[KeyCardanoNodeVersion] = ps.NodeVersion
	}
	if ps.Versions != nil {
		if ps.NodeVersion == "" && ps.Versions.CardanoNode != "" {
			m[KeyCardanoNodeVersion] = ps.Versions.CardanoNode
		}
		m[KeyIohkNixVersion] = ps.Versions.IohkNix
		m[KeyLibsodiumVersion] = ps.Versions.Libsodium
		m[KeySecp256k1Version] = ps.Versions.Secp256k1
		m[KeyBlstVersion] = ps.Versions.Blst
		m[KeyGhcVersion] = ps.Versions.Ghc
		m[KeyCabalVersion] = ps.Versions.Cabal
	}

	return m
}

// keyLine matches a top-level "key: value" line, capturing indentation, key
// and the spacing after the colon so substitution touches only the value.
var keyLine = regexp.MustCompile(`^(\s*)([A-Za-z0-9_]+):(\s*)(.*)$`)

// Patcher rewrites selected keys of a YAML parameter file. Substitution is
// line-based so every line except the substituted ones survives byte for
// byte, keeping comments and formatting intact for the Ansible run.
type Patcher struct {
	fileManager fsx.Manager
}

func NewPatcher(fileManager fsx.Manager) *Patcher {
	return &Patcher{fileManager: fileManager}
}

// Patch reads the template, substitutes the PatchSet values, verifies the
// result still parses as YAML and writes it to outPath.
func (p *Patcher) Patch(templatePath, outPath string, ps PatchSet) error {
	payload, err := p.fileManager.ReadFile(templatePath, maxTemplateSize)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to read parameter template: %s", templatePath)
	}

	patched := PatchContent(string(payload), ps)

	var check map[string]any
	if err := yaml.Unmarshal([]byte(patched), &check); err != nil {
		return errorx.IllegalFormat.Wrap(err, "patched parameter file is not valid YAML: %s", templatePath)
	}

	if err := p.fileManager.WriteFile(outPath, []byte(patched)); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to write patched parameter file: %s", outPath)
	}

	return nil
}

// PatchContent substitutes the PatchSet values into content line by line.
func PatchContent(content string, ps PatchSet) string {
	values := ps.values()
	if len(values) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		m := keyLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		value, ok := values[m[2]]
		if !ok {
			continue
		}

		spacing := m[3]
		if spacing == "" {
			spacing = " "
		}
		lines[i] = m[1] + m[2] + ":" + spacing + value
	}

	return strings.Join(lines, "\n")
}
