// SPDX-License-Identifier: Apache-2.0

package semver

import (
	"fmt"
	"regexp"
	"strings"

	masterminds "github.com/Masterminds/semver/v3"
	"github.com/joomcode/errorx"
)

// RegexDottedVersion matches a dotted version with two or three numeric components,
// e.g. "10.1" or "10.1.3". This is the format Cardano node releases are tagged with.
const RegexDottedVersion = `^\d+(\.\d+){1,2}$`

var dottedVersionRe = regexp.MustCompile(RegexDottedVersion)

// Semver is a parsed version with a lenient grammar: it accepts an optional "v"
// prefix and two-component versions such as "10.1" in addition to full
// major.minor.patch versions.
type Semver struct {
	raw    string
	parsed *masterminds.Version
}

// New parses s into a Semver. Missing minor or patch components default to zero.
func New(s string) (*Semver, error) {
	raw := strings.TrimSpace(s)

	normalized := strings.TrimPrefix(raw, "v")
	switch strings.Count(normalized, ".") {
	case 0:
		normalized += ".0.0"
	case 1:
		normalized += ".0"
	}

	v, err := masterminds.StrictNewVersion(normalized)
	if err != nil {
		return nil, errorx.IllegalFormat.Wrap(err, "invalid version: %s", s)
	}

	return &Semver{raw: raw, parsed: v}, nil
}

// IsDottedVersion reports whether s is a bare dotted version with two or three
// numeric components (no "v" prefix, no pre-release or build metadata).
func IsDottedVersion(s string) bool {
	return dottedVersionRe.MatchString(s)
}

// Raw returns the original string the version was parsed from.
func (s *Semver) Raw() string {
	return s.raw
}

// Major returns the major component.
func (s *Semver) Major() uint64 {
	return s.parsed.Major()
}

// Minor returns the minor component.
func (s *Semver) Minor() uint64 {
	return s.parsed.Minor()
}

// Patch returns the patch component.
func (s *Semver) Patch() uint64 {
	return s.parsed.Patch()
}

// Compare returns -1, 0, or 1 if s is less than, equal to, or greater than o.
func (s *Semver) Compare(o *Semver) int {
	return s.parsed.Compare(o.parsed)
}

// AtLeast reports whether s is greater than or equal to the given version.
func (s *Semver) AtLeast(min string) (bool, error) {
	m, err := New(min)
	if err != nil {
		return false, err
	}
	return s.Compare(m) >= 0, nil
}

// String renders the version in major.minor.patch form.
func (s *Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", s.Major(), s.Minor(), s.Patch())
}
