// SPDX-License-Identifier: Apache-2.0

package deps

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/joomcode/errorx"

	"github.com/cardano-ops/cnodectl/pkg/semver"
)

// VersionSet is the dependency versions the install playbook consumes. The
// set is published as JSON alongside the automation files.
type VersionSet struct {
	CardanoNode string `json:"cardano_node" yaml:"cardano_node_version"`
	IohkNix     string `json:"iohk_nix" yaml:"iohk_nix_version"`
	Libsodium   string `json:"libsodium" yaml:"libsodium_version"`
	Secp256k1   string `json:"secp256k1" yaml:"secp256k1_version"`
	Blst        string `json:"blst" yaml:"blst_version"`
	Ghc         string `json:"ghc" yaml:"ghc_version"`
	Cabal       string `json:"cabal" yaml:"cabal_version"`
}

var (
	ErrNamespace  = errorx.NewNamespace("deps")
	FetchError    = ErrNamespace.NewType("fetch_error")
	DecodeError   = ErrNamespace.NewType("decode_error")
	urlProperty   = errorx.RegisterPrintableProperty("url")
	maxBodyLength = int64(1 << 20)
)

// Fetcher retrieves the dependency version set from a remote JSON endpoint.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a new Fetcher with default settings
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewFetcherWithClient creates a Fetcher using the given client. Intended for
// tests against httptest servers.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch downloads and decodes the version set from url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*VersionSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, FetchError.Wrap(err, "invalid versions request").WithProperty(urlProperty, url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, FetchError.Wrap(err, "failed to fetch dependency versions").WithProperty(urlProperty, url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, FetchError.New("failed to fetch dependency versions: status %d", resp.StatusCode).
			WithProperty(urlProperty, url)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyLength))
	if err != nil {
		return nil, FetchError.Wrap(err, "failed to read dependency versions").WithProperty(urlProperty, url)
	}

	var vs VersionSet
	if err := json.Unmarshal(payload, &vs); err != nil {
		return nil, DecodeError.Wrap(err, "malformed dependency versions document").WithProperty(urlProperty, url)
	}

	if err := vs.Validate(); err != nil {
		return nil, err
	}

	return &vs, nil
}

// cabal uses a four-component release scheme, e.g. "3.12.1.0"
var cabalVersionRe = regexp.MustCompile(`^\d+(\.\d+){1,3}$`)

// Validate checks that every field of the set is present and that the fields
// published as semantic versions parse as such. Libsodium is exempt from
// version parsing: the playbooks pin it to a git commit.
func (vs *VersionSet) Validate() error {
	fields := map[string]string{
		"cardano_node": vs.CardanoNode,
		"iohk_nix":     vs.IohkNix,
		"libsodium":    vs.Libsodium,
		"secp256k1":    vs.Secp256k1,
		"blst":         vs.Blst,
		"ghc":          vs.Ghc,
		"cabal":        vs.Cabal,
	}

	for name, value := range fields {
		if value == "" {
			return DecodeError.New("dependency versions document is missing %q", name)
		}
	}

	semverFields := map[string]string{
		"cardano_node": vs.CardanoNode,
		"iohk_nix":     vs.IohkNix,
		"secp256k1":    vs.Secp256k1,
		"blst":         vs.Blst,
		"ghc":          vs.Ghc,
	}

	for name, value := range semverFields {
		if _, err := semver.New(value); err != nil {
			return DecodeError.Wrap(err, "dependency versions document has malformed %q", name)
		}
	}

	if !cabalVersionRe.MatchString(vs.Cabal) {
		return DecodeError.New("dependency versions document has malformed %q: %s", "cabal", vs.Cabal)
	}

	return nil
}
