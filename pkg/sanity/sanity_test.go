// SPDX-License-Identifier: Apache-2.0

package sanity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlphanumeric(t *testing.T) {
	require.Equal(t, "abc123", Alphanumeric("a-b_c 1.2/3"))
	require.Equal(t, "", Alphanumeric("!@#$%"))
}

func TestFilename(t *testing.T) {
	f, err := Filename("cardano-node_10.1")
	require.NoError(t, err)
	require.Equal(t, "cardano-node_101", f)

	_, err = Filename("///")
	require.ErrorIs(t, err, ErrInvalidFilename)
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "valid absolute path", path: "/opt/cnode-automation", want: "/opt/cnode-automation"},
		{name: "redundant slashes cleaned", path: "/opt//cnode-automation/", want: "/opt/cnode-automation"},
		{name: "empty path", path: "", wantErr: true},
		{name: "relative path", path: "opt/cnode", wantErr: true},
		{name: "traversal", path: "/opt/../etc/passwd", wantErr: true},
		{name: "shell metacharacters", path: "/opt/$(whoami)", wantErr: true},
		{name: "spaces", path: "/opt/my dir", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidateURL(t *testing.T) {
	require.NoError(t, ValidateURL("https://example.com/archive.zip", nil))
	require.Error(t, ValidateURL("http://example.com/archive.zip", nil))
	require.NoError(t, ValidateURL("http://example.com/archive.zip", &ValidateURLOptions{AllowHTTP: true}))
	require.Error(t, ValidateURL("ftp://example.com/file", nil))
	require.Error(t, ValidateURL("", nil))
	require.Error(t, ValidateURL("https://", nil))
}
