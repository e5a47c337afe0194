package selfupdate

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// release is a fake GitHub release for Update tests: a latest-release
// endpoint plus download endpoints for the archive and its checksums.
type release struct {
	tag       string
	asset     string
	archive   []byte
	checksums string
}

func (rel release) serve(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/abhisek/hintz/releases/latest":
			fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.com/%s"}`, rel.tag, rel.tag)
		case fmt.Sprintf("/abhisek/hintz/releases/download/%s/%s", rel.tag, rel.asset):
			_, _ = w.Write(rel.archive)
		case fmt.Sprintf("/abhisek/hintz/releases/download/%s/checksums.txt", rel.tag):
			_, _ = w.Write([]byte(rel.checksums))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// buildTarGz packs a single file into a tar.gz archive.
func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: name,
		Size: int64(len(content)),
		Mode: 0755,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestUpdate(t *testing.T) {
	// Update resolves the asset for the platform it runs on.
	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)
	if strings.HasSuffix(asset, ".zip") {
		t.Skip("test archives are tar.gz only")
	}

	binaryContent := []byte("new-hintz-binary")
	archive := buildTarGz(t, "hintz", binaryContent)

	t.Run("happy path", func(t *testing.T) {
		dir := t.TempDir()
		execPath := filepath.Join(dir, "hintz")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0755))

		server := release{
			tag:       "v2.0.0",
			asset:     asset,
			archive:   archive,
			checksums: fmt.Sprintf("%s  %s\n", sha256Hex(archive), asset),
		}.serve(t)

		checker := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)

		var stages []string
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, binaryContent, got)
		assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
	})

	t.Run("dev build", func(t *testing.T) {
		checker := NewChecker()
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		server := release{tag: "v1.0.0"}.serve(t)

		checker := NewChecker(WithBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		server := release{
			tag:       "v2.0.0",
			asset:     asset,
			archive:   archive,
			checksums: fmt.Sprintf("%064d  %s\n", 0, asset),
		}.serve(t)

		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("download failure", func(t *testing.T) {
		// Release metadata resolves but no assets are served.
		server := release{tag: "v2.0.0"}.serve(t)

		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})
}

func TestAssetNameFor(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		goarch  string
		want    string
		wantErr bool
	}{
		{"darwin amd64", "darwin", "amd64", "hintz_Darwin_all.tar.gz", false},
		{"darwin arm64", "darwin", "arm64", "hintz_Darwin_all.tar.gz", false},
		{"linux amd64", "linux", "amd64", "hintz_Linux_x86_64.tar.gz", false},
		{"linux arm64", "linux", "arm64", "hintz_Linux_arm64.tar.gz", false},
		{"linux 386", "linux", "386", "hintz_Linux_i386.tar.gz", false},
		{"windows amd64", "windows", "amd64", "hintz_Windows_x86_64.zip", false},
		{"windows arm64", "windows", "arm64", "hintz_Windows_arm64.zip", false},
		{"unsupported os", "freebsd", "amd64", "", true},
		{"unsupported arch", "linux", "mips", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := assetNameFor(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChecksums(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "normal",
			input: "abc123  hintz_Darwin_all.tar.gz\ndef456  hintz_Linux_x86_64.tar.gz\n",
			want: map[string]string{
				"hintz_Darwin_all.tar.gz":   "abc123",
				"hintz_Linux_x86_64.tar.gz": "def456",
			},
		},
		{
			name:  "empty",
			input: "",
			want:  map[string]string{},
		},
		{
			name:  "malformed lines skipped",
			input: "abc123  file.tar.gz\nbadline\n  \nfoo  bar  baz\nghi789  other.tar.gz\n",
			want: map[string]string{
				"file.tar.gz":  "abc123",
				"other.tar.gz": "ghi789",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseChecksums([]byte(tt.input)))
		})
	}
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hello world")

	t.Run("match", func(t *testing.T) {
		assert.NoError(t, verifyChecksum(data, sha256Hex(data)))
	})

	t.Run("mismatch", func(t *testing.T) {
		err := verifyChecksum(data, fmt.Sprintf("%064d", 0))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrChecksum)
	})
}

func TestExtractBinary(t *testing.T) {
	binaryContent := []byte("#!/bin/sh\necho hintz")

	t.Run("tar.gz", func(t *testing.T) {
		archive := buildTarGz(t, "hintz", binaryContent)
		got, err := extractBinary(archive, "hintz_Darwin_all.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, binaryContent, got)
	})

	t.Run("missing binary", func(t *testing.T) {
		archive := buildTarGz(t, "other-file", binaryContent)
		_, err := extractBinary(archive, "hintz_Darwin_all.tar.gz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestApplyUpdate(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "hintz")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0755))

	newData := []byte("new-binary-content")
	h := sha256.Sum256(newData)
	require.NoError(t, applyUpdate(newData, target, h[:]))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, newData, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}
