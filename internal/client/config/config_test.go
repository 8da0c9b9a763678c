package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	want := Config{
		ServerEndpointAddr: "127.0.0.1:50051",
		TokenFile:          ".authkernel-token",
		RequestTimeout:     10 * time.Second,
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_endpoint_addr": "json:1",
		"token_file": "/tmp/json.token",
		"request_timeout": "2s"
	}`), 0o600))

	c := load([]string{"-c", path, "-a", "flag:2", "-unknown", "x"})

	assert.Equal(t, "flag:2", c.ServerEndpointAddr)
	assert.Equal(t, "/tmp/json.token", c.TokenFile)
	assert.Equal(t, 2*time.Second, c.RequestTimeout)
}

func TestParseFlags(t *testing.T) {
	var c Config
	c.LoadDefaults()
	parseFlags(&c, []string{"-t", "tok", "-w", "3"})

	assert.Equal(t, "tok", c.TokenFile)
	assert.Equal(t, 3*time.Second, c.RequestTimeout)
}

func TestParseJson_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

	var c Config
	assert.Panics(t, func() { parseJson(&c, []string{"-c", bad}) })
	assert.Panics(t, func() { parseJson(&c, []string{"-c", filepath.Join(dir, "missing.json")}) })
}
