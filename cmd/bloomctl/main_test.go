package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"bloomset/internal/common"
	"bloomset/internal/filter"
	"bloomset/internal/hashing"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	prev := common.LoggingEnabled
	common.LoggingEnabled = false
	t.Cleanup(func() { common.LoggingEnabled = prev })

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"bloomctl"}, args...))
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bloomctl.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParamsFromFlags(t *testing.T) {
	out, err := runApp(t, "params", "-n", "100", "-p", "0.01")
	require.NoError(t, err)
	require.Contains(t, out, "size=959 hash_count=7 bytes=120\n")
	require.Contains(t, out, "theoretical fp rate at n=100: ")
}

func TestParamsExplicitSize(t *testing.T) {
	out, err := runApp(t, "params", "-size", "1000000", "-k", "5")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "size=1000000 hash_count=5 bytes=125000\n"), out)
}

func TestParamsInvalid(t *testing.T) {
	_, err := runApp(t, "params", "-n", "100", "-p", "1.5")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestSeedRange(t *testing.T) {
	tests := []struct {
		seed  string
		valid bool
	}{
		{"0", true},
		{"4294967295", true},
		{"4294967296", false},
		{"18446744073709551615", false},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			out, err := runApp(t, "dumpconfig", "-seed", tt.seed)
			if tt.valid {
				require.NoError(t, err)
				require.Contains(t, out, "Seed = "+tt.seed+"\n")
				return
			}
			if strconv.IntSize == 32 {
				t.Skip("flag parsing rejects values above MaxUint32 on 32-bit platforms")
			}
			require.ErrorIs(t, err, filter.ErrInvalidConfiguration)
			require.Contains(t, err.Error(), "seed "+tt.seed+" out of range")
		})
	}
}

func TestParamsFromConfigFile(t *testing.T) {
	path := writeConfig(t, `
[Filter]
Expected = 1000
Rate = 0.01
`)
	out, err := runApp(t, "--config", path, "params")
	require.NoError(t, err)
	require.Contains(t, out, "size=9586 hash_count=7")

	// Flags win over the file.
	out, err = runApp(t, "--config", path, "params", "-n", "100")
	require.NoError(t, err)
	require.Contains(t, out, "size=959 hash_count=7")
}

func TestConfigUnknownField(t *testing.T) {
	path := writeConfig(t, `
[Filter]
Capacity = 10
`)
	_, err := runApp(t, "--config", path, "params")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Capacity")
}

func TestDumpConfigRoundTrip(t *testing.T) {
	out, err := runApp(t, "dumpconfig", "-n", "5000", "-hasher", hashing.SeededName, "-workers", "2")
	require.NoError(t, err)
	require.Contains(t, out, "[Filter]")
	require.Contains(t, out, "[Evaluate]")

	path := writeConfig(t, out)
	cfg := defaultConfig()
	require.NoError(t, loadConfig(path, &cfg))
	require.Equal(t, uint64(5000), cfg.Filter.Expected)
	require.Equal(t, hashing.SeededName, cfg.Filter.Hasher)
	require.Equal(t, 2, cfg.Evaluate.Workers)
}

func TestFPRate(t *testing.T) {
	out, err := runApp(t, "fprate", "-n", "2000", "-p", "0.05",
		"-inserted", "2000", "-probes", "20000", "-workers", "3")
	require.NoError(t, err)
	require.Contains(t, out, "hasher=double")
	require.Contains(t, out, "false positives: ")
	require.Contains(t, out, "/20000\n")
}

func TestFPRateUnknownHasher(t *testing.T) {
	_, err := runApp(t, "fprate", "-hasher", "fnv", "-inserted", "1", "-probes", "1")
	require.ErrorIs(t, err, hashing.ErrUnknownHasher)
}

func TestFilterConfigBuild(t *testing.T) {
	cfg := defaultConfig().Filter
	cfg.Size = 4096
	cfg.HashCount = 3
	f, err := cfg.build()
	require.NoError(t, err)
	require.Equal(t, uint64(4096), f.Size())
	require.Equal(t, uint32(3), f.HashCount())

	// Only one of Size/HashCount set falls back to the estimate.
	cfg.HashCount = 0
	size, k, err := cfg.params()
	require.NoError(t, err)
	require.NotEqual(t, int64(4096), size)
	require.Equal(t, 7, k)
}
