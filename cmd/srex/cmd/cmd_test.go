package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/srex/pkg/codec"
	"github.com/ssargent/srex/pkg/config"
	"github.com/ssargent/srex/pkg/image"
	"github.com/ssargent/srex/pkg/srecord"
)

func tempDir(t *testing.T) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "srex_cmd_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	return tmpDir
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestParseBinArg(t *testing.T) {
	path, addr, err := parseBinArg("boot.bin@0x8000")
	require.NoError(t, err)
	assert.Equal(t, "boot.bin", path)
	assert.Equal(t, uint64(0x8000), addr)

	path, addr, err = parseBinArg("dir@v2/app.bin@4096")
	require.NoError(t, err)
	assert.Equal(t, "dir@v2/app.bin", path)
	assert.Equal(t, uint64(4096), addr)

	for _, arg := range []string{"boot.bin", "@0x10", "boot.bin@", "boot.bin@zz"} {
		_, _, err := parseBinArg(arg)
		assert.Error(t, err, arg)
	}
}

func TestCreateCommand(t *testing.T) {
	tmpDir := tempDir(t)

	boot := writeFile(t, tmpDir, "boot.bin", []byte{1, 2, 3, 4})
	app := writeFile(t, tmpDir, "app.bin", []byte{5, 6})
	radio := writeFile(t, tmpDir, "radio.hex", []byte(":0400000001020304F2\n:00000001FF\n"))

	t.Run("binaries and intel hex", func(t *testing.T) {
		output := filepath.Join(tmpDir, "out.srec")
		var out bytes.Buffer

		err := runCreate(&out, image.DefaultSpec(), createOptions{
			output: output,
			bins:   []string{boot + "@0x1000", app + "@0x1004"},
			hexes:  []string{radio},
			header: "hi",
			start:  "0x1000",
		})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "10 bytes in 2 chunks")

		f, err := image.Load(output, image.DefaultSpec())
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3, 4}, f.MustGetRange(0, 4))
		assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, f.MustGetRange(0x1000, 0x1006))

		header, ok := f.HeaderData()
		assert.True(t, ok)
		assert.Equal(t, []byte("hi"), header)
		start, ok := f.StartAddress()
		assert.True(t, ok)
		assert.Equal(t, uint64(0x1000), start)
	})

	t.Run("overlapping inputs", func(t *testing.T) {
		output := filepath.Join(tmpDir, "overlap.srec")
		err := runCreate(&bytes.Buffer{}, image.DefaultSpec(), createOptions{
			output: output,
			bins:   []string{boot + "@0x1000", app + "@0x1002"},
		})
		assert.ErrorIs(t, err, codec.ErrOverlappingData)
		assert.NoFileExists(t, output)
	})

	t.Run("no inputs", func(t *testing.T) {
		err := runCreate(&bytes.Buffer{}, image.DefaultSpec(), createOptions{
			output: filepath.Join(tmpDir, "empty.srec"),
		})
		assert.ErrorIs(t, err, errNoInputs)
	})

	t.Run("invalid start address", func(t *testing.T) {
		err := runCreate(&bytes.Buffer{}, image.DefaultSpec(), createOptions{
			output: filepath.Join(tmpDir, "bad.srec"),
			bins:   []string{boot + "@0"},
			start:  "start",
		})
		assert.ErrorContains(t, err, "invalid start address")
	})
}

func TestMergeCommand(t *testing.T) {
	tmpDir := tempDir(t)

	a := srecord.New()
	require.NoError(t, a.Write(0x100, []byte{1, 2}))
	a.SetHeaderData([]byte("a"))
	pathA := filepath.Join(tmpDir, "a.s37")
	require.NoError(t, image.Save(pathA, a, image.DefaultSpec()))

	b := srecord.New()
	require.NoError(t, b.Write(0x102, []byte{3}))
	b.SetStartAddress(0x100)
	pathB := filepath.Join(tmpDir, "b.hex.zst")
	require.NoError(t, image.Save(pathB, b, image.DefaultSpec()))

	output := filepath.Join(tmpDir, "merged.srec")
	var out bytes.Buffer
	require.NoError(t, runMerge(&out, image.DefaultSpec(), []string{pathA, pathB}, output))
	assert.Contains(t, out.String(), "Merged 2 files")

	merged, err := image.Load(output, image.DefaultSpec())
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, merged.MustGetRange(0x100, 0x103))
	header, _ := merged.HeaderData()
	assert.Equal(t, []byte("a"), header)
	start, ok := merged.StartAddress()
	assert.True(t, ok)
	assert.Equal(t, uint64(0x100), start)

	// Every input is an overlap with itself
	err = runMerge(&bytes.Buffer{}, image.DefaultSpec(), []string{pathA, pathA}, output)
	assert.ErrorIs(t, err, codec.ErrOverlappingData)

	err = runMerge(&bytes.Buffer{}, image.DefaultSpec(), []string{filepath.Join(tmpDir, "missing.srec")}, output)
	assert.Error(t, err)
}

func TestInfoCommand(t *testing.T) {
	tmpDir := tempDir(t)

	f := srecord.New()
	require.NoError(t, f.Write(0x1000, []byte{0xDE, 0xAD, 0xBE, 0xEF}))
	require.NoError(t, f.Write(0x1010, []byte{0x01}))
	f.SetHeaderData([]byte("boot"))
	f.SetStartAddress(0x1000)
	path := filepath.Join(tmpDir, "app.srec")
	require.NoError(t, image.Save(path, f, image.DefaultSpec()))

	t.Run("table", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runInfo(&out, image.DefaultSpec(), path, infoOptions{format: "table", samples: 2}))

		text := out.String()
		assert.Contains(t, text, `"boot"`)
		assert.Contains(t, text, "0x00001000")
		assert.Contains(t, text, "5 bytes in 2 chunks")
		assert.Contains(t, text, "S1")
		assert.Contains(t, text, "0x00001000: dead")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runInfo(&out, image.DefaultSpec(), path, infoOptions{format: "json"}))

		var info map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &info))
		assert.Equal(t, "boot", info["header"])
		assert.Equal(t, float64(0x1000), info["start_address"])
		assert.Equal(t, "S1", info["data_record_type"])

		layout := info["layout"].(map[string]any)
		global := layout["global"].(map[string]any)
		assert.Equal(t, float64(2), global["chunks"])
	})

	t.Run("digest matches across formats", func(t *testing.T) {
		hexPath := filepath.Join(tmpDir, "app.hex")
		noHeader := f.Clone()
		noHeader.ClearHeaderData()
		require.NoError(t, image.Save(hexPath, noHeader, image.DefaultSpec()))

		var out bytes.Buffer
		require.NoError(t, runInfo(&out, image.DefaultSpec(), hexPath, infoOptions{format: "json"}))

		var info imageInfo
		require.NoError(t, json.Unmarshal(out.Bytes(), &info))
		assert.Nil(t, info.Header)
		assert.Equal(t, image.Digest(noHeader), parseDigest(t, info.Digest))
	})

	t.Run("unknown format", func(t *testing.T) {
		err := runInfo(&bytes.Buffer{}, image.DefaultSpec(), path, infoOptions{format: "xml"})
		assert.Error(t, err)
	})
}

func parseDigest(t *testing.T, s string) uint64 {
	t.Helper()
	v, err := parseAddress("0x" + s)
	require.NoError(t, err)
	return v
}

func TestGetCommand(t *testing.T) {
	tmpDir := tempDir(t)

	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}
	path := writeFile(t, tmpDir, "app.bin", data)
	spec := image.DefaultSpec()
	spec.BaseAddress = 0x2000

	var out bytes.Buffer
	require.NoError(t, runGet(&out, spec, path, 0x2002, 18))
	assert.Equal(t, "00002002  02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F 10 11\n"+
		"00002012  12 13\n", out.String())

	err := runGet(&bytes.Buffer{}, spec, path, 0x2010, 5)
	assert.ErrorIs(t, err, errRangeNotInImage)

	err = runGet(&bytes.Buffer{}, spec, path, 0x2000, 0)
	assert.Error(t, err)
}

func TestConfigInitCommand(t *testing.T) {
	tmpDir := tempDir(t)
	path := filepath.Join(tmpDir, "srex", "config.yaml")

	var out bytes.Buffer
	require.NoError(t, runConfigInit(&out, path, false))
	assert.Contains(t, out.String(), path)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	// Existing files are only replaced on request
	assert.Error(t, runConfigInit(&out, path, false))
	assert.NoError(t, runConfigInit(&out, path, true))
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		t.Setenv("HOME", tempDir(t))

		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), cfg)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(tempDir(t), "missing.yaml"))
		assert.ErrorContains(t, err, "failed to load config")
	})
}

func TestRootCommand(t *testing.T) {
	tmpDir := tempDir(t)

	cfg := config.DefaultConfig()
	cfg.Output.RecordSize = 2
	cfg.Output.AddressWidth = "32"
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, config.SaveConfig(cfg, configPath))

	bin := writeFile(t, tmpDir, "app.bin", []byte{1, 2, 3})
	output := filepath.Join(tmpDir, "app.srec")

	// Step 1: create through the command tree so the configuration applies
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", configPath, "create", "-o", output, "--bin", bin + "@0x10"})
	require.NoError(t, rootCmd.Execute())

	// Step 2: the output uses the configured record size and width
	text, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "S307000000100102E5\n"+
		"S3060000001203E4\n"+
		"S5030002FA\n", string(text))
}
