package archfile

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vgg/internal/ctxlog"
	"github.com/born-ml/vgg/internal/vgg"
)

func TestParse(t *testing.T) {
	src := []byte(`
architecture "tiny" {
  description = "two blocks"
  stages      = [8, "M", 16, 16, "M"]
}
`)

	defs, err := Parse(src, "tiny.hcl")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Equal(t, "tiny", def.Name)
	assert.Equal(t, "two blocks", def.Description)
	assert.Equal(t, vgg.Row{vgg.Channels(8), vgg.Pool(), vgg.Channels(16), vgg.Channels(16), vgg.Pool()}, def.Row)
}

func TestParse_MatchesBuiltinNotation(t *testing.T) {
	src := []byte(`
architecture "copy" {
  stages = [64, 64, "M", 128, 128, "M", 256, 256, 256, "M", 512, 512, 512, "M", 512, 512, 512, "M"]
}
`)

	defs, err := Parse(src, "copy.hcl")
	require.NoError(t, err)

	want, err := vgg.Lookup("VGG16")
	require.NoError(t, err)
	assert.Equal(t, want, defs[0].Row)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"unknown_marker", `architecture "a" { stages = [64, "X"] }`, `unknown marker "X"`},
		{"zero_channels", `architecture "a" { stages = [0, "M"] }`, "must be positive"},
		{"negative_channels", `architecture "a" { stages = [-8] }`, "must be positive"},
		{"fractional", `architecture "a" { stages = [1.5] }`, "not an integer"},
		{"bool", `architecture "a" { stages = [true] }`, "expected a number"},
		{"not_a_list", `architecture "a" { stages = "M" }`, "Invalid stages"},
		{"empty", `architecture "a" { stages = [] }`, "empty row"},
		{"missing_stages", `architecture "a" { }`, "stages"},
		{"missing_label", `architecture { stages = [8] }`, "label"},
		{"syntax", `architecture "a" { stages = [8 }`, "tiny.hcl"},
		{"duplicate", `
architecture "a" { stages = [8] }
architecture "a" { stages = [16] }
`, "defined twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := Parse([]byte(tt.src), "tiny.hcl")
			assert.Nil(t, defs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	defs, err := LoadFile(ctx, "testdata/custom.hcl")
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "VGG11-slim", defs[0].Name)
	assert.Equal(t, 5, defs[0].Row.PoolCount())
	assert.Equal(t, "VGG8", defs[1].Name)
	assert.Empty(t, defs[1].Description)

	assert.Contains(t, buf.String(), "architectures=2")
	assert.Contains(t, buf.String(), "name=VGG8")
}

func TestLoadFile_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := LoadFile(ctx, "testdata/bad_marker.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown marker "P"`)

	_, err = LoadFile(ctx, "testdata/missing.hcl")
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	defs, err := LoadFile(context.Background(), "testdata/custom.hcl")
	require.NoError(t, err)

	catalog := vgg.NewCatalog()
	require.NoError(t, Register(catalog, defs))

	row, err := catalog.Lookup("VGG8")
	require.NoError(t, err)
	assert.Equal(t, 512, row.OutChannels(vgg.InputChannels))

	assert.ErrorIs(t, Register(catalog, defs), vgg.ErrDuplicateArchitecture)
}
