package vgg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_BuiltinRows(t *testing.T) {
	want := map[string]string{
		"VGG11": "[64 M 128 M 256 256 M 512 512 M 512 512 M]",
		"VGG13": "[64 64 M 128 128 M 256 256 M 512 512 M 512 512 M]",
		"VGG16": "[64 64 M 128 128 M 256 256 256 M 512 512 512 M 512 512 512 M]",
		"VGG19": "[64 64 M 128 128 M 256 256 256 256 M 512 512 512 512 M 512 512 512 512 M]",
	}

	for name, table := range want {
		t.Run(name, func(t *testing.T) {
			row, err := Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, table, row.String())
			assert.NoError(t, row.Validate())
		})
	}
}

func TestLookup_PoolAndChannelInvariants(t *testing.T) {
	convs := map[string]int{"VGG11": 8, "VGG13": 10, "VGG16": 13, "VGG19": 16}

	for _, name := range Names() {
		row, err := Lookup(name)
		require.NoError(t, err)

		assert.Equal(t, 5, row.PoolCount(), name)
		assert.Equal(t, convs[name], row.ConvCount(), name)
		assert.Equal(t, 512, row.OutChannels(InputChannels), name)
		assert.Equal(t, KindPool, row[len(row)-1].Kind(), name)
	}
}

func TestLookup_Unknown(t *testing.T) {
	for _, name := range []string{"VGG12", "vgg11", "", "ResNet50"} {
		row, err := Lookup(name)
		assert.Nil(t, row)
		assert.ErrorIs(t, err, ErrUnknownArchitecture, "name %q", name)
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	row, err := Lookup("VGG11")
	require.NoError(t, err)
	row[0] = Channels(1)

	again, err := Lookup("VGG11")
	require.NoError(t, err)
	assert.Equal(t, 64, again[0].Channels())
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"VGG11", "VGG13", "VGG16", "VGG19"}, names)

	names[0] = "changed"
	assert.Equal(t, "VGG11", Names()[0])
}

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	assert.Equal(t, Names(), c.Names())

	custom := Row{Channels(32), Pool(), Channels(512), Pool()}
	require.NoError(t, c.Add("tiny", custom))

	got, err := c.Lookup("tiny")
	require.NoError(t, err)
	assert.Equal(t, custom, got)
	assert.Equal(t, []string{"VGG11", "VGG13", "VGG16", "VGG19", "tiny"}, c.Names())

	builtinRow, err := c.Lookup("VGG16")
	require.NoError(t, err)
	assert.Equal(t, 13, builtinRow.ConvCount())

	_, err = c.Lookup("missing")
	assert.ErrorIs(t, err, ErrUnknownArchitecture)
}

func TestCatalog_AddErrors(t *testing.T) {
	c := NewCatalog()

	tests := []struct {
		name    string
		arch    string
		row     Row
		wantErr error
	}{
		{"duplicate_builtin", "VGG11", Row{Channels(8)}, ErrDuplicateArchitecture},
		{"empty_row", "a", Row{}, ErrInvalidRow},
		{"zero_channels", "b", Row{Channels(0)}, ErrInvalidRow},
		{"zero_stage", "c", Row{Channels(8), {}}, ErrInvalidRow},
		{"empty_name", "", Row{Channels(8)}, ErrInvalidRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Add(tt.arch, tt.row)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	require.NoError(t, c.Add("x", Row{Channels(8)}))
	assert.ErrorIs(t, c.Add("x", Row{Channels(8)}), ErrDuplicateArchitecture)
}

func TestCatalog_DoesNotAliasInput(t *testing.T) {
	c := NewCatalog()
	row := Row{Channels(8), Pool()}
	require.NoError(t, c.Add("alias", row))

	row[0] = Channels(99)

	got, err := c.Lookup("alias")
	require.NoError(t, err)
	assert.Equal(t, 8, got[0].Channels())
}

func TestStage(t *testing.T) {
	assert.Equal(t, KindConv, Channels(64).Kind())
	assert.Equal(t, 64, Channels(64).Channels())
	assert.Equal(t, KindPool, Pool().Kind())
	assert.Equal(t, 0, Pool().Channels())

	assert.Equal(t, "64", Channels(64).String())
	assert.Equal(t, "M", Pool().String())
	assert.Equal(t, "StageKind(0)", Stage{}.String())
	assert.Equal(t, "conv", KindConv.String())
}

func TestRow_OutChannelsWithoutConv(t *testing.T) {
	assert.Equal(t, 3, Row{Pool(), Pool()}.OutChannels(3))
}
