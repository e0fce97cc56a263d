package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFile_ResolvesAllIdentifiers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"canteens": {
			"1": ["stadtmitte", "mensa-stadtmitte"],
			"2": ["lichtwiese"]
		}
	}`), 0o600))

	reg, err := LoadFile(path)
	require.NoError(t, err)

	ctx := context.Background()
	for identifier, want := range map[string]string{
		"stadtmitte":       "1",
		"mensa-stadtmitte": "1",
		"lichtwiese":       "2",
	} {
		got, err := reg.Resolve(ctx, identifier)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err = reg.Resolve(ctx, "nope")
	require.ErrorIs(t, err, ErrUnknownIdentifier)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"canteens": [`), 0o600))
	_, err := LoadFile(path)
	require.Error(t, err)
}
