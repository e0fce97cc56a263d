package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// fileConfig mirrors the registration file layout: canteen IDs mapping to
// the identifiers they are published under.
//
//	{"canteens": {"1": ["stadtmitte", "mensa-stadtmitte"], "2": ["lichtwiese"]}}
type fileConfig struct {
	Canteens map[string][]string `json:"canteens"`
}

// FileRegistry is an immutable in-memory registration table loaded once at
// startup. Lookups never fail with anything but ErrUnknownIdentifier.
type FileRegistry struct {
	byIdentifier map[string]string
}

// LoadFile reads a JSON registration file and inverts it into an
// identifier-to-canteen table.
func LoadFile(path string) (*FileRegistry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("registry: open %s: %w", path, err)
	}
	defer f.Close()

	var cfg fileConfig
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("registry: decode %s: %w", path, err)
	}
	return FromMap(cfg.Canteens), nil
}

// FromMap builds a FileRegistry from a canteenID -> identifiers mapping.
func FromMap(canteens map[string][]string) *FileRegistry {
	byIdentifier := make(map[string]string)
	for canteenID, identifiers := range canteens {
		for _, identifier := range identifiers {
			byIdentifier[identifier] = canteenID
		}
	}
	return &FileRegistry{byIdentifier: byIdentifier}
}

func (r *FileRegistry) Resolve(_ context.Context, identifier string) (string, error) {
	id, ok := r.byIdentifier[identifier]
	if !ok {
		return "", ErrUnknownIdentifier
	}
	return id, nil
}
