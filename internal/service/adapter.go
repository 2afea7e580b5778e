package service

import (
	"encoding/json"
	"fmt"
	"os"
)

// AdapterEntry is one fine-tuned centroid: an embedding averaged
// offline from real photos of a specific card in a specific deck.
type AdapterEntry struct {
	Vector  []float32 `json:"vector"`
	Samples int       `json:"samples"`
}

// AdapterFile maps deck style to canonical card name to centroid.
type AdapterFile map[string]map[string]AdapterEntry

// LoadAdapterFile reads the adapter cache and unit-normalizes every
// centroid. A missing file is not an error; every deck simply has no
// adapter vectors.
func LoadAdapterFile(path string) (AdapterFile, error) {
	if path == "" {
		return AdapterFile{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return AdapterFile{}, nil
		}
		return nil, fmt.Errorf("failed to read adapter file: %w", err)
	}

	var file AdapterFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("malformed adapter file %s: %w", path, err)
	}

	for _, cards := range file {
		for name, entry := range cards {
			entry.Vector = l2Normalize(entry.Vector)
			cards[name] = entry
		}
	}
	return file, nil
}

// Centroid returns the adapter vector for a card, or nil when the deck
// or card has no entry.
func (f AdapterFile) Centroid(deckStyle, canonicalName string) []float32 {
	cards, ok := f[deckStyle]
	if !ok {
		return nil
	}
	entry, ok := cards[canonicalName]
	if !ok || len(entry.Vector) == 0 {
		return nil
	}
	return entry.Vector
}
