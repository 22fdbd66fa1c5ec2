package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jwebster45206/urea-quest/pkg/game"
)

//go:embed schema/snapshot.schema.json
var snapshotSchemaJSON string

const snapshotSchemaURL = "https://urea-quest.local/schemas/snapshot.schema.json"

// ErrInvalidSnapshot wraps every decode or schema failure.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

var snapshotSchema = jsonschema.MustCompileString(snapshotSchemaURL, snapshotSchemaJSON)

// DecodeSnapshot validates data against the snapshot schema and decodes it.
func DecodeSnapshot(data []byte) (*game.Snapshot, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := snapshotSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return &snap, nil
}

// EncodeSnapshot marshals snap for storage.
func EncodeSnapshot(snap *game.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, errors.New("snapshot cannot be nil")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}
