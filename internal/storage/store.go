package storage

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"planner/internal/logging"
	"planner/internal/model"
)

// RecordKey is the slot key holding the whole data graph.
const RecordKey = "plannerData"

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "https://planner.local/schema/planner-data.json"

// Store loads and saves model.Data through a Slot.
type Store struct {
	slot   Slot
	schema *jsonschema.Schema
	logger *log.Logger
}

func NewStore(slot Slot, logger *log.Logger) (*Store, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{slot: slot, schema: schema, logger: logger}, nil
}

// Load returns the stored graph, or the seeded defaults when the record is
// missing, unreadable or structurally invalid. It never fails.
func (s *Store) Load(ctx context.Context) model.Data {
	raw, ok, err := s.slot.Get(ctx, RecordKey)
	if err != nil {
		s.logger.Warn("read stored data, using defaults", "err", err)
		return model.DefaultData()
	}
	if !ok {
		s.logger.Info("no stored data, seeding defaults")
		return model.DefaultData()
	}
	data, err := s.decode(raw)
	if err != nil {
		s.logger.Warn("stored data is invalid, using defaults", "err", err)
		return model.DefaultData()
	}
	s.logger.Debug("loaded data", "lists", len(data.Lists), "tasks", len(data.Tasks))
	return data
}

// Save overwrites the record with the full graph.
func (s *Store) Save(ctx context.Context, data model.Data) error {
	raw, err := Encode(data)
	if err != nil {
		return err
	}
	if err := s.slot.Put(ctx, RecordKey, raw); err != nil {
		return fmt.Errorf("write %s: %w", RecordKey, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.slot.Close()
}

func (s *Store) decode(raw []byte) (model.Data, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Data{}, fmt.Errorf("parse: %w", err)
	}
	if err := s.schema.Validate(doc); err != nil {
		return model.Data{}, fmt.Errorf("schema: %w", err)
	}
	var data model.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.Data{}, fmt.Errorf("decode: %w", err)
	}
	if data.Tasks == nil {
		data.Tasks = []model.Task{}
	}
	if err := data.Validate(); err != nil {
		return model.Data{}, err
	}
	return data, nil
}

// Encode is the canonical serialization of the data graph.
func Encode(data model.Data) ([]byte, error) {
	if data.Tasks == nil {
		data.Tasks = []model.Task{}
	}
	if data.Lists == nil {
		data.Lists = []model.List{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode data: %w", err)
	}
	return raw, nil
}
