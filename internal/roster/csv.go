package roster

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/jszwec/csvutil"
	"go.uber.org/zap"

	"github.com/cris-labs/cris/internal/model"
)

// CSVStore implements Store backed by a single flat CSV file. Appends rewrite
// the whole file through a temp file in the same directory, so a crashed or
// failed write never leaves a partial row visible.
type CSVStore struct {
	path string

	mu      sync.RWMutex
	records []model.Customer
	ids     map[string]bool
}

// NewCSV creates a store for the CSV file at path. Call Load before use.
func NewCSV(path string) *CSVStore {
	return &CSVStore{path: path, ids: map[string]bool{}}
}

// requiredColumns is the full header of the durable table, derived from the
// customer record's csv tags.
func requiredColumns() ([]string, error) {
	return csvutil.Header(model.Customer{}, "csv")
}

func (s *CSVStore) Load(ctx context.Context) ([]model.Customer, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, storageErr("open table", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	dec, err := csvutil.NewDecoder(r)
	if err != nil {
		return nil, storageErr("read header", err)
	}

	if err := checkSchema(dec.Header()); err != nil {
		return nil, err
	}

	var records []model.Customer
	ids := map[string]bool{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, storageErr("load cancelled", err)
		}
		var c model.Customer
		if err := dec.Decode(&c); err == io.EOF {
			break
		} else if err != nil {
			return nil, storageErr("decode row", err)
		}
		if ids[c.ID] {
			return nil, storageErr("load table", errors.New("duplicate customer id "+c.ID))
		}
		ids[c.ID] = true
		records = append(records, c)
	}

	s.mu.Lock()
	s.records = records
	s.ids = ids
	s.mu.Unlock()

	zap.L().Info("roster loaded",
		zap.String("path", s.path),
		zap.Int("customers", len(records)),
	)
	return s.All(), nil
}

// checkSchema fails loudly at load time when a required column is absent,
// rather than at first field access.
func checkSchema(header []string) error {
	required, err := requiredColumns()
	if err != nil {
		return storageErr("derive schema", err)
	}
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}
	for _, col := range required {
		if !present[col] {
			return storageErr("schema check", errors.New("missing column "+col))
		}
	}
	return nil
}

func (s *CSVStore) Append(ctx context.Context, c model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := c.ValidateForAppend(s.ids); err != nil {
		return err
	}

	next := make([]model.Customer, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = append(next, c)

	if err := s.writeAll(ctx, next); err != nil {
		return err
	}

	s.records = next
	s.ids[c.ID] = true

	zap.L().Info("customer appended",
		zap.String("customer_id", c.ID),
		zap.String("status", string(c.Status)),
	)
	return nil
}

// writeAll rewrites the whole table: encode to a temp file, fsync, rename over
// the target.
func (s *CSVStore) writeAll(ctx context.Context, records []model.Customer) error {
	if err := ctx.Err(); err != nil {
		return storageErr("write cancelled", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".roster-*.csv")
	if err != nil {
		return storageErr("create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	enc := csvutil.NewEncoder(w)
	if err := enc.EncodeHeader(model.Customer{}); err != nil {
		tmp.Close()
		return storageErr("write header", err)
	}
	for i := range records {
		if err := enc.Encode(records[i]); err != nil {
			tmp.Close()
			return storageErr("write row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return storageErr("flush table", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return storageErr("sync table", err)
	}
	if err := tmp.Close(); err != nil {
		return storageErr("close temp file", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return storageErr("replace table", err)
	}
	return nil
}

func (s *CSVStore) All() []model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Customer, len(s.records))
	copy(out, s.records)
	return out
}
