// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sumry/core"
	"github.com/poiesic/sumry/storage"
)

// SummaryRepository implements storage.SummaryRepository using BadgerDB.
type SummaryRepository struct {
	backend *Backend
}

var _ storage.SummaryRepository = (*SummaryRepository)(nil)

// NewSummaryRepository creates a new SummaryRepository.
//
// Returns storage.SummaryRepository interface to enforce abstraction.
func NewSummaryRepository(backend *Backend) (storage.SummaryRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &SummaryRepository{
		backend: backend,
	}, nil
}

// Close releases resources. SummaryRepository has no resources to release;
// the backend is closed by its owner.
func (r *SummaryRepository) Close() error {
	return nil
}

// PutSummary stores or replaces a summary record.
func (r *SummaryRepository) PutSummary(ctx context.Context, record *core.SummaryRecord) (*core.SummaryRecord, error) {
	if record == nil || record.Id == 0 {
		return nil, fmt.Errorf("%w: summary ID required", storage.ErrInvalidQuery)
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if err := core.ValidateSummaryRecord(record); err != nil {
		return nil, err
	}

	err := r.backend.Update(func(tx *badger.Txn) error {
		key := makeSummaryKey(record.Id)

		// Drop the stale date index entry when replacing
		old, err := readSummary(tx, key)
		if err != nil {
			return err
		}
		if old != nil {
			if err := tx.Delete(makeSummaryDateKey(old.CreatedAt, old.Id)); err != nil {
				return err
			}
		}

		if err := tx.Set(key, storage.MarshalSummaryRecord(record)); err != nil {
			return err
		}
		return tx.Set(makeSummaryDateKey(record.CreatedAt, record.Id), storage.MarshalID(record.Id))
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetSummary retrieves a summary by ID.
func (r *SummaryRepository) GetSummary(ctx context.Context, id core.ID) (*core.SummaryRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var result *core.SummaryRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readSummary(tx, makeSummaryKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteSummary removes a summary and its index entry.
func (r *SummaryRepository) DeleteSummary(ctx context.Context, id core.ID) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.Update(func(tx *badger.Txn) error {
		key := makeSummaryKey(id)

		// Read record to get the timestamp for index cleanup
		record, err := readSummary(tx, key)
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(makeSummaryDateKey(record.CreatedAt, record.Id)); err != nil {
			return err
		}
		return tx.Delete(key)
	})
}

// RecentSummaries returns up to limit summaries, most recent first.
func (r *SummaryRepository) RecentSummaries(ctx context.Context, limit int) ([]*core.SummaryRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", storage.ErrInvalidQuery)
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var results []*core.SummaryRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := summaryDateIndexPrefix()

		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = false
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Reverse iteration starts from the largest key carrying the prefix
		seek := append(append([]byte{}, prefix...), 0xFF)
		for iter.Seek(seek); iter.Valid() && len(results) < limit; iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			id, ok := idFromSummaryDateKey(iter.Item().Key())
			if !ok {
				continue
			}
			record, err := readSummary(tx, makeSummaryKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return results, nil
}

// readSummary reads a summary record. Returns nil, nil when the key is absent.
func readSummary(tx *badger.Txn, key []byte) (*core.SummaryRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.SummaryRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalSummaryRecord(val)
		return err
	})
	return record, err
}
