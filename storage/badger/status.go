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
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/storage"
)

// StatusRepository implements storage.StatusRepository for BadgerDB.
type StatusRepository struct {
	backend *Backend
}

var _ storage.StatusRepository = (*StatusRepository)(nil)

// NewStatusRepository creates a new StatusRepository.
func NewStatusRepository(backend *Backend) *StatusRepository {
	return &StatusRepository{
		backend: backend,
	}
}

// PutStatus persists the status record for a stage.
func (r *StatusRepository) PutStatus(ctx context.Context, status *core.BuildStatus) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeBuildStatusKey(status.Stage)
		value := storage.MarshalBuildStatus(status)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetStatus retrieves the status record for a stage.
// Returns nil, nil if the stage has never run.
func (r *StatusRepository) GetStatus(ctx context.Context, stage string) (*core.BuildStatus, error) {
	var status *core.BuildStatus
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeBuildStatusKey(stage)
		item, err := tx.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			status, unmarshalErr = storage.UnmarshalBuildStatus(val)
			return unmarshalErr
		})
	}, false)

	return status, err
}

// ListStatuses retrieves all recorded stage statuses, ordered by stage name.
func (r *StatusRepository) ListStatuses(ctx context.Context) ([]*core.BuildStatus, error) {
	var results []*core.BuildStatus
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(buildStatusPrefix + ":")

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var status *core.BuildStatus
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				status, err = storage.UnmarshalBuildStatus(val)
				return err
			}); err != nil {
				return err
			}
			results = append(results, status)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.BuildStatus) int {
		return strings.Compare(a.Stage, b.Stage)
	})
	return results, nil
}
