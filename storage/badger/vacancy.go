package badger

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/storage"
)

// VacancyRepository implements storage.VacancyRepository for BadgerDB.
type VacancyRepository struct {
	backend *Backend
}

var _ storage.VacancyRepository = (*VacancyRepository)(nil)

// NewVacancyRepository creates a new VacancyRepository.
func NewVacancyRepository(backend *Backend) (*VacancyRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &VacancyRepository{backend: backend}, nil
}

// Close releases repository resources. The shared backend is closed by its owner.
func (r *VacancyRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *VacancyRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutVacancy inserts or replaces a vacancy by Id.
func (r *VacancyRepository) PutVacancy(ctx context.Context, vacancy *core.Vacancy) (*core.Vacancy, error) {
	if err := core.ValidateVacancy(vacancy); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		old, err := r.readVacancy(tx, makeVacancyKey(vacancy.Id))
		if err != nil {
			return err
		}
		if old != nil {
			vacancy.CreatedAt = old.CreatedAt
		} else if vacancy.CreatedAt.IsZero() {
			vacancy.CreatedAt = now
		}
		vacancy.UpdatedAt = now

		value := storage.MarshalVacancy(vacancy)
		if err := tx.Set(makeVacancyKey(vacancy.Id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return vacancy, err
}

// GetVacancy retrieves a single vacancy by Id.
func (r *VacancyRepository) GetVacancy(ctx context.Context, id string) (*core.Vacancy, error) {
	var result *core.Vacancy
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readVacancy(tx, makeVacancyKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListVacancies retrieves all vacancies, ordered by creation time then Id.
func (r *VacancyRepository) ListVacancies(ctx context.Context) ([]*core.Vacancy, error) {
	var results []*core.Vacancy
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(vacancyPrefix + ":")

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var vacancy *core.Vacancy
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				vacancy, err = storage.UnmarshalVacancy(val)
				return err
			}); err != nil {
				return err
			}
			results = append(results, vacancy)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Vacancy) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Id, b.Id)
	})
	return results, nil
}

// FindOpenVacancyByRole finds an open vacancy for a role category.
// Vacancy counts are small, so this scans rather than maintaining an index.
func (r *VacancyRepository) FindOpenVacancyByRole(ctx context.Context, roleCategory string) (*core.Vacancy, error) {
	vacancies, err := r.ListVacancies(ctx)
	if err != nil {
		return nil, err
	}
	for _, vacancy := range vacancies {
		if vacancy.Status == core.VacancyOpen && strings.EqualFold(vacancy.RoleCategory, roleCategory) {
			return vacancy, nil
		}
	}
	return nil, storage.ErrNotFound
}

// DeleteVacancy removes a vacancy by Id.
func (r *VacancyRepository) DeleteVacancy(ctx context.Context, id string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeVacancyKey(id)
		vacancy, err := r.readVacancy(tx, key)
		if err != nil {
			return err
		}
		if vacancy == nil {
			return storage.ErrNotFound
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readVacancy reads a vacancy from the transaction.
func (r *VacancyRepository) readVacancy(tx *badger.Txn, key []byte) (*core.Vacancy, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var vacancy *core.Vacancy
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		vacancy, unmarshalErr = storage.UnmarshalVacancy(val)
		return unmarshalErr
	})
	return vacancy, err
}
