package badger

import (
	"context"
	"errors"
	"iter"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/storage"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// errStopIteration signals that an iterator consumer stopped early.
var errStopIteration = errors.New("stop iteration")

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) (*ProfileRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &ProfileRepository{backend: backend}, nil
}

// Close releases repository resources. The shared backend is closed by its owner.
func (r *ProfileRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ProfileRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutProfiles inserts or replaces one or more profiles by Id.
func (r *ProfileRepository) PutProfiles(ctx context.Context, profiles ...*core.CandidateProfile) ([]*core.CandidateProfile, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, profile := range profiles {
			if profile.Id == 0 && profile.SourceFile != "" {
				profile.Id = core.IDFromContent(profile.SourceFile)
			}
			if profile.Stage == 0 {
				profile.Stage = core.StageUploaded
			}
			if profile.IngestedAt.IsZero() {
				profile.IngestedAt = time.Now().UTC()
			}
			if profile.ContentHash == 0 {
				profile.ContentHash = core.HashContent(profile.ResumeText)
			}
			if err := core.ValidateProfile(profile); err != nil {
				return err
			}

			// Re-ingesting the same source replaces the record; drop index
			// entries that pointed at the previous version.
			old, err := r.readProfile(tx, makeProfileKey(profile.Id))
			if err != nil {
				return err
			}
			if old != nil {
				if !old.IngestedAt.Equal(profile.IngestedAt) {
					if err := tx.Delete(makeProfileDateKey(old.IngestedAt, old.Id)); err != nil {
						return err
					}
				}
				if old.RoleCategory != profile.RoleCategory && old.RoleCategory != "" {
					if err := tx.Delete(makeProfileRoleKey(old.RoleCategory, old.Id)); err != nil {
						return err
					}
				}
			}

			// Store primary record
			key := makeProfileKey(profile.Id)
			value := storage.MarshalProfile(profile)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update ingestion-time index
			dateKey := makeProfileDateKey(profile.IngestedAt, profile.Id)
			if err := tx.Set(dateKey, storage.MarshalID(profile.Id)); err != nil {
				return err
			}

			// Update role index
			if profile.RoleCategory != "" {
				roleKey := makeProfileRoleKey(profile.RoleCategory, profile.Id)
				if err := tx.Set(roleKey, storage.MarshalID(profile.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return profiles, err
}

// GetProfile retrieves a single profile by Id.
func (r *ProfileRepository) GetProfile(ctx context.Context, id core.ID) (*core.CandidateProfile, error) {
	var result *core.CandidateProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readProfile(tx, makeProfileKey(id))
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

// GetProfiles retrieves multiple profiles by their Ids.
func (r *ProfileRepository) GetProfiles(ctx context.Context, ids ...core.ID) ([]*core.CandidateProfile, error) {
	var result []*core.CandidateProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			profile, err := r.readProfile(tx, makeProfileKey(id))
			if err != nil {
				return err
			}
			if profile != nil {
				result = append(result, profile)
			}
		}
		return nil
	}, false)
	return result, err
}

// DeleteProfiles removes profiles by their Ids.
func (r *ProfileRepository) DeleteProfiles(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeProfileKey(id)

			// Read record to get metadata for index cleanup
			profile, err := r.readProfile(tx, key)
			if err != nil {
				return err
			}
			if profile == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeProfileDateKey(profile.IngestedAt, profile.Id)); err != nil {
				return err
			}
			if profile.RoleCategory != "" {
				if err := tx.Delete(makeProfileRoleKey(profile.RoleCategory, profile.Id)); err != nil {
					return err
				}
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// AllProfiles returns a lazy sequence over every stored profile, ordered by
// ingestion time ascending. Each range call starts a fresh snapshot iteration.
func (r *ProfileRepository) AllProfiles(ctx context.Context) iter.Seq2[*core.CandidateProfile, error] {
	return func(yield func(*core.CandidateProfile, error) bool) {
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(profileDatePrefix + ":")
			it := tx.NewIterator(opts)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}

				var id core.ID
				if err := it.Item().Value(func(val []byte) error {
					var err error
					id, err = storage.UnmarshalID(val)
					return err
				}); err != nil {
					return err
				}

				profile, err := r.readProfile(tx, makeProfileKey(id))
				if err != nil {
					return err
				}
				if profile == nil {
					continue
				}
				if !yield(profile, nil) {
					return errStopIteration
				}
			}
			return nil
		}, false)

		if err != nil && !errors.Is(err, errStopIteration) {
			yield(nil, err)
		}
	}
}

// GetRecentProfiles retrieves the N most recently ingested profiles, ordered
// by ingestion time descending.
func (r *ProfileRepository) GetRecentProfiles(ctx context.Context, limit int) ([]*core.CandidateProfile, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.CandidateProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent records first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the ingestion-time index
		startKey := makePartialProfileDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(profileDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			profile, err := r.readProfile(tx, makeProfileKey(id))
			if err != nil {
				return err
			}
			if profile != nil {
				results = append(results, profile)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// GetProfilesByRole retrieves profiles in a role category, ordered by Id.
func (r *ProfileRepository) GetProfilesByRole(ctx context.Context, roleCategory string) ([]*core.CandidateProfile, error) {
	var results []*core.CandidateProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialProfileRoleKey(roleCategory)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			profile, err := r.readProfile(tx, makeProfileKey(id))
			if err != nil {
				return err
			}
			if profile != nil {
				results = append(results, profile)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountProfiles returns the number of stored profiles.
func (r *ProfileRepository) CountProfiles(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profileDatePrefix + ":")
		opts.PrefetchValues = false

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// UpdateStage moves a candidate to a new funnel stage.
func (r *ProfileRepository) UpdateStage(ctx context.Context, id core.ID, stage core.Stage) (*core.CandidateProfile, error) {
	if err := core.ValidateStage(stage); err != nil {
		return nil, err
	}

	var result *core.CandidateProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(id)
		profile, err := r.readProfile(tx, key)
		if err != nil {
			return err
		}
		if profile == nil {
			return storage.ErrNotFound
		}

		profile.Stage = stage
		if err := tx.Set(key, storage.MarshalProfile(profile)); err != nil {
			return err
		}
		result = profile
		return tx.Commit()
	}, true)

	return result, err
}

// readProfile reads a profile from the transaction.
func (r *ProfileRepository) readProfile(tx *badger.Txn, key []byte) (*core.CandidateProfile, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var profile *core.CandidateProfile
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		profile, unmarshalErr = storage.UnmarshalProfile(val)
		return unmarshalErr
	})
	return profile, err
}
