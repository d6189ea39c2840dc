package keyword

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"maps"
	"slices"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/storage/badger"
)

// The postings store keeps every index version under its own key prefix and
// a single pointer key naming the live one:
//
//	kw:current            -> version
//	kw:v:<version>:t:<term> -> posting list (MUS)
//	kw:v:<version>:d:<id>   -> document token count (MUS varint)
//	kw:v:<version>:meta     -> corpus statistics (MUS)
//
// A version is dark until the pointer flips to it, so its keys can be
// written across as many transactions as needed. Stale versions, including
// orphans from interrupted builds, are dropped by prefix after the flip.

const (
	currentKey       = "kw:current"
	versionKeyPrefix = "kw:v:"

	// writeBatchKeys bounds the keys per transaction so a large corpus
	// never trips the Badger transaction size limit.
	writeBatchKeys = 500
)

// makeVersionPrefix generates the key prefix owning one index version.
func makeVersionPrefix(version string) []byte {
	return []byte(versionKeyPrefix + version + ":")
}

// makeTermPrefix generates the prefix for a version's posting-list keys.
func makeTermPrefix(version string) []byte {
	return append(makeVersionPrefix(version), "t:"...)
}

// makeTermKey generates the posting-list key for a term.
func makeTermKey(version, term string) []byte {
	return append(makeTermPrefix(version), term...)
}

// makeDocPrefix generates the prefix for a version's document-length keys.
func makeDocPrefix(version string) []byte {
	return append(makeVersionPrefix(version), "d:"...)
}

// makeDocKey generates the document-length key for a document.
// BigEndian so lexicographic iteration follows document order.
func makeDocKey(version string, id core.ID) []byte {
	key := makeDocPrefix(version)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))
	return append(key, buf[:]...)
}

// makeMetaKey generates the corpus-statistics key for a version.
func makeMetaKey(version string) []byte {
	return append(makeVersionPrefix(version), "meta"...)
}

// writeVersion persists a complete index version. Keys are written in
// chunked transactions; nothing references the version until setCurrent.
func writeVersion(backend *badger.Backend, version string, terms map[string][]posting, docLens map[core.ID]int, meta indexMeta) error {
	type entry struct {
		key []byte
		val []byte
	}
	entries := make([]entry, 0, len(terms)+len(docLens)+1)
	for _, term := range slices.Sorted(maps.Keys(terms)) {
		entries = append(entries, entry{makeTermKey(version, term), marshalPostings(terms[term])})
	}
	for _, id := range slices.Sorted(maps.Keys(docLens)) {
		entries = append(entries, entry{makeDocKey(version, id), marshalDocLength(docLens[id])})
	}
	entries = append(entries, entry{makeMetaKey(version), marshalMeta(meta)})

	for start := 0; start < len(entries); start += writeBatchKeys {
		end := min(start+writeBatchKeys, len(entries))
		err := backend.WithTx(func(tx *badgerdb.Txn) error {
			for _, e := range entries[start:end] {
				if err := tx.Set(e.key, e.val); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return fmt.Errorf("failed to write keyword version %s: %w", version, err)
		}
	}
	return nil
}

// setCurrent flips the pointer key to a fully written version.
func setCurrent(backend *badger.Backend, version string) error {
	return backend.WithTx(func(tx *badgerdb.Txn) error {
		if err := tx.Set([]byte(currentKey), []byte(version)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readCurrentVersion returns the live version, or "" before the first build.
func readCurrentVersion(backend *badger.Backend) (string, error) {
	var version string
	err := backend.WithTx(func(tx *badgerdb.Txn) error {
		item, err := tx.Get([]byte(currentKey))
		if err != nil {
			if err == badgerdb.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			version = string(val)
			return nil
		})
	}, false)
	return version, err
}

// listVersions returns every version with keys in the store, current or not.
func listVersions(backend *badger.Backend) ([]string, error) {
	seen := make(map[string]struct{})
	var versions []string
	err := backend.WithTx(func(tx *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte(versionKeyPrefix)
		opts.PrefetchValues = false

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			rest := it.Item().Key()[len(versionKeyPrefix):]
			sep := bytes.IndexByte(rest, ':')
			if sep < 0 {
				continue
			}
			version := string(rest[:sep])
			if _, ok := seen[version]; !ok {
				seen[version] = struct{}{}
				versions = append(versions, version)
			}
		}
		return nil
	}, false)
	return versions, err
}

// dropOldVersions removes every version prefix except the live one,
// including orphans left behind by interrupted builds.
func dropOldVersions(backend *badger.Backend, current string) error {
	versions, err := listVersions(backend)
	if err != nil {
		return err
	}
	var prefixes [][]byte
	for _, version := range versions {
		if version != current {
			prefixes = append(prefixes, makeVersionPrefix(version))
		}
	}
	if len(prefixes) == 0 {
		return nil
	}
	return backend.DropPrefix(prefixes...)
}

// loadVersion reads one version's postings, document lengths and statistics
// back into a queryable snapshot.
func loadVersion(backend *badger.Backend, version string) (*snapshot, error) {
	terms := make(map[string][]posting)
	docLens := make(map[core.ID]int)
	var meta indexMeta

	err := backend.WithTx(func(tx *badgerdb.Txn) error {
		termPrefix := makeTermPrefix(version)
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = termPrefix

		it := tx.NewIterator(opts)
		for it.Rewind(); it.Valid(); it.Next() {
			term := string(it.Item().Key()[len(termPrefix):])
			if err := it.Item().Value(func(val []byte) error {
				list, err := unmarshalPostings(val)
				if err != nil {
					return err
				}
				terms[term] = list
				return nil
			}); err != nil {
				it.Close()
				return err
			}
		}
		it.Close()

		docPrefix := makeDocPrefix(version)
		opts = badgerdb.DefaultIteratorOptions
		opts.Prefix = docPrefix

		it = tx.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			if len(key) != len(docPrefix)+8 {
				return fmt.Errorf("keyword: malformed document key %q", key)
			}
			id := core.ID(binary.BigEndian.Uint64(key[len(docPrefix):]))
			if err := it.Item().Value(func(val []byte) error {
				length, err := unmarshalDocLength(val)
				if err != nil {
					return err
				}
				docLens[id] = length
				return nil
			}); err != nil {
				return err
			}
		}

		item, err := tx.Get(makeMetaKey(version))
		if err != nil {
			return fmt.Errorf("failed to read keyword metadata for version %s: %w", version, err)
		}
		return item.Value(func(val []byte) error {
			meta, err = unmarshalMeta(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return newSnapshot(terms, docLens, meta), nil
}
