package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/Swetcha17/recruitment-automation/core"
)

// Key prefixes for different data types
const (
	profilePrefix     = "canrec"
	profileDatePrefix = "canrecd"
	profileRolePrefix = "canrecr"
	vacancyPrefix     = "vacrec"
	buildStatusPrefix = "bldsts"
)

// makeProfileKey generates a key for a candidate profile by ID.
func makeProfileKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", profilePrefix, id))
}

// makeProfileDateKey generates a composite key for the ingestion-time index.
// Format: prefix:timestamp:id
func makeProfileDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := profileDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialProfileDateKey generates a partial key for time range scans.
// Format: prefix:timestamp
func makePartialProfileDateKey(timestamp time.Time) []byte {
	prefix := profileDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeProfileRoleKey generates a composite key for the role-category index.
// Format: prefix:role:id
func makeProfileRoleKey(roleCategory string, id core.ID) []byte {
	prefix := profileRolePrefix + ":" + roleCategory + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialProfileRoleKey generates a partial key for role scans.
// Format: prefix:role:
func makePartialProfileRoleKey(roleCategory string) []byte {
	return []byte(profileRolePrefix + ":" + roleCategory + ":")
}

// makeVacancyKey generates a key for a vacancy by ID.
func makeVacancyKey(id string) []byte {
	return []byte(vacancyPrefix + ":" + id)
}

// makeBuildStatusKey generates a key for a pipeline stage status record.
func makeBuildStatusKey(stage string) []byte {
	return []byte(buildStatusPrefix + ":" + stage)
}
