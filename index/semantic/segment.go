package semantic

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Swetcha17/recruitment-automation/core"
)

// Segment files are self-contained: one holds the embedding model state,
// the id-to-row mapping with content hashes, and the row vectors. A CURRENT
// pointer file names the live segment. Both are written to a temp file and
// renamed into place, so an interrupted build never corrupts the live state.
//
// Layout (little-endian):
//
//	u32 version
//	u8  mode (0 = tfidf, 1 = external)
//	u32 modelLen, model bytes
//	u32 dims
//	u32 n
//	n rows of: u64 id, u64 contentHash, dims float32
const (
	segmentVersion = 1
	segmentPrefix  = "seg_"
	segmentSuffix  = ".vec"
	currentFile    = "CURRENT"

	modeTFIDF    byte = 0
	modeExternal byte = 1
)

func encodeSegment(mode byte, model []byte, dims int, ids []core.ID, hashes []uint64, vecs [][]float32) []byte {
	size := 4 + 1 + 4 + len(model) + 4 + 4 + len(ids)*(16+4*dims)
	out := make([]byte, 0, size)
	putU32 := func(v uint32) { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); out = append(out, b...) }
	putU64 := func(v uint64) { b := make([]byte, 8); binary.LittleEndian.PutUint64(b, v); out = append(out, b...) }
	putF32 := func(v float32) {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, math.Float32bits(v))
		out = append(out, b...)
	}
	putU32(segmentVersion)
	out = append(out, mode)
	putU32(uint32(len(model)))
	out = append(out, model...)
	putU32(uint32(dims))
	putU32(uint32(len(ids)))
	for row := range ids {
		putU64(uint64(ids[row]))
		putU64(hashes[row])
		vec := vecs[row]
		for j := 0; j < dims; j++ {
			putF32(vec[j])
		}
	}
	return out
}

type decodedSegment struct {
	mode   byte
	model  []byte
	dims   int
	ids    []core.ID
	hashes []uint64
	vecs   [][]float32
}

func decodeSegment(data []byte) (*decodedSegment, error) {
	if len(data) < 9 {
		return nil, errors.New("semantic: invalid segment data")
	}
	off := 0
	getU32 := func() uint32 { v := binary.LittleEndian.Uint32(data[off : off+4]); off += 4; return v }
	getU64 := func() uint64 { v := binary.LittleEndian.Uint64(data[off : off+8]); off += 8; return v }
	getF32 := func() float32 {
		v := math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
		off += 4
		return v
	}
	if v := getU32(); v != segmentVersion {
		return nil, fmt.Errorf("semantic: unsupported segment version %d", v)
	}
	mode := data[off]
	off++
	if mode != modeTFIDF && mode != modeExternal {
		return nil, fmt.Errorf("semantic: unknown segment mode %d", mode)
	}
	modelLen := int(getU32())
	if off+modelLen > len(data) {
		return nil, errors.New("semantic: truncated model")
	}
	model := append([]byte(nil), data[off:off+modelLen]...)
	off += modelLen
	if off+8 > len(data) {
		return nil, errors.New("semantic: truncated header")
	}
	dims := int(getU32())
	n := int(getU32())
	ids := make([]core.ID, n)
	hashes := make([]uint64, n)
	vecs := make([][]float32, n)
	for row := 0; row < n; row++ {
		if off+16+4*dims > len(data) {
			return nil, errors.New("semantic: truncated row")
		}
		ids[row] = core.ID(getU64())
		hashes[row] = getU64()
		vec := make([]float32, dims)
		for j := 0; j < dims; j++ {
			vec[j] = getF32()
		}
		vecs[row] = vec
	}
	return &decodedSegment{mode: mode, model: model, dims: dims, ids: ids, hashes: hashes, vecs: vecs}, nil
}

// writeSegment persists the encoded segment under a fresh timestamped name
// and flips the CURRENT pointer to it. Returns the segment file name.
func writeSegment(dir string, data []byte) (string, error) {
	name := fmt.Sprintf("%s%d%s", segmentPrefix, time.Now().UnixNano(), segmentSuffix)
	tmp := filepath.Join(dir, name+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write segment: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("failed to publish segment: %w", err)
	}

	curTmp := filepath.Join(dir, currentFile+".tmp")
	if err := os.WriteFile(curTmp, []byte(name+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("failed to write current pointer: %w", err)
	}
	if err := os.Rename(curTmp, filepath.Join(dir, currentFile)); err != nil {
		return "", fmt.Errorf("failed to publish current pointer: %w", err)
	}
	return name, nil
}

// readCurrent returns the live segment name, or "" when no build has been
// published yet.
func readCurrent(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, currentFile))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read current pointer: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// cleanupSegments removes superseded segments and abandoned temp files left
// behind by interrupted builds. Failures are logged, never fatal.
func cleanupSegments(dir, keep string, logger *slog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("failed to scan segment directory", "dir", dir, "err", err)
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if name == keep || name == currentFile {
			continue
		}
		stale := strings.HasSuffix(name, ".tmp") ||
			(strings.HasPrefix(name, segmentPrefix) && strings.HasSuffix(name, segmentSuffix))
		if !stale {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			logger.Warn("failed to remove stale segment file", "file", name, "err", err)
		}
	}
}
