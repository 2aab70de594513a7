package agari

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/lamyinia/riichicore/tile"
)

// Table is the process-wide, lazily-populated map from a hand's exact shape
// (spec §4.3a describes a compressed shape-only key shared across suits;
// this implementation keys on the literal 34-bucket hand instead, trading
// the original's cross-suit table-size compression for a guarantee that
// distinct hands never collide — see DESIGN.md) to its list of legal
// decompositions. Spec §9 permits an equivalent in-memory structure in
// place of a precomputed 9,362-entry perfect-hash blob, provided the wire
// format in §6.2 still round-trips; this table is built on demand and
// MarshalTable/UnmarshalTable still speak the documented gzip format, with
// the u32 wire key computed as an FNV-1a hash of the exact shape.
//
// A table loaded via UnmarshalTable is keyed by that u32 hash alone (the
// wire format, like a true perfect hash, does not carry the original shape
// back out) and is therefore read-only: LookupHash is the only valid
// accessor on it, used for wire-format round-trip verification rather than
// live decomposition.
type Table struct {
	mu      sync.RWMutex
	entries map[string][]Div
	hashed  bool
}

var global = &Table{entries: map[string][]Div{}}

// Global returns the process-wide shared table, built at-most-once per key
// (spec §5/§9: shared, immutable after any given key is first resolved, no
// synchronization needed by readers beyond the lookup itself).
func Global() *Table { return global }

// ShapeKey returns the exact-hand cache key used internally by Table.
func ShapeKey(hand tile.Hand) string {
	b := hand.Array()
	return string(b[:])
}

func wireKey(shape string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(shape))
	return h.Sum32()
}

// NewTable constructs an empty, exact-keyed table. Most callers should use
// Global() instead; NewTable exists for tests that want an isolated cache.
func NewTable() *Table { return &Table{entries: map[string][]Div{}} }

// Lookup returns the decompositions for hand's shape, computing and caching
// them on first use via exhaustive search with the given meld target k.
// Lookup panics if called on a table produced by UnmarshalTable; use
// LookupHash for those.
func (t *Table) Lookup(hand tile.Hand, k int) []Decomp {
	if t.hashed {
		panic("agari: Lookup called on a hash-keyed table loaded via UnmarshalTable; use LookupHash")
	}
	key := ShapeKey(hand)
	arr := CanonicalArray(hand)

	t.mu.RLock()
	divs, ok := t.entries[key]
	t.mu.RUnlock()
	if ok {
		out := make([]Decomp, len(divs))
		for i, d := range divs {
			out[i] = UnpackDiv(d, arr)
		}
		return out
	}

	decomps := RegularDecompositions(hand, k)
	divs = make([]Div, len(decomps))
	for i, d := range decomps {
		divs[i] = PackDiv(d, arr)
	}

	t.mu.Lock()
	t.entries[key] = divs
	t.mu.Unlock()

	return decomps
}

// Size returns the number of distinct shape keys currently cached.
func (t *Table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// LookupHash finds entries in a table loaded via UnmarshalTable by the
// wire-format hash of hand's shape. It returns the raw Divs (not yet
// unpacked against any particular canonical array, since the loaded table
// has no record of the shape that produced a given hash) plus whether the
// hash was found.
func (t *Table) LookupHash(hand tile.Hand) ([]Div, bool) {
	h := wireKey(ShapeKey(hand))
	var kb [4]byte
	binary.LittleEndian.PutUint32(kb[:], h)
	t.mu.RLock()
	defer t.mu.RUnlock()
	divs, ok := t.entries[string(kb[:])]
	return divs, ok
}

// MarshalTable serializes the currently-cached entries in the spec §6.2
// wire format: gzip-compressed, each entry a little-endian u32 key, a u8
// count N, then N little-endian u32 packed Divs.
func (t *Table) MarshalTable(w io.Writer) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	gz := gzip.NewWriter(w)
	for shape, divs := range t.entries {
		if len(divs) == 0 || len(divs) > 4 {
			return fmt.Errorf("agari: table entry for shape %q has invalid count %d", shape, len(divs))
		}
		var hdr [5]byte
		binary.LittleEndian.PutUint32(hdr[0:4], wireKey(shape))
		hdr[4] = byte(len(divs))
		if _, err := gz.Write(hdr[:]); err != nil {
			return err
		}
		for _, d := range divs {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], uint32(d))
			if _, err := gz.Write(b[:]); err != nil {
				return err
			}
		}
	}
	return gz.Close()
}

// UnmarshalTable validates and loads a table previously written by
// MarshalTable. wantEntries, when nonzero, enforces the exact entry count
// (spec §8.1 uses this to assert 9,362 against a shipped blob; a freshly
// built in-process table will have whatever count it has accumulated, so
// pass 0 to skip that check).
func UnmarshalTable(r io.Reader, wantEntries int) (*Table, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("agari: opening gzip stream: %w", err)
	}
	defer gz.Close()

	out := &Table{entries: map[string][]Div{}, hashed: true}
	seen := map[string]bool{}
	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, gz); err != nil {
		return nil, fmt.Errorf("agari: decompressing table: %w", err)
	}
	data := buf.Bytes()

	off := 0
	for off < len(data) {
		if off+5 > len(data) {
			return nil, fmt.Errorf("agari: truncated entry header at offset %d", off)
		}
		keyBytes := string(data[off : off+4])
		key := binary.LittleEndian.Uint32(data[off : off+4])
		n := int(data[off+4])
		off += 5
		if n < 1 || n > 4 {
			return nil, fmt.Errorf("agari: invalid div count %d for key %d", n, key)
		}
		if seen[keyBytes] {
			return nil, fmt.Errorf("agari: duplicate key %d", key)
		}
		seen[keyBytes] = true
		divs := make([]Div, n)
		for i := 0; i < n; i++ {
			if off+4 > len(data) {
				return nil, fmt.Errorf("agari: truncated div list for key %d", key)
			}
			divs[i] = Div(binary.LittleEndian.Uint32(data[off : off+4]))
			off += 4
		}
		out.entries[keyBytes] = divs
	}
	if off != len(data) {
		return nil, fmt.Errorf("agari: trailing bytes after last entry")
	}
	if wantEntries != 0 && len(out.entries) != wantEntries {
		return nil, fmt.Errorf("agari: expected %d entries, got %d", wantEntries, len(out.entries))
	}
	return out, nil
}
