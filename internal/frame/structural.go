package frame

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/memory"
	xxhash "github.com/cespare/xxhash/v2"

	"github.com/okapi-data/okapi/internal/errors"
	"github.com/okapi-data/okapi/internal/series"
	"github.com/okapi-data/okapi/internal/validation"
)

// Amend appends a new column computed by invoking fn once per visible row,
// in view order. The column's kind is inferred from the produced values.
// The result's storage length equals the visible row count: amending after
// a filter or slice bakes that view into new storage. Reusing an existing
// column name is rejected rather than silently overwriting.
func (f *Frame) Amend(name string, fn func(Record) any) (*Frame, error) {
	if f.HasColumn(name) {
		return nil, errors.NewDuplicateColumnError("Amend", name)
	}

	mem := memory.NewGoAllocator()

	values := make([]any, len(f.index))
	for i, pos := range f.index {
		values[i] = fn(f.record(pos))
	}

	columns, order := f.gatherAll(mem)

	amended := series.Infer(name, values, mem)
	columns[name] = amended
	order = append(order, name)

	return rawFrame(columns, order, naturalIndex(len(f.index))), nil
}

// Rename changes column names per the mapping, preserving column order.
// Names absent from the mapping pass through unchanged. Two columns mapped
// to the same target name is an error rather than a silent overwrite.
func (f *Frame) Rename(mapping map[string]string) (*Frame, error) {
	order := make([]string, 0, len(f.order))
	taken := make(map[string]bool, len(f.order))

	for _, name := range f.order {
		target := name
		if mapped, ok := mapping[name]; ok {
			target = mapped
		}
		if taken[target] {
			return nil, errors.NewDuplicateColumnError("Rename", target)
		}
		taken[target] = true
		order = append(order, target)
	}

	columns := make(map[string]*series.Series, len(f.order))
	for i, name := range f.order {
		target := order[i]
		if target == name {
			s := f.columns[name]
			s.Retain()
			columns[target] = s
			continue
		}
		columns[target] = f.columns[name].Rename(target)
	}

	return rawFrame(columns, order, append([]int(nil), f.index...)), nil
}

// Join merges all of other's columns into this frame positionally: row i of
// other's view lands on row i of this frame's view. No key matching occurs.
// Columns with clashing names are overwritten by other's version. Both
// sides are materialized at their current views.
func (f *Frame) Join(other *Frame) (*Frame, error) {
	if err := validation.NewLengthValidator("Join", f.Len(), other.Len()).Validate(); err != nil {
		return nil, err
	}

	mem := memory.NewGoAllocator()

	columns, order := f.gatherAll(mem)
	otherCols, otherOrder := other.gatherAll(mem)

	for _, name := range otherOrder {
		if old, clash := columns[name]; clash {
			old.Release()
		} else {
			order = append(order, name)
		}
		columns[name] = otherCols[name]
	}

	return rawFrame(columns, order, naturalIndex(f.Len())), nil
}

// keyIndex maps join-key values to the first visible row that holds them.
// Buckets are addressed by xxhash of the key's string form, with the
// original key kept per entry for collision checks.
type keyIndex struct {
	buckets map[uint64][]keyEntry
}

type keyEntry struct {
	key string
	row int
}

func newKeyIndex(estimatedSize int) *keyIndex {
	return &keyIndex{buckets: make(map[uint64][]keyEntry, estimatedSize)}
}

// putFirst records row for key unless the key was already seen. It reports
// whether the key was new.
func (ki *keyIndex) putFirst(key string, row int) bool {
	hash := xxhash.Sum64String(key)
	for _, entry := range ki.buckets[hash] {
		if entry.key == key {
			return false
		}
	}
	ki.buckets[hash] = append(ki.buckets[hash], keyEntry{key: key, row: row})
	return true
}

// get returns the first row recorded for key.
func (ki *keyIndex) get(key string) (int, bool) {
	hash := xxhash.Sum64String(key)
	for _, entry := range ki.buckets[hash] {
		if entry.key == key {
			return entry.row, true
		}
	}
	return 0, false
}

// keyRepr folds a key value to its comparable string form. Kind is included
// so that the number 1 and the string "1" stay distinct keys.
func keyRepr(v any) string {
	return fmt.Sprintf("%T:%v", v, v)
}

// LeftJoin merges other's non-key columns into this frame by key value.
// This is a first-occurrence 1:1 join, not a relational multi-match join:
// for each distinct key in other's key column, only other's first row with
// that key and this frame's first visible row with that key pair up;
// duplicate keys beyond the first are silently ignored on both sides. Rows
// of this frame without a match keep absent values in the new columns, and
// other's unmatched rows contribute nothing.
func (f *Frame) LeftJoin(other *Frame, key string) (*Frame, error) {
	if err := validation.ValidateAll(
		validation.NewColumnValidator(f, "LeftJoin", key),
		validation.NewColumnValidator(other, "LeftJoin", key),
	); err != nil {
		return nil, err
	}

	mem := memory.NewGoAllocator()

	thisKey := f.columns[key]
	firstHere := newKeyIndex(len(f.index))
	for i, pos := range f.index {
		if thisKey.IsAbsent(pos) {
			continue
		}
		firstHere.putFirst(keyRepr(thisKey.At(pos)), i)
	}

	// Payload columns: everything in other except the key itself.
	payload := make([]string, 0, len(other.order))
	for _, name := range other.order {
		if name != key {
			payload = append(payload, name)
		}
	}

	values := make(map[string][]any, len(payload))
	for _, name := range payload {
		values[name] = make([]any, len(f.index))
	}

	otherKey := other.columns[key]
	seen := newKeyIndex(len(other.index))
	for _, pos := range other.index {
		if otherKey.IsAbsent(pos) {
			continue
		}
		repr := keyRepr(otherKey.At(pos))
		if !seen.putFirst(repr, 0) {
			continue // first occurrence wins
		}
		target, matched := firstHere.get(repr)
		if !matched {
			continue
		}
		for _, name := range payload {
			values[name][target] = other.columns[name].At(pos)
		}
	}

	columns, order := f.gatherAll(mem)
	for _, name := range payload {
		merged := series.OfKind(name, other.columns[name].Kind(), values[name], mem)
		if old, clash := columns[name]; clash {
			old.Release()
		} else {
			order = append(order, name)
		}
		columns[name] = merged
	}

	return rawFrame(columns, order, naturalIndex(len(f.index))), nil
}
