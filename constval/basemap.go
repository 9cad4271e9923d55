package constval

import (
	"encoding/binary"
	"unsafe"

	"github.com/zeebo/xxh3"
)

// ---------------------------------------------------------------------------
// LValueBase hashing and map-key sentinels
// ---------------------------------------------------------------------------

// EmptyBaseKey returns the reserved "never used" sentinel for open-addressed
// hash tables keyed by LValueBase. It cannot be produced by the public base
// constructors and compares equal only to itself.
func EmptyBaseKey() LValueBase { return LValueBase{kind: baseEmptyKey} }

// TombstoneBaseKey returns the reserved "deleted" sentinel for open-addressed
// hash tables keyed by LValueBase.
func TombstoneBaseKey() LValueBase { return LValueBase{kind: baseTombstoneKey} }

// Hash returns a hash consistent with Equal: it combines the reference kind,
// the referenced entity's identity, and the auxiliary word matching the
// active interpretation.
func (b LValueBase) Hash() uint64 {
	var buf [17]byte
	buf[0] = byte(b.kind)
	binary.LittleEndian.PutUint64(buf[1:], uint64(uintptr(b.ref)))
	var aux uint64
	if b.kind == baseTypeInfo {
		aux = uint64(uintptr(unsafe.Pointer(b.typeInfoType)))
	} else {
		aux = uint64(b.callIndex)<<32 | uint64(b.version)
	}
	binary.LittleEndian.PutUint64(buf[9:], aux)
	return xxh3.Hash(buf[:])
}

// ---------------------------------------------------------------------------
// BaseMap: open-addressed hash table keyed by LValueBase
// ---------------------------------------------------------------------------

// BaseMap is an open-addressed hash table from LValueBase to V, using linear
// probing with the empty/tombstone sentinels. Hosts use it to attach
// evaluation state (designators, lifetimes, memory) to symbolic bases.
//
// Like the Value type itself, a BaseMap is single-owner and unsynchronized.
type BaseMap[V any] struct {
	keys []LValueBase
	vals []V
	live int // entries holding a real key
	used int // live + tombstones
}

const baseMapMinCap = 8

// NewBaseMap returns an empty map.
func NewBaseMap[V any]() *BaseMap[V] {
	m := &BaseMap[V]{}
	m.reset(baseMapMinCap)
	return m
}

func (m *BaseMap[V]) reset(capacity int) {
	m.keys = make([]LValueBase, capacity)
	for i := range m.keys {
		m.keys[i] = EmptyBaseKey()
	}
	m.vals = make([]V, capacity)
	m.live = 0
	m.used = 0
}

// Len returns the number of live entries.
func (m *BaseMap[V]) Len() int { return m.live }

// findSlot returns the index of key if present, or the insertion slot
// (favoring the first tombstone passed) and false.
func (m *BaseMap[V]) findSlot(key LValueBase) (int, bool) {
	mask := len(m.keys) - 1
	i := int(key.Hash()) & mask
	insert := -1
	for {
		k := m.keys[i]
		switch k.kind {
		case baseEmptyKey:
			if insert < 0 {
				insert = i
			}
			return insert, false
		case baseTombstoneKey:
			if insert < 0 {
				insert = i
			}
		default:
			if k.Equal(key) {
				return i, true
			}
		}
		i = (i + 1) & mask
	}
}

// Get returns the value stored under key.
func (m *BaseMap[V]) Get(key LValueBase) (V, bool) {
	checkRealKey(key, "Get")
	if i, ok := m.findSlot(key); ok {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

// Put stores val under key, replacing any previous entry.
func (m *BaseMap[V]) Put(key LValueBase, val V) {
	checkRealKey(key, "Put")
	if (m.used+1)*4 >= len(m.keys)*3 {
		m.grow()
	}
	i, ok := m.findSlot(key)
	if !ok {
		if m.keys[i].kind == baseEmptyKey {
			m.used++
		}
		m.live++
		m.keys[i] = key
	}
	m.vals[i] = val
}

// Delete removes key's entry, if any, and reports whether one was removed.
func (m *BaseMap[V]) Delete(key LValueBase) bool {
	checkRealKey(key, "Delete")
	i, ok := m.findSlot(key)
	if !ok {
		return false
	}
	m.keys[i] = TombstoneBaseKey()
	var zero V
	m.vals[i] = zero
	m.live--
	return true
}

func (m *BaseMap[V]) grow() {
	oldKeys, oldVals := m.keys, m.vals
	capacity := len(oldKeys) * 2
	if m.live*4 < len(oldKeys) {
		capacity = len(oldKeys) // mostly tombstones: rehash in place
	}
	m.reset(capacity)
	for i, k := range oldKeys {
		if k.kind != baseEmptyKey && k.kind != baseTombstoneKey {
			m.Put(k, oldVals[i])
		}
	}
}

// checkRealKey rejects the reserved sentinels as user keys.
func checkRealKey(key LValueBase, op string) {
	if key.kind == baseEmptyKey || key.kind == baseTombstoneKey {
		panic("BaseMap." + op + ": reserved sentinel used as key")
	}
}
