package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"photocat/internal/domain"
)

// IndexKind names one of the secondary indices
type IndexKind int

const (
	ByPath IndexKind = iota
	ByLocation
	ByName
	ByExtension
	ByTimestamp
	BySize
	ByChecksum
	ByKeyword
	ByTag
)

var indexKindNames = map[IndexKind]string{
	ByPath:      "path",
	ByLocation:  "dir",
	ByName:      "name",
	ByExtension: "ext",
	ByTimestamp: "date",
	BySize:      "size",
	ByChecksum:  "checksum",
	ByKeyword:   "keyword",
	ByTag:       "tag",
}

func (k IndexKind) String() string {
	if s, ok := indexKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseIndexKind maps a user-facing index name to its kind
func ParseIndexKind(s string) (IndexKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range indexKindNames {
		if name == s {
			return k, true
		}
	}
	switch s {
	case "location", "directory":
		return ByLocation, true
	case "extension":
		return ByExtension, true
	case "timestamp":
		return ByTimestamp, true
	}
	return 0, false
}

// Index maps a key to the set of entry ids sharing it.
// A key is deleted as soon as its set becomes empty.
type Index[K comparable] struct {
	kind      IndexKind
	allowZero bool
	buckets   map[K]domain.IDSet
}

func newIndex[K comparable](kind IndexKind, allowZero bool) *Index[K] {
	return &Index[K]{
		kind:      kind,
		allowZero: allowZero,
		buckets:   make(map[K]domain.IDSet),
	}
}

// Add inserts id under key, creating the bucket if needed
func (x *Index[K]) Add(key K, id domain.EntryID) error {
	var zero K
	if !x.allowZero && key == zero {
		return &domain.ValidationError{
			Field:   x.kind.String(),
			Message: "index key must not be empty",
		}
	}
	set, ok := x.buckets[key]
	if !ok {
		set = domain.NewIDSet()
		x.buckets[key] = set
	}
	set.Add(id)
	return nil
}

// Remove drops id from key's bucket and the bucket itself once empty
func (x *Index[K]) Remove(key K, id domain.EntryID) {
	set, ok := x.buckets[key]
	if !ok {
		return
	}
	set.Remove(id)
	if set.Len() == 0 {
		delete(x.buckets, key)
	}
}

// Lookup returns a copy of the ids under key. The bool is false when
// the key is absent; a present key never has an empty set.
func (x *Index[K]) Lookup(key K) (domain.IDSet, bool) {
	set, ok := x.buckets[key]
	if !ok {
		return nil, false
	}
	return set.Clone(), true
}

// Len is the number of distinct occupied keys
func (x *Index[K]) Len() int {
	return len(x.buckets)
}

// Keys returns the occupied keys in no particular order
func (x *Index[K]) Keys() []K {
	keys := make([]K, 0, len(x.buckets))
	for k := range x.buckets {
		keys = append(keys, k)
	}
	return keys
}

func (x *Index[K]) equal(o *Index[K]) bool {
	if len(x.buckets) != len(o.buckets) {
		return false
	}
	for k, set := range x.buckets {
		other, ok := o.buckets[k]
		if !ok || !set.Equal(other) {
			return false
		}
	}
	return true
}

// IndexSet holds every secondary index of a catalog
type IndexSet struct {
	paths      *Index[string]
	locations  *Index[string]
	names      *Index[string]
	extensions *Index[string]
	timestamps *Index[string]
	sizes      *Index[int64]
	checksums  *Index[uint64]
	keywords   *Index[string]
	tags       *Index[string]
}

// NewIndexSet returns an empty index set
func NewIndexSet() *IndexSet {
	return &IndexSet{
		paths:      newIndex[string](ByPath, false),
		locations:  newIndex[string](ByLocation, false),
		names:      newIndex[string](ByName, false),
		extensions: newIndex[string](ByExtension, false),
		timestamps: newIndex[string](ByTimestamp, false),
		sizes:      newIndex[int64](BySize, true),
		checksums:  newIndex[uint64](ByChecksum, true),
		keywords:   newIndex[string](ByKeyword, false),
		tags:       newIndex[string](ByTag, false),
	}
}

func (s *IndexSet) stringIndex(kind IndexKind) *Index[string] {
	switch kind {
	case ByPath:
		return s.paths
	case ByLocation:
		return s.locations
	case ByName:
		return s.names
	case ByExtension:
		return s.extensions
	case ByTimestamp:
		return s.timestamps
	case ByKeyword:
		return s.keywords
	case ByTag:
		return s.tags
	}
	return nil
}

// AddToIndex inserts id under a textual key. Size and checksum keys are
// parsed as decimal integers.
func (s *IndexSet) AddToIndex(kind IndexKind, key string, id domain.EntryID) error {
	switch kind {
	case BySize:
		n, err := parseSize(key)
		if err != nil {
			return err
		}
		return s.sizes.Add(n, id)
	case ByChecksum:
		n, err := parseChecksum(key)
		if err != nil {
			return err
		}
		return s.checksums.Add(n, id)
	}
	idx := s.stringIndex(kind)
	if idx == nil {
		return fmt.Errorf("unknown index %d", int(kind))
	}
	return idx.Add(key, id)
}

// RemoveFromIndex drops id from a textual key
func (s *IndexSet) RemoveFromIndex(kind IndexKind, key string, id domain.EntryID) error {
	switch kind {
	case BySize:
		n, err := parseSize(key)
		if err != nil {
			return err
		}
		s.sizes.Remove(n, id)
		return nil
	case ByChecksum:
		n, err := parseChecksum(key)
		if err != nil {
			return err
		}
		s.checksums.Remove(n, id)
		return nil
	}
	idx := s.stringIndex(kind)
	if idx == nil {
		return fmt.Errorf("unknown index %d", int(kind))
	}
	idx.Remove(key, id)
	return nil
}

// LookupIndex resolves a textual key in any index
func (s *IndexSet) LookupIndex(kind IndexKind, key string) (domain.IDSet, bool) {
	switch kind {
	case BySize:
		n, err := parseSize(key)
		if err != nil {
			return nil, false
		}
		return s.sizes.Lookup(n)
	case ByChecksum:
		n, err := parseChecksum(key)
		if err != nil {
			return nil, false
		}
		return s.checksums.Lookup(n)
	}
	idx := s.stringIndex(kind)
	if idx == nil {
		return nil, false
	}
	return idx.Lookup(key)
}

// Len reports the number of distinct keys in an index
func (s *IndexSet) Len(kind IndexKind) int {
	switch kind {
	case BySize:
		return s.sizes.Len()
	case ByChecksum:
		return s.checksums.Len()
	}
	if idx := s.stringIndex(kind); idx != nil {
		return idx.Len()
	}
	return 0
}

// SortedKeys returns the keys of a string index in ascending order
func (s *IndexSet) SortedKeys(kind IndexKind) []string {
	idx := s.stringIndex(kind)
	if idx == nil {
		return nil
	}
	keys := idx.Keys()
	sort.Strings(keys)
	return keys
}

// insert indexes every field of e. e must already be valid.
func (s *IndexSet) insert(e *Entry) error {
	adds := []struct {
		idx *Index[string]
		key string
	}{
		{s.paths, e.fullPath},
		{s.locations, e.location},
		{s.names, e.name},
		{s.extensions, e.extension},
		{s.timestamps, e.timestamp},
	}
	for _, a := range adds {
		if err := a.idx.Add(a.key, e.id); err != nil {
			return err
		}
	}
	s.sizes.Add(e.size, e.id)
	s.checksums.Add(e.checksum, e.id)
	for kw := range e.keywords {
		if err := s.keywords.Add(kw, e.id); err != nil {
			return err
		}
	}
	for m := range e.metadata {
		if err := s.tags.Add(m.Tag, e.id); err != nil {
			return err
		}
	}
	return nil
}

// remove drops e from every index keyed by its current field values
func (s *IndexSet) remove(e *Entry) {
	s.paths.Remove(e.fullPath, e.id)
	s.locations.Remove(e.location, e.id)
	s.names.Remove(e.name, e.id)
	s.extensions.Remove(e.extension, e.id)
	s.timestamps.Remove(e.timestamp, e.id)
	s.sizes.Remove(e.size, e.id)
	s.checksums.Remove(e.checksum, e.id)
	for kw := range e.keywords {
		s.keywords.Remove(kw, e.id)
	}
	for m := range e.metadata {
		s.tags.Remove(m.Tag, e.id)
	}
}

// potentialDuplicates returns the ids sharing both size and checksum
func (s *IndexSet) potentialDuplicates(size int64, checksum uint64) domain.IDSet {
	bySize, ok := s.sizes.Lookup(size)
	if !ok {
		return domain.NewIDSet()
	}
	byChecksum, ok := s.checksums.Lookup(checksum)
	if !ok {
		return domain.NewIDSet()
	}
	out := domain.NewIDSet()
	for id := range bySize {
		if byChecksum.Has(id) {
			out.Add(id)
		}
	}
	return out
}

// equal compares two index sets key by key
func (s *IndexSet) equal(o *IndexSet) (bool, IndexKind) {
	strs := []IndexKind{ByPath, ByLocation, ByName, ByExtension, ByTimestamp, ByKeyword, ByTag}
	for _, k := range strs {
		if !s.stringIndex(k).equal(o.stringIndex(k)) {
			return false, k
		}
	}
	if !s.sizes.equal(o.sizes) {
		return false, BySize
	}
	if !s.checksums.equal(o.checksums) {
		return false, ByChecksum
	}
	return true, 0
}

func parseSize(key string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{Field: "size", Message: fmt.Sprintf("invalid size %q", key)}
	}
	return n, nil
}

func parseChecksum(key string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(key), 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{Field: "checksum", Message: fmt.Sprintf("invalid checksum %q", key)}
	}
	return n, nil
}
