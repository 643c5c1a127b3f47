package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"photocat/internal/domain"
)

// ErrInconsistent is returned by CheckConsistency
var ErrInconsistent = errors.New("catalog inconsistent")

// Entry returns a copy of the entry with id
func (c *Catalog) Entry(id domain.EntryID) (*Entry, error) {
	e, ok := c.entries[id]
	if !ok {
		return nil, &domain.NotFoundError{What: "file", Key: id.String()}
	}
	return e.Clone(), nil
}

// Has reports whether id is cataloged
func (c *Catalog) Has(id domain.EntryID) bool {
	_, ok := c.entries[id]
	return ok
}

// Entries returns copies of every entry in id order
func (c *Catalog) Entries() []*Entry {
	out := make([]*Entry, 0, len(c.entries))
	for _, id := range c.IDs() {
		out = append(out, c.entries[id].Clone())
	}
	return out
}

// IDs returns every cataloged id in ascending order
func (c *Catalog) IDs() []domain.EntryID {
	ids := make([]domain.EntryID, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FileIDByPath returns the id cataloged under a full path
func (c *Catalog) FileIDByPath(path string) (domain.EntryID, error) {
	ids, ok := c.idx.paths.Lookup(path)
	if !ok {
		return 0, &domain.NotFoundError{What: "path", Key: path}
	}
	return ids.Sorted()[0], nil
}

// FileIDByName returns the id of the file with the given directory, name and extension
func (c *Catalog) FileIDByName(location, name, extension string) (domain.EntryID, error) {
	key := location + "/" + name + "." + extension
	inDir, ok := c.idx.locations.Lookup(location)
	if !ok {
		return 0, &domain.NotFoundError{What: "file", Key: key}
	}
	named, ok := c.idx.names.Lookup(name)
	if !ok {
		return 0, &domain.NotFoundError{What: "file", Key: key}
	}
	withExt, ok := c.idx.extensions.Lookup(extension)
	if !ok {
		return 0, &domain.NotFoundError{What: "file", Key: key}
	}
	for _, id := range inDir.Sorted() {
		if named.Has(id) && withExt.Has(id) {
			return id, nil
		}
	}
	return 0, &domain.NotFoundError{What: "file", Key: key}
}

// FileIDsInDirectory returns the ids whose location equals dir
func (c *Catalog) FileIDsInDirectory(dir string) (domain.IDSet, error) {
	return c.Find(ByLocation, dir)
}

// FileIDsWithKeyword returns the ids tagged with kw, case-insensitively
func (c *Catalog) FileIDsWithKeyword(kw string) (domain.IDSet, error) {
	return c.Find(ByKeyword, kw)
}

// Find looks a key up in any index. Absence is always ErrNotFound;
// a returned set is never empty.
func (c *Catalog) Find(kind IndexKind, key string) (domain.IDSet, error) {
	if kind == ByKeyword {
		key = domain.NormalizeKeyword(key)
	}
	ids, ok := c.idx.LookupIndex(kind, key)
	if !ok {
		return nil, &domain.NotFoundError{What: kind.String(), Key: key}
	}
	return ids, nil
}

// FindPotentialDuplicateIDs returns the ids sharing a size and checksum
func (c *Catalog) FindPotentialDuplicateIDs(size int64, checksum uint64) (domain.IDSet, error) {
	ids := c.idx.potentialDuplicates(size, checksum)
	if ids.Len() == 0 {
		return nil, &domain.NotFoundError{
			What: "fingerprint",
			Key:  strconv.FormatInt(size, 10) + "/" + strconv.FormatUint(checksum, 10),
		}
	}
	return ids, nil
}

// Directories returns every occupied location, sorted
func (c *Catalog) Directories() []string {
	return c.idx.SortedKeys(ByLocation)
}

// Keywords returns every keyword in use, sorted
func (c *Catalog) Keywords() []string {
	return c.idx.SortedKeys(ByKeyword)
}

// Keys returns the occupied keys of a string index, sorted
func (c *Catalog) Keys(kind IndexKind) []string {
	return c.idx.SortedKeys(kind)
}

// DuplicateIDs returns ids with at least one confirmed duplicate
func (c *Catalog) DuplicateIDs() []domain.EntryID {
	return c.confirmed.Sorted()
}

// PotentialDuplicateIDs returns ids with at least one unconfirmed candidate
func (c *Catalog) PotentialDuplicateIDs() []domain.EntryID {
	return c.potential.Sorted()
}

// Stats derives the counters from index sizes and the duplicate sets
func (c *Catalog) Stats() domain.Stats {
	return domain.Stats{
		Files:               len(c.entries),
		Directories:         c.idx.Len(ByLocation),
		Keywords:            c.idx.Len(ByKeyword),
		Duplicates:          c.confirmed.Len(),
		PotentialDuplicates: c.potential.Len(),
	}
}

// CheckConsistency rebuilds every index from the entry table and compares
// it with the live one, then checks the duplicate graph and its markers.
func (c *Catalog) CheckConsistency() error {
	rebuilt := NewIndexSet()
	for _, e := range c.entries {
		if err := rebuilt.insert(e); err != nil {
			return fmt.Errorf("%w: entry %s: %v", ErrInconsistent, e.id, err)
		}
	}
	if ok, kind := c.idx.equal(rebuilt); !ok {
		return fmt.Errorf("%w: %s index differs from entries", ErrInconsistent, kind)
	}

	for id, e := range c.entries {
		if e.id != id {
			return fmt.Errorf("%w: entry stored under %s has id %s", ErrInconsistent, id, e.id)
		}
		if id > c.lastID {
			return fmt.Errorf("%w: entry %s above last id %s", ErrInconsistent, id, c.lastID)
		}
		if err := c.checkLinks(e, "duplicate", e.duplicates, func(p *Entry) bool {
			return p.duplicates.Has(id)
		}); err != nil {
			return err
		}
		if err := c.checkLinks(e, "potential duplicate", e.potentialDuplicates, func(p *Entry) bool {
			return p.potentialDuplicates.Has(id)
		}); err != nil {
			return err
		}
		if err := checkMarker(e, domain.KeywordDuplicate, e.duplicates.Len() > 0, c.confirmed.Has(id)); err != nil {
			return err
		}
		if err := checkMarker(e, domain.KeywordPotentialDuplicate, e.potentialDuplicates.Len() > 0, c.potential.Has(id)); err != nil {
			return err
		}
	}
	for id := range c.confirmed {
		if !c.Has(id) {
			return fmt.Errorf("%w: duplicate set holds unknown %s", ErrInconsistent, id)
		}
	}
	for id := range c.potential {
		if !c.Has(id) {
			return fmt.Errorf("%w: potential duplicate set holds unknown %s", ErrInconsistent, id)
		}
	}
	return nil
}

func (c *Catalog) checkLinks(e *Entry, what string, links domain.IDSet, back func(*Entry) bool) error {
	for peerID := range links {
		if peerID == e.id {
			return fmt.Errorf("%w: %s lists itself as %s", ErrInconsistent, e.id, what)
		}
		peer, ok := c.entries[peerID]
		if !ok {
			return fmt.Errorf("%w: %s lists unknown %s %s", ErrInconsistent, e.id, what, peerID)
		}
		if !back(peer) {
			return fmt.Errorf("%w: %s lists %s as %s but not the reverse", ErrInconsistent, e.id, peerID, what)
		}
	}
	return nil
}

func checkMarker(e *Entry, kw string, linked, inGlobal bool) error {
	if linked != inGlobal {
		return fmt.Errorf("%w: %s global %s membership is %t", ErrInconsistent, e.id, kw, inGlobal)
	}
	if _, tagged := e.keywords[kw]; tagged != linked {
		return fmt.Errorf("%w: %s %s keyword is %t", ErrInconsistent, e.id, kw, tagged)
	}
	return nil
}
