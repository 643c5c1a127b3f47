package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"photocat/internal/domain"
	"photocat/internal/ports"
)

// ErrNoComparator is returned by ProcessDuplicates when the catalog was
// built without a content comparator.
var ErrNoComparator = errors.New("no content comparator configured")

// Catalog owns the entry table and keeps every secondary index and the
// duplicate graph in step with it. It is not safe for concurrent use.
type Catalog struct {
	id         string
	entries    map[domain.EntryID]*Entry
	idx        *IndexSet
	confirmed  domain.IDSet
	potential  domain.IDSet
	lastID     domain.EntryID
	dirty      bool
	comparator ports.ContentComparator
	log        zerolog.Logger
}

// Option configures a Catalog
type Option func(*Catalog)

// WithComparator sets the byte comparator used by ProcessDuplicates
func WithComparator(cmp ports.ContentComparator) Option {
	return func(c *Catalog) { c.comparator = cmp }
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Catalog) { c.log = l }
}

// WithCatalogID overrides the generated catalog identity
func WithCatalogID(id string) Option {
	return func(c *Catalog) {
		if id != "" {
			c.id = id
		}
	}
}

// New creates an empty catalog
func New(opts ...Option) *Catalog {
	c := &Catalog{
		id:        uuid.NewString(),
		entries:   make(map[domain.EntryID]*Entry),
		idx:       NewIndexSet(),
		confirmed: domain.NewIDSet(),
		potential: domain.NewIDSet(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID is the stable identity of the catalog across saves
func (c *Catalog) ID() string { return c.id }

// Len is the number of cataloged files
func (c *Catalog) Len() int { return len(c.entries) }

// IsDirty reports whether there are changes since the last save
func (c *Catalog) IsDirty() bool { return c.dirty }

// MarkSaved clears the dirty flag after a successful save
func (c *Catalog) MarkSaved() { c.dirty = false }

// NextID returns the id the next new file would get, without consuming it
func (c *Catalog) NextID() domain.EntryID { return c.lastID + 1 }

// AddFile catalogs a probed entry. If the full path is already cataloged
// the old record is replaced under the same id, its keywords carried over,
// and the old id returned. A new file gets a fresh id and 0 is returned.
func (c *Catalog) AddFile(e *Entry) (domain.EntryID, error) {
	if e == nil {
		return 0, &domain.ValidationError{Field: "entry", Message: "entry is required"}
	}
	if err := e.Validate(); err != nil {
		return 0, err
	}

	rec := e.Clone()
	rec.duplicates = domain.NewIDSet()
	rec.potentialDuplicates = domain.NewIDSet()
	for kw := range rec.keywords {
		if domain.IsDuplicateKeyword(kw) {
			rec.removeKeyword(kw)
		}
	}

	var prev domain.EntryID
	var kept []string
	if ids, ok := c.idx.paths.Lookup(rec.fullPath); ok {
		for id := range ids {
			prev = id
		}
		old := c.entries[prev]
		kept = old.Keywords()
		c.removeFile(old)
		rec.id = prev
	} else {
		rec.id = c.lastID + 1
	}

	if err := c.idx.insert(rec); err != nil {
		c.idx.remove(rec)
		return 0, fmt.Errorf("failed to index %s: %w", rec.fullPath, err)
	}
	c.entries[rec.id] = rec
	if rec.id > c.lastID {
		c.lastID = rec.id
	}

	// DUP and DUP? are recomputed below rather than carried over.
	for _, kw := range kept {
		if !domain.IsDuplicateKeyword(kw) {
			c.tag(rec, kw)
		}
	}

	c.linkPotentialDuplicates(rec)
	c.dirty = true

	c.log.Debug().
		Str("path", rec.fullPath).
		Int("id", int(rec.id)).
		Bool("update", prev != 0).
		Int("potential_duplicates", rec.potentialDuplicates.Len()).
		Msg("file cataloged")

	return prev, nil
}

// RemoveFile deletes an entry, its index keys and its duplicate links
func (c *Catalog) RemoveFile(id domain.EntryID) error {
	e, ok := c.entries[id]
	if !ok {
		return &domain.NotFoundError{What: "file", Key: id.String()}
	}
	c.removeFile(e)
	c.dirty = true
	c.log.Debug().Int("id", int(id)).Str("path", e.fullPath).Msg("file removed")
	return nil
}

func (c *Catalog) removeFile(e *Entry) {
	c.removeDuplicateInformation(e)
	c.idx.remove(e)
	delete(c.entries, e.id)
}

// RemoveDuplicateInformation severs every duplicate and potential-duplicate
// link of an entry on both sides. Calling it again is a no-op.
func (c *Catalog) RemoveDuplicateInformation(id domain.EntryID) error {
	e, ok := c.entries[id]
	if !ok {
		return &domain.NotFoundError{What: "file", Key: id.String()}
	}
	if c.removeDuplicateInformation(e) {
		c.dirty = true
	}
	return nil
}

func (c *Catalog) removeDuplicateInformation(e *Entry) bool {
	changed := false

	for id := range e.duplicates {
		peer, ok := c.entries[id]
		if !ok {
			continue
		}
		peer.duplicates.Remove(e.id)
		if peer.duplicates.Len() == 0 {
			c.confirmed.Remove(id)
			c.untag(peer, domain.KeywordDuplicate)
		}
		changed = true
	}
	for id := range e.potentialDuplicates {
		peer, ok := c.entries[id]
		if !ok {
			continue
		}
		peer.potentialDuplicates.Remove(e.id)
		if peer.potentialDuplicates.Len() == 0 {
			c.potential.Remove(id)
			c.untag(peer, domain.KeywordPotentialDuplicate)
		}
		changed = true
	}

	e.duplicates = domain.NewIDSet()
	e.potentialDuplicates = domain.NewIDSet()

	if c.confirmed.Has(e.id) {
		c.confirmed.Remove(e.id)
		changed = true
	}
	if c.potential.Has(e.id) {
		c.potential.Remove(e.id)
		changed = true
	}
	if c.untag(e, domain.KeywordDuplicate) {
		changed = true
	}
	if c.untag(e, domain.KeywordPotentialDuplicate) {
		changed = true
	}
	return changed
}

func (c *Catalog) linkPotentialDuplicates(e *Entry) {
	for _, id := range c.idx.potentialDuplicates(e.size, e.checksum).Sorted() {
		if id == e.id {
			continue
		}
		peer := c.entries[id]
		e.potentialDuplicates.Add(id)
		peer.potentialDuplicates.Add(e.id)
		c.potential.Add(id)
		c.potential.Add(e.id)
		c.tag(e, domain.KeywordPotentialDuplicate)
		c.tag(peer, domain.KeywordPotentialDuplicate)
	}
}

// ProcessDuplicates byte-compares an entry against every entry sharing its
// size and checksum. When matches are found the whole group becomes a
// clique of confirmed duplicates and the result maps each member to the
// size of its group minus one. Otherwise the entry's duplicate information
// is cleared and the result is empty.
//
// A comparator failure counts as "not identical".
func (c *Catalog) ProcessDuplicates(id domain.EntryID) (map[domain.EntryID]int, error) {
	e, ok := c.entries[id]
	if !ok {
		return nil, &domain.NotFoundError{What: "file", Key: id.String()}
	}
	if c.comparator == nil {
		return nil, ErrNoComparator
	}

	group := domain.NewIDSet(id)
	for _, cand := range c.idx.potentialDuplicates(e.size, e.checksum).Sorted() {
		if cand == id {
			continue
		}
		other := c.entries[cand]
		same, err := c.comparator.SameContent(e.fullPath, other.fullPath)
		if err != nil {
			c.log.Warn().Err(err).
				Str("path", e.fullPath).
				Str("other", other.fullPath).
				Msg("comparison failed, treating as different")
			continue
		}
		if same {
			group.Add(cand)
		}
	}

	result := make(map[domain.EntryID]int)
	if group.Len() == 1 {
		if c.removeDuplicateInformation(e) {
			c.dirty = true
		}
		return result, nil
	}

	for m := range group {
		c.removeDuplicateInformation(c.entries[m])
	}
	count := group.Len() - 1
	for m := range group {
		member := c.entries[m]
		for o := range group {
			if o != m {
				member.duplicates.Add(o)
			}
		}
		c.confirmed.Add(m)
		c.tag(member, domain.KeywordDuplicate)
		result[m] = count
	}
	c.dirty = true

	c.log.Debug().Int("id", int(id)).Int("group", group.Len()).Msg("duplicates confirmed")
	return result, nil
}

// AddKeyword tags an entry. Unknown ids are ignored.
func (c *Catalog) AddKeyword(kw string, id domain.EntryID) error {
	kw = domain.NormalizeKeyword(kw)
	if kw == "" {
		return &domain.ValidationError{Field: "keyword", Message: "keyword is required"}
	}
	e, ok := c.entries[id]
	if !ok {
		return nil
	}
	if c.tag(e, kw) {
		c.dirty = true
	}
	return nil
}

// RemoveKeyword untags an entry. Unknown ids are ignored.
func (c *Catalog) RemoveKeyword(kw string, id domain.EntryID) error {
	kw = domain.NormalizeKeyword(kw)
	if kw == "" {
		return &domain.ValidationError{Field: "keyword", Message: "keyword is required"}
	}
	e, ok := c.entries[id]
	if !ok {
		return nil
	}
	if c.untag(e, kw) {
		c.dirty = true
	}
	return nil
}

// tag and untag report whether the entry changed
func (c *Catalog) tag(e *Entry, kw string) bool {
	if _, ok := e.keywords[kw]; ok {
		return false
	}
	e.addKeyword(kw)
	c.idx.keywords.Add(kw, e.id)
	return true
}

func (c *Catalog) untag(e *Entry, kw string) bool {
	if _, ok := e.keywords[kw]; !ok {
		return false
	}
	e.removeKeyword(kw)
	c.idx.keywords.Remove(kw, e.id)
	return true
}
