package catalog

import (
	"sort"
	"strings"

	"photocat/internal/domain"
)

// Entry is the catalog record for one image file.
//
// Fields are set through validating setters. The duplicate and
// potential-duplicate sets can only be changed by the Catalog, which keeps
// both endpoints of every link in step.
type Entry struct {
	id        domain.EntryID
	fullPath  string
	location  string
	name      string
	extension string
	timestamp string
	size      int64
	checksum  uint64

	keywords            map[string]struct{}
	metadata            map[domain.MetadataTag]struct{}
	duplicates          domain.IDSet
	potentialDuplicates domain.IDSet
}

// NewEntry returns an empty, unassigned entry
func NewEntry() *Entry {
	return &Entry{
		keywords:            make(map[string]struct{}),
		metadata:            make(map[domain.MetadataTag]struct{}),
		duplicates:          domain.NewIDSet(),
		potentialDuplicates: domain.NewIDSet(),
	}
}

// EntryFromProbe builds an unassigned entry from a file probe
func EntryFromProbe(p domain.FileProbe) (*Entry, error) {
	e := NewEntry()
	setters := []error{
		e.SetFullPath(p.FullPath),
		e.SetLocation(p.Location),
		e.SetName(p.Name),
		e.SetExtension(p.Extension),
		e.SetTimestamp(p.Timestamp),
		e.SetSize(p.Size),
	}
	for _, err := range setters {
		if err != nil {
			return nil, err
		}
	}
	e.SetChecksum(p.Checksum)
	for _, m := range p.Metadata {
		if err := e.AddMetadata(m); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Entry) ID() domain.EntryID { return e.id }
func (e *Entry) FullPath() string   { return e.fullPath }
func (e *Entry) Location() string   { return e.location }
func (e *Entry) Name() string       { return e.name }
func (e *Entry) Extension() string  { return e.extension }
func (e *Entry) Timestamp() string  { return e.timestamp }
func (e *Entry) Size() int64        { return e.size }
func (e *Entry) Checksum() uint64   { return e.checksum }

// FileName returns name and extension joined back together
func (e *Entry) FileName() string {
	if e.extension == "" {
		return e.name
	}
	return e.name + "." + e.extension
}

func (e *Entry) SetFullPath(p string) error {
	if err := requireNonEmpty("fullPath", p); err != nil {
		return err
	}
	e.fullPath = p
	return nil
}

func (e *Entry) SetLocation(l string) error {
	if err := requireNonEmpty("location", l); err != nil {
		return err
	}
	e.location = l
	return nil
}

func (e *Entry) SetName(n string) error {
	if err := requireNonEmpty("name", n); err != nil {
		return err
	}
	e.name = n
	return nil
}

func (e *Entry) SetExtension(x string) error {
	if err := requireNonEmpty("extension", x); err != nil {
		return err
	}
	e.extension = x
	return nil
}

func (e *Entry) SetTimestamp(ts string) error {
	if err := requireNonEmpty("timestamp", ts); err != nil {
		return err
	}
	e.timestamp = ts
	return nil
}

func (e *Entry) SetSize(n int64) error {
	if n < 0 {
		return &domain.ValidationError{Field: "size", Message: "size must not be negative"}
	}
	e.size = n
	return nil
}

// SetChecksum accepts any value; zero is a valid fingerprint of some content.
func (e *Entry) SetChecksum(sum uint64) {
	e.checksum = sum
}

// AddMetadata records a metadata triple. Directory and tag are required.
func (e *Entry) AddMetadata(m domain.MetadataTag) error {
	if err := requireNonEmpty("metadata.directory", m.Directory); err != nil {
		return err
	}
	if err := requireNonEmpty("metadata.tag", m.Tag); err != nil {
		return err
	}
	e.metadata[m] = struct{}{}
	return nil
}

// AddKeyword tags a detached entry before it is handed to Catalog.AddFile.
// Keywords of cataloged entries are changed through Catalog.AddKeyword.
func (e *Entry) AddKeyword(kw string) error {
	kw = domain.NormalizeKeyword(kw)
	if err := requireNonEmpty("keyword", kw); err != nil {
		return err
	}
	e.keywords[kw] = struct{}{}
	return nil
}

// HasKeyword is case-insensitive
func (e *Entry) HasKeyword(kw string) bool {
	_, ok := e.keywords[domain.NormalizeKeyword(kw)]
	return ok
}

// Keywords returns the keyword set, sorted
func (e *Entry) Keywords() []string {
	kws := make([]string, 0, len(e.keywords))
	for kw := range e.keywords {
		kws = append(kws, kw)
	}
	sort.Strings(kws)
	return kws
}

// Metadata returns the metadata triples sorted by directory, tag, description
func (e *Entry) Metadata() []domain.MetadataTag {
	tags := make([]domain.MetadataTag, 0, len(e.metadata))
	for m := range e.metadata {
		tags = append(tags, m)
	}
	sort.Slice(tags, func(i, j int) bool {
		a, b := tags[i], tags[j]
		if a.Directory != b.Directory {
			return a.Directory < b.Directory
		}
		if a.Tag != b.Tag {
			return a.Tag < b.Tag
		}
		return a.Description < b.Description
	})
	return tags
}

// Duplicates returns the ids confirmed byte-identical to this entry
func (e *Entry) Duplicates() []domain.EntryID {
	return e.duplicates.Sorted()
}

// PotentialDuplicates returns the ids sharing size and checksum with this entry
func (e *Entry) PotentialDuplicates() []domain.EntryID {
	return e.potentialDuplicates.Sorted()
}

// Validate checks every field required at insertion time
func (e *Entry) Validate() error {
	checks := []struct {
		field string
		value string
	}{
		{"fullPath", e.fullPath},
		{"location", e.location},
		{"name", e.name},
		{"extension", e.extension},
		{"timestamp", e.timestamp},
	}
	for _, c := range checks {
		if err := requireNonEmpty(c.field, c.value); err != nil {
			return err
		}
	}
	if e.size < 0 {
		return &domain.ValidationError{Field: "size", Message: "size must not be negative"}
	}
	for kw := range e.keywords {
		if kw == "" {
			return &domain.ValidationError{Field: "keyword", Message: "keyword must not be empty"}
		}
	}
	return nil
}

// Clone returns a deep copy
func (e *Entry) Clone() *Entry {
	c := *e
	c.keywords = make(map[string]struct{}, len(e.keywords))
	for kw := range e.keywords {
		c.keywords[kw] = struct{}{}
	}
	c.metadata = make(map[domain.MetadataTag]struct{}, len(e.metadata))
	for m := range e.metadata {
		c.metadata[m] = struct{}{}
	}
	c.duplicates = e.duplicates.Clone()
	c.potentialDuplicates = e.potentialDuplicates.Clone()
	return &c
}

func (e *Entry) setID(id domain.EntryID) error {
	if id <= 0 {
		return &domain.ValidationError{Field: "id", Message: "id must be positive"}
	}
	e.id = id
	return nil
}

func (e *Entry) addKeyword(kw string)    { e.keywords[kw] = struct{}{} }
func (e *Entry) removeKeyword(kw string) { delete(e.keywords, kw) }

// toSnapshot exports the entry row
func (e *Entry) toSnapshot() domain.SnapshotEntry {
	return domain.SnapshotEntry{
		ID:                  e.id,
		FullPath:            e.fullPath,
		Location:            e.location,
		Name:                e.name,
		Extension:           e.extension,
		Timestamp:           e.timestamp,
		Size:                e.size,
		Checksum:            e.checksum,
		Keywords:            e.Keywords(),
		Metadata:            e.Metadata(),
		Duplicates:          e.Duplicates(),
		PotentialDuplicates: e.PotentialDuplicates(),
	}
}

func requireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &domain.ValidationError{
			Field:   field,
			Message: field + " is required",
		}
	}
	return nil
}
