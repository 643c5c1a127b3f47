package domain

import (
	"sort"
	"strconv"
	"strings"
)

// TimestampLayout is the capture time format stored on entries (yyyyMMdd HHmmss)
const TimestampLayout = "20060102 150405"

// DefaultImageExtensions are probed when no list is configured
var DefaultImageExtensions = []string{
	"jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "webp", "heic", "nef", "cr2", "dng",
}

// Reserved keywords managed by the catalog and the rescanner
const (
	KeywordDuplicate          = "DUP"
	KeywordPotentialDuplicate = "DUP?"
	KeywordChanged            = "CHANGED"
	KeywordDeleted            = "DELETED"
)

// EntryID identifies a cataloged file. Zero means unassigned.
type EntryID int

func (id EntryID) String() string {
	return "#" + strconv.Itoa(int(id))
}

// ParseEntryID parses "#12" or "12" into an EntryID
func ParseEntryID(s string) (EntryID, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return EntryID(n), true
}

// IDSet is an unordered set of entry ids
type IDSet map[EntryID]struct{}

// NewIDSet returns a set holding ids
func NewIDSet(ids ...EntryID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id EntryID)      { s[id] = struct{}{} }
func (s IDSet) Remove(id EntryID)   { delete(s, id) }
func (s IDSet) Has(id EntryID) bool { _, ok := s[id]; return ok }
func (s IDSet) Len() int            { return len(s) }

// Sorted returns the ids in ascending order
func (s IDSet) Sorted() []EntryID {
	ids := make([]EntryID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns an independent copy
func (s IDSet) Clone() IDSet {
	c := make(IDSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Equal reports whether both sets hold the same ids
func (s IDSet) Equal(o IDSet) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

// MetadataTag is one (directory, tag, description) triple read from image metadata
type MetadataTag struct {
	Directory   string `json:"directory" yaml:"directory"`
	Tag         string `json:"tag" yaml:"tag"`
	Description string `json:"description" yaml:"description"`
}

func (m MetadataTag) String() string {
	return "[" + m.Directory + "] " + m.Tag + " - " + m.Description
}

// NormalizeKeyword trims and upper-cases a keyword
func NormalizeKeyword(kw string) string {
	return strings.ToUpper(strings.TrimSpace(kw))
}

// IsReservedKeyword reports whether kw is managed by the catalog itself
func IsReservedKeyword(kw string) bool {
	switch NormalizeKeyword(kw) {
	case KeywordDuplicate, KeywordPotentialDuplicate, KeywordChanged, KeywordDeleted:
		return true
	}
	return false
}

// IsDuplicateKeyword reports whether kw is one of the two duplicate markers
func IsDuplicateKeyword(kw string) bool {
	switch NormalizeKeyword(kw) {
	case KeywordDuplicate, KeywordPotentialDuplicate:
		return true
	}
	return false
}

// FileProbe is what the file prober knows about a file on disk
type FileProbe struct {
	FullPath  string
	Location  string
	Name      string
	Extension string
	Timestamp string
	Size      int64
	Checksum  uint64
	Metadata  []MetadataTag
}

// SameContent reports whether two probes describe the same fingerprint and capture time
func (p FileProbe) SameContent(size int64, checksum uint64, timestamp string) bool {
	return p.Size == size && p.Checksum == checksum && p.Timestamp == timestamp
}

// Stats are the catalog counters shown to users
type Stats struct {
	Files               int `json:"files" yaml:"files"`
	Directories         int `json:"directories" yaml:"directories"`
	Keywords            int `json:"keywords" yaml:"keywords"`
	Duplicates          int `json:"duplicates" yaml:"duplicates"`
	PotentialDuplicates int `json:"potential_duplicates" yaml:"potential_duplicates"`
}
