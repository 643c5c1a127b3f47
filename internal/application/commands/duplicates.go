package commands

import (
	"context"
	"fmt"
	"sort"

	"photocat/internal/application"
	"photocat/internal/domain"
)

// DuplicatesResult contains the confirmed duplicate groups
type DuplicatesResult struct {
	Groups  [][]domain.EntryID
	Checked int
	Message string
}

// DuplicatesCommand confirms or clears potential duplicates by comparing content.
// Without a target it works through every file that has candidates.
type DuplicatesCommand struct {
	session *application.Session
	Target  string
}

// NewDuplicatesCommand creates a new DuplicatesCommand
func NewDuplicatesCommand(session *application.Session, target string) *DuplicatesCommand {
	return &DuplicatesCommand{
		session: session,
		Target:  target,
	}
}

// Execute runs the duplicates command
func (c *DuplicatesCommand) Execute(ctx context.Context) (*DuplicatesResult, error) {
	cat := c.session.Catalog()

	pool := cat.PotentialDuplicateIDs()
	if c.Target != "" {
		target, err := c.session.Resolve(c.Target)
		if err != nil {
			return nil, err
		}
		pool = target.IDs
	}

	res := &DuplicatesResult{}
	covered := domain.NewIDSet()
	for _, id := range pool {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if covered.Has(id) || !cat.Has(id) {
			continue
		}
		counts, err := cat.ProcessDuplicates(id)
		if err != nil {
			return nil, fmt.Errorf("failed to process duplicates of %s: %w", id, err)
		}
		res.Checked++
		if len(counts) < 2 {
			continue
		}
		group := make([]domain.EntryID, 0, len(counts))
		for member := range counts {
			group = append(group, member)
			covered.Add(member)
		}
		sort.Slice(group, func(i, j int) bool { return group[i] < group[j] })
		res.Groups = append(res.Groups, group)
	}

	res.Message = fmt.Sprintf("Checked %d file(s), found %d duplicate group(s)", res.Checked, len(res.Groups))
	return res, nil
}
