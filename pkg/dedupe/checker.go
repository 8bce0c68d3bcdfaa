package dedupe

import (
	"fmt"

	"github.com/sdejongh/samplestage/pkg/models"
)

// Checker decides whether a candidate is already present at the
// destination.
//
// Policy: a name match anywhere in the destination tree outside staging
// is a duplicate regardless of size. Inside staging the check is
// stricter: equal size means skip, a differing size means the staged
// copy is replaced (with a warning from the copier).
type Checker struct {
	index *Index
}

// NewChecker creates a checker over a built destination index
func NewChecker(index *Index) *Checker {
	return &Checker{index: index}
}

// Check returns the decision for a single candidate. It has no side
// effects; the index is read-only after construction.
func (c *Checker) Check(candidate *models.Candidate) models.Decision {
	if staged, ok := c.index.InStaging(candidate.Name); ok {
		if staged.Size == candidate.Size {
			return models.Decision{
				Candidate: candidate,
				Action:    models.ActionSkip,
				Reason:    "already staged with matching size",
			}
		}
		return models.Decision{
			Candidate: candidate,
			Action:    models.ActionOverwrite,
			Reason: fmt.Sprintf("staged copy has different size (%d vs %d bytes)",
				staged.Size, candidate.Size),
		}
	}

	if existing, ok := c.index.InLibrary(candidate.Name); ok {
		return models.Decision{
			Candidate: candidate,
			Action:    models.ActionSkip,
			Reason:    fmt.Sprintf("already present at destination (%s)", existing.RelativePath),
		}
	}

	return models.Decision{
		Candidate: candidate,
		Action:    models.ActionCopy,
		Reason:    "not present at destination",
	}
}
