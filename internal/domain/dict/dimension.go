package dict

import (
	"context"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
)

// Dimension is a node of the cost dimension tree contract items are tagged
// with. Top-level dimensions act as categories.
type Dimension struct {
	shared.BaseEntity
	Name     string
	ParentID *uuid.UUID
}

// NewDimension creates a dimension under parentID (nil for a top-level one)
func NewDimension(name string, parentID *uuid.UUID) (*Dimension, error) {
	d := &Dimension{BaseEntity: shared.NewBaseEntity()}
	if err := d.Rename(name); err != nil {
		return nil, err
	}
	d.ParentID = parentID
	return d, nil
}

// Rename changes the dimension name
func (d *Dimension) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := shared.ValidateField("name", name, validation.Required, validation.RuneLength(1, 100)); err != nil {
		return err
	}
	d.Name = name
	d.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	return nil
}

// MoveTo changes the parent. The tree must contain every dimension so the
// move can be checked for cycles.
func (d *Dimension) MoveTo(parentID *uuid.UUID, tree *DimensionTree) error {
	if parentID != nil {
		if *parentID == d.ID {
			return shared.NewDomainError("INVALID_PARENT", "Dimension cannot be its own parent")
		}
		if _, ok := tree.byID[*parentID]; !ok {
			return shared.NotFound("Parent dimension")
		}
		if tree.IsAncestor(d.ID, *parentID) {
			return shared.NewDomainError("INVALID_PARENT", "Dimension cannot be moved below its own descendant")
		}
	}
	d.ParentID = parentID
	d.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	return nil
}

// IsTopLevel reports whether the dimension has no parent
func (d *Dimension) IsTopLevel() bool {
	return d.ParentID == nil
}

// DimensionTree is an in-memory index of all dimensions
type DimensionTree struct {
	byID map[uuid.UUID]Dimension
}

// NewDimensionTree indexes dims by id
func NewDimensionTree(dims []Dimension) *DimensionTree {
	t := &DimensionTree{byID: make(map[uuid.UUID]Dimension, len(dims))}
	for _, d := range dims {
		t.byID[d.ID] = d
	}
	return t
}

// Get returns the dimension with id
func (t *DimensionTree) Get(id uuid.UUID) (Dimension, bool) {
	d, ok := t.byID[id]
	return d, ok
}

// TopLevel walks up from id to the root dimension. A corrupted tree with a
// cycle yields the last node visited before the cycle closes.
func (t *DimensionTree) TopLevel(id uuid.UUID) (Dimension, bool) {
	current, ok := t.byID[id]
	if !ok {
		return Dimension{}, false
	}
	seen := map[uuid.UUID]bool{current.ID: true}
	for current.ParentID != nil {
		parent, ok := t.byID[*current.ParentID]
		if !ok || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		current = parent
	}
	return current, true
}

// IsAncestor reports whether ancestor lies on the path from id to its root
func (t *DimensionTree) IsAncestor(ancestor, id uuid.UUID) bool {
	current, ok := t.byID[id]
	seen := map[uuid.UUID]bool{}
	for ok && current.ParentID != nil && !seen[current.ID] {
		seen[current.ID] = true
		if *current.ParentID == ancestor {
			return true
		}
		current, ok = t.byID[*current.ParentID]
	}
	return false
}

// Children returns the direct children of parentID ordered by name; a nil
// parent returns the top-level dimensions.
func (t *DimensionTree) Children(parentID *uuid.UUID) []Dimension {
	out := make([]Dimension, 0)
	for _, d := range t.byID {
		switch {
		case parentID == nil && d.ParentID == nil:
			out = append(out, d)
		case parentID != nil && d.ParentID != nil && *d.ParentID == *parentID:
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names joins the names of ids with " | " in the given order
func (t *DimensionTree) Names(ids []uuid.UUID) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if d, ok := t.byID[id]; ok {
			names = append(names, d.Name)
		}
	}
	return strings.Join(names, " | ")
}

// Categories maps the name of each top-level dimension to the selected
// dimension below it
func (t *DimensionTree) Categories(ids []uuid.UUID) map[string]uuid.UUID {
	out := make(map[string]uuid.UUID, len(ids))
	for _, id := range ids {
		if top, ok := t.TopLevel(id); ok {
			out[top.Name] = id
		}
	}
	return out
}

// DimensionRepository defines persistence for dimensions
type DimensionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Dimension, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Dimension, error)
	// FindAll returns every dimension ordered by name
	FindAll(ctx context.Context) ([]Dimension, error)
	Save(ctx context.Context, d *Dimension) error
	// Delete removes the dimension and, through the foreign key, its subtree
	Delete(ctx context.Context, id uuid.UUID) error
}
