// Package listing holds the ordered-collection rules for an agent's
// properties: the 30 listing cap, the 5 image slots per listing and the
// position-preserving mutations the dashboard performs. Everything here is
// in-memory; persistence happens in the controllers.
package listing

import (
	"errors"

	"agentpage_backend/internal/model"
)

const (
	MaxListings = 30
	MaxImages   = 5
)

var (
	ErrLimitExceeded      = errors.New("listing limit exceeded")
	ErrImageLimitExceeded = errors.New("image limit exceeded")
	ErrInvalidPermutation = errors.New("id list is not a permutation of the collection")
	ErrNotFound           = errors.New("listing not found")
)

// Direction for Move and SwapImage.
type Direction string

const (
	DirUp   Direction = "up"
	DirDown Direction = "down"
)

// Add appends a new default-valued entry, marked expanded so the dashboard
// opens it for editing. Fails with ErrLimitExceeded at the cap.
func Add(items []model.Property, fresh model.Property) ([]model.Property, error) {
	if len(items) >= MaxListings {
		return items, ErrLimitExceeded
	}

	fresh.Expanded = true
	if len(items) > 0 {
		fresh.DisplayOrder = items[len(items)-1].DisplayOrder + 1
	}
	return append(items, fresh), nil
}

// Duplicate clones all editable fields of the listing with the given id into
// a genuinely new entry: no server identity, placed at the front awaiting
// its slot. The original is not touched.
func Duplicate(items []model.Property, id uint) ([]model.Property, *model.Property, error) {
	if len(items) >= MaxListings {
		return items, nil, ErrLimitExceeded
	}

	idx := indexOf(items, id)
	if idx < 0 {
		return items, nil, ErrNotFound
	}

	src := items[idx]
	clone := model.Property{
		Type:        src.Type,
		Category:    src.Category,
		Price:       src.Price,
		Location:    src.Location,
		Bedrooms:    src.Bedrooms,
		Bathrooms:   src.Bathrooms,
		Area:        src.Area,
		Description: src.Description,
		ProfileID:   src.ProfileID,
	}
	clone.Images = append(clone.Images, src.Images...)

	out := make([]model.Property, 0, len(items)+1)
	out = append(out, clone)
	out = append(out, items...)
	renumber(out)
	return out, &out[0], nil
}

// Remove drops the entry with the given id. Removing an absent id is not an
// error; the caller's state is already what it asked for.
func Remove(items []model.Property, id uint) []model.Property {
	idx := indexOf(items, id)
	if idx < 0 {
		return items
	}

	out := append(items[:idx:idx], items[idx+1:]...)
	renumber(out)
	return out
}

// Move swaps the entry with its immediate neighbor. At either boundary it is
// a no-op, not an error.
func Move(items []model.Property, id uint, dir Direction) []model.Property {
	idx := indexOf(items, id)
	if idx < 0 {
		return items
	}

	swap := idx - 1
	if dir == DirDown {
		swap = idx + 1
	}
	if swap < 0 || swap >= len(items) {
		return items
	}

	items[idx], items[swap] = items[swap], items[idx]
	renumber(items)
	return items
}

// Reorder applies a full permutation of the current ids, assigning display
// order by position. Any mismatch between ids and the current membership is
// rejected with ErrInvalidPermutation; nothing is applied.
func Reorder(items []model.Property, ids []uint) ([]model.Property, error) {
	if len(ids) != len(items) {
		return items, ErrInvalidPermutation
	}

	byID := make(map[uint]model.Property, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	out := make([]model.Property, 0, len(items))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return items, ErrInvalidPermutation
		}
		delete(byID, id)
		out = append(out, it)
	}

	renumber(out)
	return out, nil
}

func indexOf(items []model.Property, id uint) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// renumber rewrites display order to match slice position, strictly
// increasing.
func renumber(items []model.Property) {
	for i := range items {
		items[i].DisplayOrder = i
	}
}
