package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentpage_backend/internal/model"
)

func makeCollection(n int) []model.Property {
	items := make([]model.Property, 0, n)
	for i := 0; i < n; i++ {
		p := model.Property{
			Type:         model.ListingTypeSale,
			Location:     "Dubai Marina",
			DisplayOrder: i,
		}
		p.ID = uint(i + 1)
		items = append(items, p)
	}
	return items
}

func orderOf(items []model.Property) []uint {
	ids := make([]uint, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestAdd(t *testing.T) {
	items, err := Add(makeCollection(2), model.Property{Type: model.ListingTypeRent})
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.True(t, items[2].Expanded)
	assert.Equal(t, 2, items[2].DisplayOrder)
}

func TestAddAtCap(t *testing.T) {
	full := makeCollection(MaxListings)
	items, err := Add(full, model.Property{})
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.Len(t, items, MaxListings)
}

func TestDuplicate(t *testing.T) {
	items := makeCollection(3)
	items[1].Price = "1500000"
	items[1].Images = model.ImageList{"a.webp", "b.webp"}

	out, clone, err := Duplicate(items, 2)
	require.NoError(t, err)
	require.Len(t, out, 4)

	// clone sits at the front with no server identity
	assert.Equal(t, clone, &out[0])
	assert.Zero(t, clone.ID)
	assert.Equal(t, "1500000", clone.Price)
	assert.Equal(t, []uint{0, 1, 2, 3}, orderOf(out))

	// positions renumbered front to back
	for i, it := range out {
		assert.Equal(t, i, it.DisplayOrder)
	}
}

func TestDuplicateIsIndependent(t *testing.T) {
	items := makeCollection(1)
	items[0].Images = model.ImageList{"a.webp"}

	out, clone, err := Duplicate(items, 1)
	require.NoError(t, err)

	clone.Images[0] = "changed.webp"
	clone.Price = "999"
	assert.Equal(t, "a.webp", out[1].Images[0])
	assert.NotEqual(t, out[1].Price, clone.Price)
}

func TestDuplicateAtCap(t *testing.T) {
	full := makeCollection(MaxListings)
	_, clone, err := Duplicate(full, 1)
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.Nil(t, clone)
}

func TestDuplicateUnknownID(t *testing.T) {
	_, _, err := Duplicate(makeCollection(2), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	out := Remove(makeCollection(3), 2)
	assert.Equal(t, []uint{1, 3}, orderOf(out))
	for i, it := range out {
		assert.Equal(t, i, it.DisplayOrder)
	}
}

func TestRemoveAbsentIDIsNoop(t *testing.T) {
	items := makeCollection(3)
	out := Remove(items, 99)
	assert.Equal(t, orderOf(items), orderOf(out))
}

func TestMove(t *testing.T) {
	out := Move(makeCollection(3), 2, DirUp)
	assert.Equal(t, []uint{2, 1, 3}, orderOf(out))

	out = Move(out, 1, DirDown)
	assert.Equal(t, []uint{2, 3, 1}, orderOf(out))

	for i, it := range out {
		assert.Equal(t, i, it.DisplayOrder)
	}
}

func TestMoveBoundaryIsNoop(t *testing.T) {
	items := makeCollection(3)
	out := Move(items, 1, DirUp)
	assert.Equal(t, []uint{1, 2, 3}, orderOf(out))

	out = Move(out, 3, DirDown)
	assert.Equal(t, []uint{1, 2, 3}, orderOf(out))
}

func TestReorder(t *testing.T) {
	out, err := Reorder(makeCollection(3), []uint{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1, 2}, orderOf(out))
	for i, it := range out {
		assert.Equal(t, i, it.DisplayOrder)
	}
}

func TestReorderRejectsBadPermutation(t *testing.T) {
	items := makeCollection(3)

	// wrong length
	_, err := Reorder(items, []uint{1, 2})
	assert.ErrorIs(t, err, ErrInvalidPermutation)

	// unknown id
	_, err = Reorder(items, []uint{1, 2, 99})
	assert.ErrorIs(t, err, ErrInvalidPermutation)

	// duplicate id
	_, err = Reorder(items, []uint{1, 2, 2})
	assert.ErrorIs(t, err, ErrInvalidPermutation)

	// the rejected collection keeps its order
	assert.Equal(t, []uint{1, 2, 3}, orderOf(items))
}

func TestReorderIdentityIsStable(t *testing.T) {
	items := makeCollection(4)
	out, err := Reorder(items, []uint{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3, 4}, orderOf(out))
}
