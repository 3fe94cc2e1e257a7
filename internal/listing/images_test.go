package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertImage(t *testing.T) {
	images, err := InsertImage([]string{"old.webp"}, "new.webp")
	require.NoError(t, err)
	// newest first
	assert.Equal(t, []string{"new.webp", "old.webp"}, images)
}

func TestInsertImageAtCap(t *testing.T) {
	full := []string{"1", "2", "3", "4", "5"}
	images, err := InsertImage(full, "6")
	assert.ErrorIs(t, err, ErrImageLimitExceeded)
	assert.Len(t, images, MaxImages)
}

func TestRemoveImage(t *testing.T) {
	images := RemoveImage([]string{"a", "b", "c"}, 1)
	assert.Equal(t, []string{"a", "c"}, images)

	// out of range leaves the list untouched
	images = RemoveImage(images, 5)
	assert.Equal(t, []string{"a", "c"}, images)
	images = RemoveImage(images, -1)
	assert.Equal(t, []string{"a", "c"}, images)
}

func TestRemoveThenInsertFreesSlot(t *testing.T) {
	full := []string{"1", "2", "3", "4", "5"}
	images := RemoveImage(full, 4)
	images, err := InsertImage(images, "6")
	require.NoError(t, err)
	assert.Equal(t, []string{"6", "1", "2", "3", "4"}, images)
}

func TestSwapImage(t *testing.T) {
	images := SwapImage([]string{"a", "b", "c"}, 1, DirUp)
	assert.Equal(t, []string{"b", "a", "c"}, images)

	images = SwapImage(images, 1, DirDown)
	assert.Equal(t, []string{"b", "c", "a"}, images)
}

func TestSwapImageBoundaryIsNoop(t *testing.T) {
	images := SwapImage([]string{"a", "b"}, 0, DirUp)
	assert.Equal(t, []string{"a", "b"}, images)

	images = SwapImage(images, 1, DirDown)
	assert.Equal(t, []string{"a", "b"}, images)
}
