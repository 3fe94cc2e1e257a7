package listing

// InsertImage prepends a new storage ref; the newest image is displayed
// first. Fails with ErrImageLimitExceeded when all five slots are taken.
func InsertImage(images []string, ref string) ([]string, error) {
	if len(images) >= MaxImages {
		return images, ErrImageLimitExceeded
	}

	out := make([]string, 0, len(images)+1)
	out = append(out, ref)
	out = append(out, images...)
	return out, nil
}

// RemoveImage drops the slot at index; later entries shift left. An index
// out of range leaves the list untouched.
func RemoveImage(images []string, index int) []string {
	if index < 0 || index >= len(images) {
		return images
	}
	return append(images[:index:index], images[index+1:]...)
}

// SwapImage exchanges the slot at index with its neighbor. Boundary swaps
// are no-ops.
func SwapImage(images []string, index int, dir Direction) []string {
	swap := index - 1
	if dir == DirDown {
		swap = index + 1
	}
	if index < 0 || index >= len(images) || swap < 0 || swap >= len(images) {
		return images
	}

	images[index], images[swap] = images[swap], images[index]
	return images
}
