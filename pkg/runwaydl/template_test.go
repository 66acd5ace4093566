package runwaydl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTemplateRoundTrip(t *testing.T) {
	thumb := "https://www.firstview.com/thumbs/small_000123.jpg"
	full := "https://www.firstview.com/photos/large_000123.jpg"

	template, err := DeriveTemplate(thumb, full)
	require.NoError(t, err)

	// Applying the template to the sample thumbnail must reproduce the sample
	// full-image URL.
	assert.Equal(t, full, template.Apply(thumb))

	// Other thumbnails in the gallery share the shape, differing only in the tail.
	assert.Equal(t,
		"https://www.firstview.com/photos/large_000124.jpg",
		template.Apply("https://www.firstview.com/thumbs/small_000124.jpg"))
	assert.Equal(t,
		"https://www.firstview.com/photos/large_999999.jpg",
		template.Apply("https://www.firstview.com/thumbs/small_999999.jpg"))
}

func TestDeriveTemplateNoCommonParts(t *testing.T) {
	template, err := DeriveTemplate("abc", "xyz")
	require.NoError(t, err)

	// Empty prefix and suffix: middle is the entire full-image URL, and the
	// thumbnail contributes nothing.
	assert.Equal(t, "xyz", template.Apply("abc"))
	assert.Equal(t, "xyz", template.Apply("anything"))
}

func TestDeriveTemplateEmptyMiddle(t *testing.T) {
	// Thumbnail and full URL differ only in the variable tail.
	thumb := "https://x.com/img/1_small.jpg"
	full := "https://x.com/img/1_large.jpg"

	template, err := DeriveTemplate(thumb, full)
	require.NoError(t, err)
	assert.Equal(t, full, template.Apply(thumb))
	assert.Equal(t,
		"https://x.com/img/2_large.jpg",
		template.Apply("https://x.com/img/2_small.jpg"))
}

func TestDeriveTemplateOverlapFails(t *testing.T) {
	// Identical URLs: prefix and suffix each cover the whole string.
	_, err := DeriveTemplate("abcabc", "abcabc")
	assert.ErrorIs(t, err, ErrTemplateDerivation)

	// The shared ends cover more than the shorter URL.
	_, err = DeriveTemplate("aba", "ababa")
	assert.ErrorIs(t, err, ErrTemplateDerivation)
}

func TestApplySuffixLongerThanThumbnail(t *testing.T) {
	template := &URLTemplate{prefix: "p/", middle: "m", suffixLen: 10}
	// Tail is the whole thumbnail when it is shorter than the suffix.
	assert.Equal(t, "p/mabc", template.Apply("abc"))
}
