package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalVerses(t *testing.T) {
	assert.Equal(t, 700, TotalVerses())
}

func TestVerseCount(t *testing.T) {
	count, err := VerseCount(1)
	require.NoError(t, err)
	assert.Equal(t, 47, count)

	count, err = VerseCount(18)
	require.NoError(t, err)
	assert.Equal(t, 78, count)

	_, err = VerseCount(0)
	assert.Error(t, err)
	_, err = VerseCount(19)
	assert.Error(t, err)
}

func TestHasVerse(t *testing.T) {
	assert.True(t, HasVerse(2, 1))
	assert.True(t, HasVerse(2, 72))
	assert.False(t, HasVerse(2, 73))
	assert.False(t, HasVerse(0, 1))
	assert.False(t, HasVerse(2, 0))
}

func TestVerseNumbers(t *testing.T) {
	verses, err := VerseNumbers(12)
	require.NoError(t, err)
	assert.Len(t, verses, 20)
	assert.Equal(t, 1, verses[0])
	assert.Equal(t, 20, verses[19])
}

func TestChapters(t *testing.T) {
	chapters := Chapters()
	assert.Len(t, chapters, 18)
	assert.Equal(t, 1, chapters[0])
	assert.Equal(t, 18, chapters[17])
}
