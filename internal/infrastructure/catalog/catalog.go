// Package catalog holds the fixed structure of the Bhagavad Gita text:
// 18 chapters, 700 verses. The counts never change, so the table is
// compiled in rather than stored.
package catalog

import "fmt"

// verseCounts[i] is the number of verses in chapter i+1.
var verseCounts = [18]int{47, 72, 43, 42, 29, 47, 30, 28, 34, 42, 55, 20, 35, 27, 20, 24, 28, 78}

// ChapterCount is the number of chapters in the text
const ChapterCount = 18

// TotalVerses returns the verse count across all chapters
func TotalVerses() int {
	total := 0
	for _, n := range verseCounts {
		total += n
	}
	return total
}

// VerseCount returns the number of verses in a chapter, or an error for
// an unknown chapter
func VerseCount(chapter int) (int, error) {
	if chapter < 1 || chapter > ChapterCount {
		return 0, fmt.Errorf("unknown chapter %d", chapter)
	}
	return verseCounts[chapter-1], nil
}

// HasVerse reports whether the chapter/verse pair exists in the text
func HasVerse(chapter, verse int) bool {
	count, err := VerseCount(chapter)
	if err != nil {
		return false
	}
	return verse >= 1 && verse <= count
}

// VerseNumbers returns the ordered verse numbers of a chapter
func VerseNumbers(chapter int) ([]int, error) {
	count, err := VerseCount(chapter)
	if err != nil {
		return nil, err
	}
	verses := make([]int, count)
	for i := range verses {
		verses[i] = i + 1
	}
	return verses, nil
}

// Chapters returns the ordered chapter numbers
func Chapters() []int {
	chapters := make([]int, ChapterCount)
	for i := range chapters {
		chapters[i] = i + 1
	}
	return chapters
}
