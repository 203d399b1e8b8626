package reading

import "time"

// SetVerseInput marks or unmarks a single verse
type SetVerseInput struct {
	Chapter   int
	Verse     int
	Completed bool
}

// SetChapterInput marks or unmarks many verses of a chapter. An empty
// VerseIDs list means every verse the catalog lists for the chapter.
type SetChapterInput struct {
	Chapter   int
	VerseIDs  []int
	Completed bool
}

// VerseWrite echoes the state just written for a single verse
type VerseWrite struct {
	Chapter     int        `json:"chapter"`
	Verse       int        `json:"verse"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

// ChapterSummary is one row of the per-chapter progress overview
type ChapterSummary struct {
	Chapter        int `json:"chapter"`
	TotalVerses    int `json:"totalVerses"`
	CompletedCount int `json:"completedCount"`
	Percent        int `json:"percent"`
}

// VerseState is one verse of a chapter detail read
type VerseState struct {
	Verse       int        `json:"verse"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

// ToggleInput identifies the verse being toggled
type ToggleInput struct {
	Chapter int
	Verse   int
}

// ToggleResult reports the membership state after the toggle
type ToggleResult struct {
	Favourite bool
}

// FavouriteItem is one row of the favourites list
type FavouriteItem struct {
	Chapter   int       `json:"chapter"`
	Verse     int       `json:"verse"`
	CreatedAt time.Time `json:"createdAt"`
}
