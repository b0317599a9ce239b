package models

// Course levels accepted by the course form.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// CourseLevels lists the valid course levels in display order.
var CourseLevels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Message is an entry of the in-memory message board.
type Message struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Course is an entry of the in-memory course catalog.
type Course struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Available   bool   `json:"available"`
	Level       string `json:"level"`
}
