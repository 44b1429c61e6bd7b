package tags

import "time"

// DefaultColor is used when a tag is created without one.
const DefaultColor = "#6B7280"

// Tag is a reusable label attachable to many habits.
type Tag struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// PopularTag pairs a tag with the number of habits referencing it.
type PopularTag struct {
	Tag
	UsageCount int `json:"usageCount"`
}

// HabitRef is the habit shape embedded in tag detail responses.
type HabitRef struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Frequency string `db:"frequency" json:"frequency"`
	IsActive  bool   `db:"is_active" json:"isActive"`
}

// TagWithHabits is the tag detail response shape.
type TagWithHabits struct {
	Tag
	Habits []HabitRef `json:"habits"`
}

type createTagRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type updateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}
