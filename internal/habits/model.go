package habits

import "time"

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Habit is a recurring activity tracked by one user.
type Habit struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	Name          string    `db:"name" json:"name"`
	Description   *string   `db:"description" json:"description,omitempty"`
	Frequency     string    `db:"frequency" json:"frequency"`
	TargetCount   int       `db:"target_count" json:"targetCount"`
	IsActive      bool      `db:"is_active" json:"isActive"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
	Tags          []TagRef  `json:"tags"`
	RecentEntries []Entry   `json:"recentEntries,omitempty"`
}

// TagRef is the tag shape embedded in habit responses.
type TagRef struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Color string `db:"color" json:"color"`
}

// Entry is one recorded completion of a habit.
type Entry struct {
	ID             string    `db:"id" json:"id"`
	HabitID        string    `db:"habit_id" json:"habitId"`
	CompletionDate time.Time `db:"completion_date" json:"completionDate"`
	Note           *string   `db:"note" json:"note,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

type createHabitRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Frequency   string   `json:"frequency"`
	TargetCount *int     `json:"targetCount"`
	TagIDs      []string `json:"tagIds"`
}

type updateHabitRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Frequency   *string   `json:"frequency"`
	TargetCount *int      `json:"targetCount"`
	IsActive    *bool     `json:"isActive"`
	TagIDs      *[]string `json:"tagIds"`
}

type addTagsRequest struct {
	TagIDs []string `json:"tagIds"`
}

type completeHabitRequest struct {
	Note *string `json:"note"`
}
