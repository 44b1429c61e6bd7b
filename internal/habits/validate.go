package habits

import (
	"strings"

	"github.com/google/uuid"

	"github.com/marekzelinka/habit-trackr-api/internal/httpx"
)

func validFrequency(frequency string) bool {
	switch frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

func validateName(name string) *httpx.FieldError {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &httpx.FieldError{Field: "name", Message: "Name is required"}
	}
	if len(trimmed) > 100 {
		return &httpx.FieldError{Field: "name", Message: "Name too long"}
	}
	return nil
}

func validateTagIDs(field string, tagIDs []string) *httpx.FieldError {
	for _, id := range tagIDs {
		if _, err := uuid.Parse(id); err != nil {
			return &httpx.FieldError{Field: field, Message: "Tag ids must be valid UUIDs"}
		}
	}
	return nil
}

func validateCreate(req createHabitRequest) []httpx.FieldError {
	var details []httpx.FieldError

	if fe := validateName(req.Name); fe != nil {
		details = append(details, *fe)
	}
	if !validFrequency(req.Frequency) {
		details = append(details, httpx.FieldError{Field: "frequency", Message: "Frequency must be daily, weekly or monthly"})
	}
	if req.TargetCount != nil && *req.TargetCount < 1 {
		details = append(details, httpx.FieldError{Field: "targetCount", Message: "Target count must be at least 1"})
	}
	if fe := validateTagIDs("tagIds", req.TagIDs); fe != nil {
		details = append(details, *fe)
	}

	return details
}

func validateUpdate(req updateHabitRequest) []httpx.FieldError {
	var details []httpx.FieldError

	if req.Name != nil {
		if fe := validateName(*req.Name); fe != nil {
			details = append(details, *fe)
		}
	}
	if req.Frequency != nil && !validFrequency(*req.Frequency) {
		details = append(details, httpx.FieldError{Field: "frequency", Message: "Frequency must be daily, weekly or monthly"})
	}
	if req.TargetCount != nil && *req.TargetCount < 1 {
		details = append(details, httpx.FieldError{Field: "targetCount", Message: "Target count must be at least 1"})
	}
	if req.TagIDs != nil {
		if fe := validateTagIDs("tagIds", *req.TagIDs); fe != nil {
			details = append(details, *fe)
		}
	}

	return details
}
