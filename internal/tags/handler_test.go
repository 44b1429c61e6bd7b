package tags

import "testing"

func TestValidateTag(t *testing.T) {
	name := "Health"
	blank := ""
	long := "this tag name is far far far far far far far too long to fit"
	goodColor := "#10B981"
	badColor := "green"
	shortColor := "#FFF"

	tests := []struct {
		name      string
		tagName   *string
		color     *string
		wantValid bool
	}{
		{"valid create", &name, &goodColor, true},
		{"valid no color", &name, nil, true},
		{"blank name", &blank, nil, false},
		{"long name", &long, nil, false},
		{"bad color word", &name, &badColor, false},
		{"short hex", &name, &shortColor, false},
		{"update color only", nil, &goodColor, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validateTag(tt.tagName, tt.color)
			if valid := len(details) == 0; valid != tt.wantValid {
				t.Errorf("validateTag() valid = %v, want %v (details: %+v)", valid, tt.wantValid, details)
			}
		})
	}
}
