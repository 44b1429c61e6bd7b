package users

import "testing"

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name      string
		req       registerRequest
		wantValid bool
	}{
		{"valid", registerRequest{Email: "test@example.com", Username: "testuser", Password: "TestPassword123"}, true},
		{"bad email", registerRequest{Email: "not-an-email", Username: "testuser", Password: "TestPassword123"}, false},
		{"short username", registerRequest{Email: "test@example.com", Username: "ab", Password: "TestPassword123"}, false},
		{"short password", registerRequest{Email: "test@example.com", Username: "testuser", Password: "123"}, false},
		{"everything wrong", registerRequest{Email: "nope", Username: "a", Password: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validateRegister(tt.req)
			if valid := len(details) == 0; valid != tt.wantValid {
				t.Errorf("validateRegister() valid = %v, want %v (details: %+v)", valid, tt.wantValid, details)
			}
		})
	}
}

func TestValidateRegister_ReportsEachField(t *testing.T) {
	details := validateRegister(registerRequest{Email: "nope", Username: "a", Password: "x"})
	if len(details) != 3 {
		t.Fatalf("got %d field errors, want 3: %+v", len(details), details)
	}

	fields := map[string]bool{}
	for _, d := range details {
		fields[d.Field] = true
	}
	for _, f := range []string{"email", "username", "password"} {
		if !fields[f] {
			t.Errorf("missing field error for %q", f)
		}
	}
}

func TestValidateLogin(t *testing.T) {
	if details := validateLogin(loginRequest{Email: "test@example.com", Password: "pw"}); len(details) != 0 {
		t.Errorf("unexpected details for valid login: %+v", details)
	}
	if details := validateLogin(loginRequest{Password: "pw"}); len(details) == 0 {
		t.Error("expected details for missing email")
	}
	if details := validateLogin(loginRequest{Email: "test@example.com"}); len(details) == 0 {
		t.Error("expected details for missing password")
	}
}
