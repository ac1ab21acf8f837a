package stringutil

import "testing"

func TestIsSnakeCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "single word", input: "user", want: true},
		{name: "two words", input: "user_profile", want: true},
		{name: "with digits", input: "order_v2", want: true},
		{name: "trailing underscore", input: "value_", want: true},
		{name: "double underscore", input: "a__b", want: true},
		{name: "leading digit", input: "2fast", want: false},
		{name: "leading underscore", input: "_private", want: false},
		{name: "uppercase letter", input: "userProfile", want: false},
		{name: "PascalCase", input: "UserProfile", want: false},
		{name: "hyphen", input: "user-profile", want: false},
		{name: "space", input: "user profile", want: false},
		{name: "empty string", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSnakeCase(tt.input)
			if got != tt.want {
				t.Errorf("IsSnakeCase(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
