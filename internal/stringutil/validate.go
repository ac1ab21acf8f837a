package stringutil

import "regexp"

var snakeCaseRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// IsSnakeCase checks if s is a snake_case identifier: a lowercase letter
// followed by lowercase letters, digits or underscores.
func IsSnakeCase(s string) bool {
	return snakeCaseRegex.MatchString(s)
}
