// Package naming provides shared string case conversion utilities.
package naming

import (
	"strings"
	"unicode"
)

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, whitespace) trigger capitalization of the next letter.
// Example: "user_profile" -> "UserProfile"
// Example: "order history" -> "OrderHistory"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the first letter lowercase.
// Example: "user_profile" -> "userProfile"
// Example: "UserProfile" -> "userProfile"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ToSnakeCase converts a PascalCase identifier to snake_case.
// Internal uppercase letters are prefixed with underscore and lowercased;
// everything else passes through unchanged. This is deliberately not the
// inverse of ToPascalCase: it is a character transform over identifiers
// that are already PascalCase (model class names), not a word splitter.
// Example: "UserProfile" -> "user_profile"
// Example: "GetUsersResponse" -> "get_users_response"
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToTitleCase converts a separated name to a spaced title.
// Separator runs (underscore, hyphen, whitespace) become single spaces and
// each word's first letter is uppercased; the rest of the word is preserved.
// Example: "user_profile" -> "User Profile"
// Example: "order history" -> "Order History"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	startWord := true
	for _, r := range s {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			startWord = true
			continue
		}
		if startWord {
			if result.Len() > 0 {
				result.WriteRune(' ')
			}
			result.WriteRune(unicode.ToUpper(r))
			startWord = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
