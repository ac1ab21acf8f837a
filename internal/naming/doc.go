// Package naming provides shared case conversion utilities.
//
// This internal package contains the string transformation functions used
// by multiple packages including render and scaffold. Functions include
// ToPascalCase, ToCamelCase, ToSnakeCase, and ToTitleCase.
//
// ToSnakeCase is a character transform over identifiers that are already
// PascalCase (model class names); the other converters are word splitters
// over raw feature names. The two algorithms are deliberately distinct.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
