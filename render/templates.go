package render

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl templates/fragments/*.tmpl
var templateFS embed.FS

var templates *template.Template

func init() {
	var err error
	templates, err = template.New("").
		Funcs(templateFuncs).
		ParseFS(templateFS, "templates/*.tmpl", "templates/fragments/*.tmpl")
	if err != nil {
		panic(err)
	}
}

// templateFuncs provides custom functions for templates
var templateFuncs = template.FuncMap{
	"join":          strings.Join,
	"title":         featureTitle,
	"ctorParams":    ctorParams,
	"factoryParams": factoryParams,
}

// featureTitle converts a snake_case feature name to a human-readable
// title, e.g. "user_profile" becomes "User Profile".
func featureTitle(raw string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(raw, "_", " "))
}

// ctorParams renders a named constructor parameter list over this-fields,
// e.g. "{required this.id, required this.body}". Empty when there are no
// fields so the constructor renders as "()".
func ctorParams(fields []ParamData) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, len(fields))
	for i, fld := range fields {
		parts[i] = "required this." + fld.Name
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// factoryParams renders a named typed parameter list for factory variants,
// e.g. "{required int id}".
func factoryParams(fields []ParamData) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, len(fields))
	for i, fld := range fields {
		parts[i] = "required " + fld.Type + " " + fld.Name
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// executeTemplate executes a template by name and returns the rendered text
func executeTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
