// Package ui renders the static congratulations page into a host document
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

const (
	Heading = "Congratulations!"
	Message = "You have achieved your goal!"
)

//go:embed templates/*.html
var templatesFS embed.FS

var tmpl = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// componentData is the fixed content of the congratulations component
type componentData struct {
	Heading string
	Message string
}

// Congratulations renders the component markup: a centered flex column
// holding one heading and one paragraph. It takes no input.
func Congratulations() (template.HTML, error) {
	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "congratulations", componentData{
		Heading: Heading,
		Message: Message,
	})
	if err != nil {
		return "", fmt.Errorf("render congratulations: %w", err)
	}
	return template.HTML(buf.String()), nil
}
