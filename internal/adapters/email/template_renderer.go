package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"vacationbooking/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer serves the invitation and vacation_published mails from
// templates embedded at compile time. Each mail is a triple of files:
// <name>_subject.txt, <name>.html and <name>.txt.
type templateRenderer struct {
	htmlTmpl *template.Template
	textTmpl *texttemplate.Template
}

// NewTemplateRenderer parses every embedded template up front so a broken
// template fails at startup instead of on the first send.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		htmlTmpl: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		textTmpl: texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt")),
	}
}

// Render executes the named mail (e.g. "invitation") with data and returns
// the subject line plus the HTML and plain-text bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	subject, err = r.execText(templateName+"_subject.txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = r.execHTML(templateName+".html", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = r.execText(templateName+".txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func (r *templateRenderer) execHTML(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.htmlTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *templateRenderer) execText(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.textTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
