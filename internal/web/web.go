// Package web holds the embedded site assets: page templates, landing page
// copy authored in markdown, and the static stylesheet and chat script.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

//go:embed templates/*.html content/*.md static/*
var assets embed.FS

// Feature is one card in the landing page feature grid.
type Feature struct {
	Icon        string
	Title       string
	Description template.HTML
}

// Link is a footer contact link.
type Link struct {
	Label    string
	Href     string
	External bool
}

// featureSources lists the feature cards in display order.
var featureSources = []struct {
	icon  string
	title string
	file  string
}{
	{icon: "🤖", title: "AI-Powered Chat", file: "content/feature-chat.md"},
	{icon: "🌿", title: "Eco Recommendations", file: "content/feature-eco.md"},
	{icon: "♻️", title: "Circular Lifestyle", file: "content/feature-circular.md"},
}

// ContactLinks are shown in the landing page footer.
var ContactLinks = []Link{
	{Label: "LinkedIn", Href: "https://linkedin.com", External: true},
	{Label: "GitHub", Href: "https://github.com", External: true},
	{Label: "Contact", Href: "mailto:contact@reupyog.in"},
}

// landingData holds template data for the landing page.
type landingData struct {
	Features []Feature
	About    template.HTML
	Links    []Link
	Year     int
}

// Pages renders the site pages. Markdown is converted once in NewPages.
type Pages struct {
	landing  *template.Template
	chat     *template.Template
	features []Feature
	about    template.HTML
	now      func() time.Time
}

// NewPages parses the embedded templates and renders the landing page copy.
func NewPages() (*Pages, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	landing, err := template.ParseFS(assets, "templates/layout.html", "templates/landing.html")
	if err != nil {
		return nil, fmt.Errorf("parse landing template: %w", err)
	}
	chat, err := template.ParseFS(assets, "templates/layout.html", "templates/chat.html")
	if err != nil {
		return nil, fmt.Errorf("parse chat template: %w", err)
	}

	features := make([]Feature, 0, len(featureSources))
	for _, src := range featureSources {
		html, err := renderMarkdown(md, src.file)
		if err != nil {
			return nil, err
		}
		features = append(features, Feature{Icon: src.icon, Title: src.title, Description: html})
	}

	about, err := renderMarkdown(md, "content/about.md")
	if err != nil {
		return nil, err
	}

	return &Pages{
		landing:  landing,
		chat:     chat,
		features: features,
		about:    about,
		now:      time.Now,
	}, nil
}

// Features returns the rendered feature cards.
func (p *Pages) Features() []Feature {
	return p.features
}

// RenderLanding writes the landing page.
func (p *Pages) RenderLanding(w io.Writer) error {
	return p.landing.ExecuteTemplate(w, "layout", landingData{
		Features: p.features,
		About:    p.about,
		Links:    ContactLinks,
		Year:     p.now().Year(),
	})
}

// RenderChat writes the chat page.
func (p *Pages) RenderChat(w io.Writer) error {
	return p.chat.ExecuteTemplate(w, "layout", nil)
}

// Static returns a handler serving the embedded static files. Mount it with
// the URL prefix stripped.
func Static() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// static/ is embedded at build time
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func renderMarkdown(md goldmark.Markdown, name string) (template.HTML, error) {
	src, err := assets.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert markdown %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
