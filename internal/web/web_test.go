package web

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewPages_Features(t *testing.T) {
	pages, err := NewPages()
	if err != nil {
		t.Fatalf("NewPages() error = %v", err)
	}

	features := pages.Features()
	wantTitles := []string{"AI-Powered Chat", "Eco Recommendations", "Circular Lifestyle"}
	if len(features) != len(wantTitles) {
		t.Fatalf("Features() returned %d cards, want %d", len(features), len(wantTitles))
	}
	for i, f := range features {
		if f.Title != wantTitles[i] {
			t.Errorf("feature %d title = %q, want %q", i, f.Title, wantTitles[i])
		}
		if !strings.HasPrefix(string(f.Description), "<p>") {
			t.Errorf("feature %d description not rendered as HTML: %q", i, f.Description)
		}
	}
	if !strings.Contains(string(features[0].Description), "<strong>refurbished products</strong>") {
		t.Errorf("feature markdown emphasis not rendered: %q", features[0].Description)
	}
}

func TestPages_RenderLanding(t *testing.T) {
	pages, err := NewPages()
	if err != nil {
		t.Fatalf("NewPages() error = %v", err)
	}
	pages.now = func() time.Time { return time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	if err := pages.RenderLanding(&buf); err != nil {
		t.Fatalf("RenderLanding() error = %v", err)
	}
	html := buf.String()

	wantContains := []string{
		"<!DOCTYPE html>",
		"<title>ReUpyog AI</title>",
		`href="/chatbot"`,
		"Try ReUpyog AI",
		`id="features"`,
		`id="about"`,
		`id="contact"`,
		"AI-Powered Chat",
		"Eco Recommendations",
		"Circular Lifestyle",
		"&copy; 2031 ReUpyog AI",
		"mailto:contact@reupyog.in",
		`class="chat-fab"`,
		"<li>",
	}
	for _, want := range wantContains {
		if !strings.Contains(html, want) {
			t.Errorf("RenderLanding() missing %q", want)
		}
	}
	if strings.Contains(html, "/static/chat.js") {
		t.Error("RenderLanding() should not load the chat script")
	}
}

func TestPages_RenderChat(t *testing.T) {
	pages, err := NewPages()
	if err != nil {
		t.Fatalf("NewPages() error = %v", err)
	}

	var buf bytes.Buffer
	if err := pages.RenderChat(&buf); err != nil {
		t.Fatalf("RenderChat() error = %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<title>Chat with ReUpyog AI</title>",
		`id="chat-form"`,
		`id="chat-text"`,
		`id="chat-typing"`,
		"Ask ReUpyog AI about refurbished electronics...",
		`<script src="/static/chat.js"></script>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("RenderChat() missing %q", want)
		}
	}
}

func TestStatic(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantType   string
		wantBody   string
	}{
		{
			name:       "stylesheet",
			path:       "/style.css",
			wantStatus: http.StatusOK,
			wantType:   "text/css",
			wantBody:   ".chat-widget",
		},
		{
			name:       "chat script posts full history",
			path:       "/chat.js",
			wantStatus: http.StatusOK,
			wantType:   "javascript",
			wantBody:   `JSON.stringify({ messages: history })`,
		},
		{
			name:       "missing file",
			path:       "/missing.js",
			wantStatus: http.StatusNotFound,
		},
	}

	handler := Static()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantType != "" && !strings.Contains(w.Header().Get("Content-Type"), tt.wantType) {
				t.Errorf("Content-Type = %q, want %q", w.Header().Get("Content-Type"), tt.wantType)
			}
			if tt.wantBody != "" {
				body, _ := io.ReadAll(w.Body)
				if !strings.Contains(string(body), tt.wantBody) {
					t.Errorf("body missing %q", tt.wantBody)
				}
			}
		})
	}
}
