// Package htmx serves templ pages to both full-page and htmx requests.
package htmx

import (
	"bytes"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// RequestHeader marks a request initiated by htmx.
const RequestHeader = "HX-Request"

// IsHTMXRequest reports whether the request came from htmx.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeader), "true")
}

// TitleTag formats an escaped <title> element, empty for a blank title.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

// RenderPage writes a full document for regular requests. For htmx
// requests it renders the same page, extracts the <main> content, and
// prefixes a title tag so htmx can swap the fragment and retitle the tab.
func RenderPage(w http.ResponseWriter, r *http.Request, page templ.Component, title string) {
	if page == nil {
		return
	}
	if !IsHTMXRequest(r) {
		templ.Handler(page).ServeHTTP(w, r)
		return
	}

	var buf bytes.Buffer
	if err := page.Render(r.Context(), &buf); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	body := buf.Bytes()
	if main, ok := extractMainContent(body); ok {
		body = main
	}
	if tag := TitleTag(title); tag != "" && !bytes.Contains(bytes.ToLower(body), []byte("<title")) {
		body = append([]byte(tag), body...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

func extractMainContent(body []byte) ([]byte, bool) {
	start := bytes.Index(body, []byte("<main"))
	if start < 0 {
		return nil, false
	}
	open := bytes.Index(body[start:], []byte(">"))
	if open < 0 {
		return nil, false
	}
	contentStart := start + open + 1
	end := bytes.Index(body[contentStart:], []byte("</main>"))
	if end < 0 {
		return nil, false
	}
	return body[contentStart : contentStart+end], true
}
