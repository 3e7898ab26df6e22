// Package templates renders the game web pages as templ components.
//
// Components are hand-written ComponentFunc values rather than generated
// code: the pages are few and small, and the board itself is drawn by
// app.js against the JSON API, so the server only emits the page shell.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

// PageContext carries per-request rendering inputs shared by every page.
type PageContext struct {
	// Lang is the resolved BCP 47 language tag for the page.
	Lang string
	// Printer localizes page strings for the resolved language.
	Printer *message.Printer
}

// T localizes a message key for the page, falling back to the key itself.
func (p PageContext) T(key string) string {
	if p.Printer == nil {
		return key
	}
	return p.Printer.Sprintf("%m", key)
}

// layout wraps a page body in the shared document shell. The body renders
// inside <main> so fragment extraction for partial updates has a stable
// boundary.
func layout(page PageContext, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := page.Lang
		if lang == "" {
			lang = "en"
		}
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang=%q><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s</title>`+
				`<link rel="stylesheet" href="/static/app.css">`+
				`<script src="/static/app.js" defer></script>`+
				`</head><body><header><a href="/" class="brand">%s</a></header><main>`,
			html.EscapeString(lang),
			html.EscapeString(title),
			html.EscapeString(page.T("page.title")),
		); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// HomePage renders the landing page with the new-game form.
func HomePage(page PageContext) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section class="home"><p class="tagline">%s</p>`+
				`<form id="new-game" class="new-game" method="post" action="/play">`+
				`<label>%s<select name="size">`+
				`<option value="4">4×4</option><option value="6" selected>6×6</option><option value="8">8×8</option>`+
				`</select></label>`+
				`<label>%s<select name="difficulty">`+
				`<option value="easy">%s</option><option value="medium" selected>%s</option><option value="hard">%s</option>`+
				`</select></label>`+
				`<label>%s<input name="seed" type="text" autocomplete="off"></label>`+
				`<button type="submit">%s</button>`+
				`</form></section>`,
			html.EscapeString(page.T("page.tagline")),
			html.EscapeString(page.T("home.size")),
			html.EscapeString(page.T("home.difficulty")),
			html.EscapeString(page.T("difficulty.easy")),
			html.EscapeString(page.T("difficulty.medium")),
			html.EscapeString(page.T("difficulty.hard")),
			html.EscapeString(page.T("home.seed")),
			html.EscapeString(page.T("home.new_game")),
		)
		return err
	})
	return layout(page, page.T("page.title"), body)
}

// PlayView provides data for the play page shell. The live board state is
// fetched by app.js through the JSON API using the embedded session id.
type PlayView struct {
	ID         string
	Size       int
	Difficulty string
	Seed       string
	State      string
}

// PlayPage renders the play page for one session.
func PlayPage(page PageContext, view PlayView) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section class="play" id="board" data-session-id=%q data-size="%d" data-state=%q>`+
				`<p class="rules">%s</p>`+
				`<div class="grid" aria-label="puzzle board"></div>`+
				`<div class="controls">`+
				`<button data-action="undo">%s</button>`+
				`<button data-action="redo">%s</button>`+
				`<button data-action="hint">%s</button>`+
				`<button data-action="pause">%s</button>`+
				`<button data-action="reset">%s</button>`+
				`<span class="clock" data-role="clock">00:00.00</span>`+
				`</div>`+
				`<p class="completed" data-role="completed" hidden>%s</p>`+
				`</section>`,
			html.EscapeString(view.ID),
			view.Size,
			html.EscapeString(view.State),
			html.EscapeString(page.T("play.rules")),
			html.EscapeString(page.T("play.undo")),
			html.EscapeString(page.T("play.redo")),
			html.EscapeString(page.T("play.hint")),
			html.EscapeString(page.T("play.pause")),
			html.EscapeString(page.T("play.reset")),
			html.EscapeString(page.T("play.completed")),
		)
		return err
	})
	title := fmt.Sprintf("%s · %d×%d", page.T("page.title"), view.Size, view.Size)
	return layout(page, title, body)
}

// ErrorPage renders a localized error message for web routes.
func ErrorPage(page PageContext, messageText string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="error"><p>%s</p><p><a href="/">%s</a></p></section>`,
			html.EscapeString(messageText),
			html.EscapeString(page.T("home.new_game")),
		)
		return err
	})
	return layout(page, page.T("page.title"), body)
}
