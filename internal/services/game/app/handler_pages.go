package app

import (
	"net/http"
	"strconv"

	apperrors "github.com/louisbranch/equinox.space/internal/platform/errors"
	errori18n "github.com/louisbranch/equinox.space/internal/platform/errors/i18n"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/session"
	webi18n "github.com/louisbranch/equinox.space/internal/services/game/web/i18n"
	"github.com/louisbranch/equinox.space/internal/services/game/web/templates"
	"github.com/louisbranch/equinox.space/internal/services/shared/htmx"
	"golang.org/x/text/language"
)

// pageContext resolves the request language, persisting an explicit lang
// selection as a cookie, and builds the shared template inputs.
func pageContext(w http.ResponseWriter, r *http.Request) (templates.PageContext, language.Tag) {
	tag, persist := webi18n.ResolveTag(r)
	if persist {
		webi18n.SetLanguageCookie(w, tag)
	}
	return templates.PageContext{
		Lang:    tag.String(),
		Printer: webi18n.Printer(tag),
	}, tag
}

// writePageError renders a localized error page for web routes.
func writePageError(w http.ResponseWriter, r *http.Request, page templates.PageContext, tag language.Tag, err error) {
	code := apperrors.GetCode(err)
	message := errori18n.GetCatalog(tag.String()).Format(string(code), apperrors.GetMetadata(err))
	w.WriteHeader(code.HTTPStatus())
	htmx.RenderPage(w, r, templates.ErrorPage(page, message), page.T("page.title"))
}

func (h *Handler) handleHomePage(w http.ResponseWriter, r *http.Request) {
	page, _ := pageContext(w, r)
	htmx.RenderPage(w, r, templates.HomePage(page), page.T("page.title"))
}

// handlePlayCreate opens a session from the home form and redirects to its
// play page.
func (h *Handler) handlePlayCreate(w http.ResponseWriter, r *http.Request) {
	page, tag := pageContext(w, r)

	if err := r.ParseForm(); err != nil {
		writePageError(w, r, page, tag, apperrors.Wrap(apperrors.CodeUnknown, "parse form", err))
		return
	}

	size, err := strconv.Atoi(r.PostFormValue("size"))
	if err != nil {
		writePageError(w, r, page, tag, apperrors.WithMetadata(apperrors.CodeGameInvalidSize, "size must be an integer", map[string]string{
			"Size": r.PostFormValue("size"),
		}))
		return
	}

	difficulty, seed, err := validateGameParams(size, r.PostFormValue("difficulty"), r.PostFormValue("seed"))
	if err != nil {
		writePageError(w, r, page, tag, err)
		return
	}

	sess := session.New(size, difficulty, seed, h.now)
	sessionID, err := h.registry.Add(sess)
	if err != nil {
		writePageError(w, r, page, tag, err)
		return
	}

	http.Redirect(w, r, "/play/"+sessionID, http.StatusSeeOther)
}

func (h *Handler) handlePlayPage(w http.ResponseWriter, r *http.Request) {
	page, tag := pageContext(w, r)
	sessionID := r.PathValue("id")

	var view templates.PlayView
	err := h.registry.Do(sessionID, func(s *session.Session) error {
		view = templates.PlayView{
			ID:         sessionID,
			Size:       s.Size(),
			Difficulty: string(s.Difficulty()),
			Seed:       s.Seed(),
			State:      string(s.State()),
		}
		return nil
	})
	if err != nil {
		writePageError(w, r, page, tag, mapRegistryErr(err))
		return
	}

	htmx.RenderPage(w, r, templates.PlayPage(page, view), page.T("page.title"))
}
