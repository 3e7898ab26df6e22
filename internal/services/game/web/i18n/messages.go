package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Page strings for the play surface. Keys are registered for every
// supported tag; a missing translation falls back to the key itself,
// which keeps an untranslated page readable rather than blank.
func init() {
	en := language.English
	ptBR := language.MustParse("pt-BR")

	for key, text := range map[string]string{
		"page.title":          "Equinox",
		"page.tagline":        "Balance sun and moon across the board.",
		"home.new_game":       "New game",
		"home.size":           "Board size",
		"home.difficulty":     "Difficulty",
		"home.seed":           "Seed (optional)",
		"difficulty.easy":     "Easy",
		"difficulty.medium":   "Medium",
		"difficulty.hard":     "Hard",
		"play.undo":           "Undo",
		"play.redo":           "Redo",
		"play.hint":           "Hint",
		"play.pause":          "Pause",
		"play.resume":         "Resume",
		"play.reset":          "Reset",
		"play.completed":      "Puzzle solved!",
		"play.rules":          "Fill the board. No more than two equal symbols in a row, each line holds as many suns as moons, linked cells obey their sign.",
		"nav.lang_en":         "English",
		"nav.lang_pt_br":      "Português (Brasil)",
	} {
		_ = message.SetString(en, key, text)
	}

	for key, text := range map[string]string{
		"page.title":          "Equinox",
		"page.tagline":        "Equilibre sol e lua pelo tabuleiro.",
		"home.new_game":       "Novo jogo",
		"home.size":           "Tamanho do tabuleiro",
		"home.difficulty":     "Dificuldade",
		"home.seed":           "Semente (opcional)",
		"difficulty.easy":     "Fácil",
		"difficulty.medium":   "Médio",
		"difficulty.hard":     "Difícil",
		"play.undo":           "Desfazer",
		"play.redo":           "Refazer",
		"play.hint":           "Dica",
		"play.pause":          "Pausar",
		"play.resume":         "Continuar",
		"play.reset":          "Reiniciar",
		"play.completed":      "Quebra-cabeça resolvido!",
		"play.rules":          "Preencha o tabuleiro. No máximo dois símbolos iguais seguidos, cada linha tem tantos sóis quanto luas, células ligadas obedecem ao sinal.",
		"nav.lang_en":         "English",
		"nav.lang_pt_br":      "Português (Brasil)",
	} {
		_ = message.SetString(ptBR, key, text)
	}
}
