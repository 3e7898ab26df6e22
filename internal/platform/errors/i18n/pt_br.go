package i18n

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		// Game errors
		CodeGameInvalidSize:       "O tamanho de tabuleiro {{.Size}} não é suportado",
		CodeGameInvalidDifficulty: "A dificuldade {{.Difficulty}} não é easy, medium ou hard",
		CodeGameInvalidSymbol:     "O valor {{.Value}} não é um símbolo válido",
		CodeGameInvalidPosition:   "A posição {{.Row}},{{.Col}} está fora do tabuleiro",
		CodeGameSnapshotInvalid:   "Não foi possível restaurar o jogo salvo",

		// Challenge errors
		CodeChallengeGrantInvalid:  "O link de desafio é inválido",
		CodeChallengeGrantExpired:  "O link de desafio expirou",
		CodeChallengeGrantMismatch: "O campo {{.Field}} do desafio não confere",
		CodeChallengeUnavailable:   "Links de desafio não estão disponíveis neste servidor",

		// Storage errors
		CodeNotFound:      "O recurso solicitado não foi encontrado",
		CodeAlreadyExists: "Já existe um jogo salvo com este ID",

		// Listing errors
		CodeFilterInvalid:    "Não foi possível interpretar a expressão de filtro",
		CodePageTokenInvalid: "O token de página é inválido",
	},
}
