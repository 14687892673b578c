package assistant

// Canned answers for greetings and identity questions, keyed by the
// normalized query.
var cannedResponses = map[string]string{
	"qual é o seu nome?":   "Meu nome é Pítia, e estou aqui para ajudar!",
	"quem é você?":         "Sou Pítia, sua assistente virtual. Como posso ajudar?",
	"qual é a sua função?": "Minha função é ajudar a responder perguntas e fornecer informações.",
	"oi":                   "Olá! Como posso ajudar?",
	"olá":                  "Olá! Pronto para ajudar.",
	"bom dia":              "Bom dia! Como posso ser útil hoje?",
	"boa tarde":            "Boa tarde! Em que posso ajudar?",
	"boa noite":            "Boa noite! Como posso ajudar?",
}

const (
	elaborateResponse = "Sua pergunta parece muito breve. Poderia elaborar ou fornecer mais detalhes? " +
		"Por exemplo: em vez de 'deus grego', pergunte 'quem é o deus grego mais importante?'"

	notFoundResponse = "Não consegui encontrar informações relevantes. Poderia reformular a pergunta?"

	noContentResponse = "Encontrei referências, mas não consegui extrair uma explicação clara."
)
