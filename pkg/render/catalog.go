package render

// Label keys shared by the bundled renderers.
const (
	LabelQuestions  = "label.questions"
	LabelAnswers    = "label.answers"
	LabelTopic      = "label.topic"
	LabelTags       = "label.tags"
	LabelAuthor     = "label.author"
	LabelSubmitted  = "label.submitted"
	LabelPublic     = "label.public"
	LabelRestricted = "label.restricted"
	LabelNoAnswer   = "label.no_answer"
)

// DefaultCatalog returns the built-in UI strings for the locales the service
// recognises. English is the fallback locale.
func DefaultCatalog() *Catalog {
	c := NewCatalog("ENGLISH")
	c.Add("ENGLISH", map[string]string{
		LabelQuestions:  "Questions",
		LabelAnswers:    "Answers",
		LabelTopic:      "Topic",
		LabelTags:       "Tags",
		LabelAuthor:     "Author",
		LabelSubmitted:  "Submitted",
		LabelPublic:     "Public",
		LabelRestricted: "Restricted",
		LabelNoAnswer:   "No answer",
	})
	c.Add("SPANISH", map[string]string{
		LabelQuestions:  "Preguntas",
		LabelAnswers:    "Respuestas",
		LabelTopic:      "Tema",
		LabelTags:       "Etiquetas",
		LabelAuthor:     "Autor",
		LabelSubmitted:  "Enviado",
		LabelPublic:     "Público",
		LabelRestricted: "Restringido",
		LabelNoAnswer:   "Sin respuesta",
	})
	c.Add("RUSSIAN", map[string]string{
		LabelQuestions:  "Вопросы",
		LabelAnswers:    "Ответы",
		LabelTopic:      "Тема",
		LabelTags:       "Теги",
		LabelAuthor:     "Автор",
		LabelSubmitted:  "Отправлено",
		LabelPublic:     "Публичный",
		LabelRestricted: "Ограниченный",
		LabelNoAnswer:   "Нет ответа",
	})
	return c
}
