package conversation

// Responder produces the chatbot text for a submitted prompt.
type Responder interface {
	Reply(prompt string) string
}

// Canned answers every prompt with the same text.
type Canned string

func (c Canned) Reply(string) string {
	return string(c)
}

// ResponderFunc adapts a function to the Responder interface.
type ResponderFunc func(prompt string) string

func (f ResponderFunc) Reply(prompt string) string {
	return f(prompt)
}
