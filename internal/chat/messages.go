package chat

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

const (
	SystemPrompt = "You are DisasterHelper, an AI assistant specifically designed to help people during disaster situations. " +
		"Provide clear, concise, and helpful information. Prioritize safety advice, emergency procedures, and practical guidance. " +
		"If someone is in immediate danger, always advise them to contact emergency services first."

	Greeting = "Hello, I'm DisasterHelper. I'm here to assist you during this difficult time. How can I help you today?"

	FallbackReply = "I'm having trouble connecting right now. If you are in immediate danger, please contact your local emergency services."
)

func initialTranscript() []Message {
	return []Message{
		{Role: RoleSystem, Content: SystemPrompt},
		{Role: RoleAssistant, Content: Greeting},
	}
}
