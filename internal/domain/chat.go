package domain

type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// UserContext is the lightweight profile extracted from chat messages.
// It seeds the system prompt so the assistant can reference what it has
// learned about the user's situation.
type UserContext struct {
	BusinessType string   `json:"businessType,omitempty"`
	Budget       string   `json:"budget,omitempty"`
	Timeline     string   `json:"timeline,omitempty"`
	Goals        []string `json:"goals,omitempty"`
}

// Merge overlays non-empty fields of other onto a copy of c.
func (c UserContext) Merge(other UserContext) UserContext {
	merged := c
	if other.BusinessType != "" {
		merged.BusinessType = other.BusinessType
	}
	if other.Budget != "" {
		merged.Budget = other.Budget
	}
	if other.Timeline != "" {
		merged.Timeline = other.Timeline
	}
	if len(other.Goals) > 0 {
		merged.Goals = other.Goals
	}
	return merged
}
