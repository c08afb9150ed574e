package domain

import (
	"strings"
	"time"
)

// Message is one entry in a ticket's conversation thread. Identifier
// and created_at are server-assigned; messages are never edited or
// deleted by this layer.
type Message struct {
	ID         int64            `json:"id"`
	TicketID   int64            `json:"ticket_id"`
	SenderID   string           `json:"sender_id"`
	Content    string           `json:"content"`
	IsInternal bool             `json:"is_internal"`
	CreatedAt  time.Time        `json:"created_at"`
	Profile    *CustomerProfile `json:"profiles,omitempty"`
}

// IsFromAgent reports agent authorship. The wire contract carries no
// role on messages; authorship is inferred from the sender identifier
// containing "agent", matching the historical convention. A customer
// identifier that happens to contain the substring is misattributed.
// Kept until the contract grows an explicit role field.
func (m *Message) IsFromAgent() bool {
	return strings.Contains(m.SenderID, "agent")
}

// ConversationRole labels one turn of an AI conversation history.
type ConversationRole string

const (
	ConversationRoleAssistant ConversationRole = "assistant"
	ConversationRoleUser      ConversationRole = "user"
)

// ConversationTurn is one entry of the history sent to the AI backend.
type ConversationTurn struct {
	Role    ConversationRole `json:"role"`
	Content string           `json:"content"`
}

// ConversationHistory maps a thread onto AI roles: agent-authored
// messages become "assistant" turns, everything else "user".
func ConversationHistory(messages []Message) []ConversationTurn {
	turns := make([]ConversationTurn, 0, len(messages))
	for i := range messages {
		role := ConversationRoleUser
		if messages[i].IsFromAgent() {
			role = ConversationRoleAssistant
		}
		turns = append(turns, ConversationTurn{Role: role, Content: messages[i].Content})
	}
	return turns
}
