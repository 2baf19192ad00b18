package domain

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ProviderSlot identifies which configured provider served a chat reply.
type ProviderSlot string

const (
	SlotPrimary   ProviderSlot = "primary"
	SlotSecondary ProviderSlot = "secondary"
)

type ChatReply struct {
	ReplyText    string       `json:"replyText"`
	ProviderName ProviderSlot `json:"providerName"`
	Vendor       string       `json:"-"`
}
