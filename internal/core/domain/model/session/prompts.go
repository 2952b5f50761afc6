package session

const (
	PromptAskMember = "Please enter the member number."
	PromptAskOrder  = "Please enter the order number."
	ThankYouMessage = "Thank you for your order. We will arrange the delivery."
)

// PromptFor returns the re-prompt the agent reads out in state s, or "" for
// states that expect no further input.
func PromptFor(s State) string {
	switch s {
	case AskMember:
		return PromptAskMember
	case AskOrder:
		return PromptAskOrder
	default:
		return ""
	}
}

// MemberConfirmedPrompt greets the identified member and asks for the order.
func MemberConfirmedPrompt(name string) string {
	return "Thank you, " + name + ". " + PromptAskOrder
}
