package intake

import "fmt"

// WelcomeMessage seeds every new chat-widget session.
const WelcomeMessage = `👋 Welcome to Vibe Trading!

We're building an innovative algorithmic trading platform that uses market sentiment analysis to identify opportunities.

✨ Please type your email address in this chat to join our waitlist and get notified when we launch! ✨

I can also tell you more about our project if you have questions.`

// ProjectInfoMessage answers questions about the project.
const ProjectInfoMessage = `Vibe Trading is currently in development. Here's what we're working on:

• Advanced algorithmic trading strategies based on market sentiment
• Real-time analysis of social media and news sources
• User-friendly interface with customizable trading parameters
• Secure API integrations with major exchanges

Our platform is designed to help both beginners and experienced traders make more informed decisions based on market sentiment.`

// FallbackMessage is the generic nudge toward providing an email.
const FallbackMessage = `That's interesting! If you'd like to stay updated on our progress, just share your email address.`

// Tier messages shown by the full chat shell depending on entitlement.
const (
	GuestStatusMessage = "Still collecting historical moon-phase data. 💫\nLeave your e-mail or grab an Early-Bird pass to get first access!"

	WaitlistStatusMessage = "Thanks for joining our waitlist! You'll be among the first to access our full features once they're ready.\nUpgrade to Early-Bird for immediate access."

	PaidStatusMessage = "Welcome to Vibe Trading! I'm your AI trading assistant. How can I help you today?"
)

// StatusMessage selects the tier message for the full chat shell.
func StatusMessage(status string) string {
	switch status {
	case "waitlist":
		return WaitlistStatusMessage
	case "paid":
		return PaidStatusMessage
	default:
		return GuestStatusMessage
	}
}

func emailAckMessage(email string) string {
	return fmt.Sprintf(`Thanks for subscribing with %s! We'll notify you when Vibe Trading launches.

Is there anything else you'd like to know about our platform?`, email)
}
