package constant

// Event bus topics the gateway publishes and the consumer subscribes to.
const (
	TopicReaction    = "platform.reaction"
	TopicMessage     = "platform.message"
	TopicInteraction = "platform.interaction"
)
