package events

// Topic names. Each one maps 1:1 to a GraphQL subscription field, so the
// gateway relays a published event to subscribers without any translation.
const (
	TopicProjectCreated = "projectCreated"
	TopicProjectUpdated = "projectUpdated"
	TopicProjectDeleted = "projectDeleted"

	TopicTaskCreated  = "taskCreated"
	TopicTaskUpdated  = "taskUpdated"
	TopicTaskDeleted  = "taskDeleted"
	TopicTaskAssigned = "taskAssigned"

	TopicUserCreated = "userCreated"
	TopicUserUpdated = "userUpdated"
	TopicUserDeleted = "userDeleted"
)

var knownTopics = map[string]bool{
	TopicProjectCreated: true,
	TopicProjectUpdated: true,
	TopicProjectDeleted: true,
	TopicTaskCreated:    true,
	TopicTaskUpdated:    true,
	TopicTaskDeleted:    true,
	TopicTaskAssigned:   true,
	TopicUserCreated:    true,
	TopicUserUpdated:    true,
	TopicUserDeleted:    true,
}

// IsKnownTopic reports whether name is one of the declared topics
func IsKnownTopic(name string) bool {
	return knownTopics[name]
}

// Event is an ephemeral domain event. Payload holds the full post-mutation
// entity. CorrelationID carries the client-supplied id of the mutation that
// produced the event, so originating clients can suppress their own echo.
type Event struct {
	Topic         string `json:"topic"`
	Payload       any    `json:"payload"`
	CorrelationID string `json:"correlationId,omitempty"`
}
