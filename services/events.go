package services

const (
	EventCommentAdded   = "comment_added"
	EventCommentDeleted = "comment_deleted"
	EventPostUpdated    = "post_updated"
	EventPostDeleted    = "post_deleted"
)

// EventPublisher fans out live updates for a post. Publish must not block.
type EventPublisher interface {
	Publish(postID uint, eventType string, data interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(uint, string, interface{}) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
