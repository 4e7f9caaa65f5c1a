package models

import "time"

const (
	ContactPending = "Pending"
	ContactReplied = "Replied"

	SubscriberSubscribed   = "Subscribed"
	SubscriberUnsubscribed = "Unsubscribed"
)

// Contact is a contact-us request. A reply can be sent once.
type Contact struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Message   string     `json:"message"`
	Replied   string     `json:"replied"`
	Reply     string     `json:"reply,omitempty"`
	RepliedBy string     `json:"repliedBy,omitempty"`
	RepliedAt *time.Time `json:"repliedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (c Contact) IsReplied() bool {
	return c.Replied == ContactReplied || c.Reply != ""
}

type Subscriber struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToggledStatus returns the status the subscriber moves to when toggled.
func (s Subscriber) ToggledStatus() string {
	if s.Status == SubscriberSubscribed {
		return SubscriberUnsubscribed
	}
	return SubscriberSubscribed
}
