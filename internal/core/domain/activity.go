package domain

import "time"

type Note struct {
	ID            string     `json:"id"`
	ApplicationID string     `json:"application_id"`
	Content       string     `json:"content"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type CommunicationChannel string

const (
	ChannelEmail   CommunicationChannel = "email"
	ChannelPhone   CommunicationChannel = "phone"
	ChannelMeeting CommunicationChannel = "meeting"
	ChannelOther   CommunicationChannel = "other"
)

func (c CommunicationChannel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelPhone, ChannelMeeting, ChannelOther:
		return true
	default:
		return false
	}
}

type CommunicationDirection string

const (
	DirectionIncoming CommunicationDirection = "incoming"
	DirectionOutgoing CommunicationDirection = "outgoing"
)

type Communication struct {
	ID            string                 `json:"id"`
	ApplicationID string                 `json:"application_id"`
	Channel       CommunicationChannel   `json:"channel"`
	Subject       string                 `json:"subject,omitempty"`
	Content       string                 `json:"content,omitempty"`
	OccurredAt    time.Time              `json:"occurred_at"`
	Direction     CommunicationDirection `json:"direction"`
	ContactPerson string                 `json:"contact_person,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}
