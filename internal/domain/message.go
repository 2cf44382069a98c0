package domain

import "github.com/google/uuid"

func NewMessageID() string {
	return uuid.NewString()
}

// Attachment is carried verbatim; the server never decodes InlineData.
type Attachment struct {
	InlineData string `json:"inlineData"`
	FileName   string `json:"fileName"`
	MimeType   string `json:"mimeType"`
}

type WorldMessage struct {
	ID         string      `json:"id"`
	AuthorID   UserID      `json:"authorId"`
	AuthorName string      `json:"authorDisplayName"`
	Text       string      `json:"text"`
	Timestamp  int64       `json:"timestamp"`
	Avatar     string      `json:"avatar,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

type DirectMessage struct {
	ID         string      `json:"id"`
	FromID     UserID      `json:"fromId"`
	FromName   string      `json:"fromDisplayName"`
	ToID       UserID      `json:"toId"`
	ToName     string      `json:"toDisplayName"`
	Text       string      `json:"text"`
	Timestamp  int64       `json:"timestamp"`
	Avatar     string      `json:"avatar,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

type GroupMessage struct {
	ID         string      `json:"id"`
	GroupID    GroupID     `json:"groupId"`
	Sender     Sender      `json:"sender"`
	Text       string      `json:"text"`
	Timestamp  int64       `json:"timestamp"`
	Avatar     string      `json:"avatar,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}
