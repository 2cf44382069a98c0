package domain

type SenderKind string

const (
	SenderUser   SenderKind = "user"
	SenderSystem SenderKind = "system"
)

// Sender tags who authored a group message. System notices (join/leave)
// carry no user id, so clients render them without an avatar.
type Sender struct {
	Kind SenderKind `json:"kind"`
	ID   UserID     `json:"id,omitempty"`
	Name string     `json:"name"`
}

func UserSender(id UserID, name string) Sender {
	return Sender{Kind: SenderUser, ID: id, Name: name}
}

func SystemSender() Sender {
	return Sender{Kind: SenderSystem, Name: "System"}
}
