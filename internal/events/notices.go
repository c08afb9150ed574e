package events

// NoticeLevel classifies a notice for display emphasis.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a short human-readable notification surfaced to the user.
// Controllers publish one per handled failure or completed mutation;
// the presentation layer decides how long it stays visible.
type Notice struct {
	Level NoticeLevel
	Text  string
}
