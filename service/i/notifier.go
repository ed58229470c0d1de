package i

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(message string)
}
