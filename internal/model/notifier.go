package model

// Notifier defines a generic interface for delivering alert digest
// notifications to an external channel.
type Notifier interface {
	Send(subject, body string) error
}
