package render

// NotificationKind classifies user-facing feedback raised by the builder.
type NotificationKind string

const (
	NotifyDuplicateName   NotificationKind = "duplicate-name"
	NotifyFormInvalid     NotificationKind = "form-invalid"
	NotifyCancelRequested NotificationKind = "cancel-requested"
	NotifySubmitted       NotificationKind = "submitted"
)

// Notification is delivered synchronously to the presentation layer. Payload
// holds the encoded submission for NotifySubmitted.
type Notification struct {
	Kind    NotificationKind
	Message string
	Payload []byte
	Errors  ErrorMapping
}

// Notifier receives notifications. Implementations must not block for user
// acknowledgement.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(Notification)

// Notify calls the underlying function.
func (fn NotifierFunc) Notify(n Notification) {
	if fn != nil {
		fn(n)
	}
}

// NopNotifier discards every notification.
var NopNotifier Notifier = NotifierFunc(func(Notification) {})
