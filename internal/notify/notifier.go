// Package notify delivers post-decision notifications to submitters.
// Dispatch is fire-and-forget: the pipeline enqueues an event after its
// transaction commits and never learns about delivery failures beyond a
// log line.
package notify

import "context"

// Event describes one decided submission. Values is the snapshot map the
// decision was made on, so the notifier reads exactly what was stored.
type Event struct {
	SubmissionID  uint
	ReferenceNo   string
	SubmitterName string
	Approved      bool
	Values        map[string]string
	ReasonAr      string
	ReasonEn      string
}

// Notifier is the delivery collaborator. The boolean result is used only
// for logging.
type Notifier interface {
	NotifyApproved(ctx context.Context, event Event) bool
	NotifyRejected(ctx context.Context, event Event) bool
}
