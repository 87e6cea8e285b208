package application

import (
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/ahrav/go-scoreboard/internal/domain"
	"github.com/ahrav/go-scoreboard/internal/ports"
)

var _ ports.Notifier = nopNotifier{}

// nopNotifier drops every message. It stands in when no notifier is wired.
type nopNotifier struct{}

func (nopNotifier) Post(domain.ToastKind, string, time.Duration) string { return "" }

// notifyOutcome posts exactly one message for an operation: an error
// notification when err is set, otherwise text with the given kind.
func notifyOutcome(n ports.Notifier, err error, kind domain.ToastKind, text func() string) {
	if err != nil {
		n.Post(domain.ToastError, userMessage(err), 0)
		return
	}
	n.Post(kind, text(), 0)
}

// newCatalogID returns a random catalog id.
func newCatalogID() string {
	id, err := gonanoid.New()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return id
}
