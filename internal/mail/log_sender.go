package mail

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogSender writes messages to the log instead of sending them. Used when no
// SMTP relay is configured.
type LogSender struct {
	Logger logrus.FieldLogger
}

func (l *LogSender) Send(_ context.Context, msg Message) error {
	l.Logger.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
		"body":    msg.Text,
	}).Info("Mail.LogSender.Send")
	return nil
}
