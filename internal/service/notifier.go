package service

import (
	"context"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

// MultiNotifier fans a notification out to several channels.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, message string, severity entities.Severity) {
	for _, n := range m {
		n.Notify(ctx, message, severity)
	}
}
