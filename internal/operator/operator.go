package operator

import (
	"context"
	"fmt"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// WriterSource opens a storage Writer bound to a new database transaction.
type WriterSource interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage WriterSource
	queue   chan ActionItem
}

func NewOperator(s WriterSource, queue chan ActionItem) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.processItem(item)}
	}
}

func (o *Operator) processItem(item ActionItem) error {
	// The caller already gave up; nothing was started so nothing to undo.
	if err := item.ctx.Err(); err != nil {
		return err
	}

	logData := logging.GetLogData(item.ctx)
	defer logData.AddToExistingTiming("operator")()

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	if err = item.action.Perform(item.ctx, writer); err != nil {
		if rollbackErr := writer.Rollback(); rollbackErr != nil {
			logData.Log().WithError(rollbackErr).Error("Operator.processItem.rollback")
		}
		return apperr.FromStore(err)
	}

	if err = writer.Commit(); err != nil {
		return apperr.FromStore(fmt.Errorf("commit: %w", err))
	}

	return nil
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
