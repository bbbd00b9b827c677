package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	apperrors "slotwise/pkg/errors"
)

type TransactionFunc func(ctx mongo.SessionContext) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type mongoTransactionManager struct {
	client     *mongo.Client
	maxRetries int
}

func NewTransactionManager(client *mongo.Client, maxRetries int) TransactionManager {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &mongoTransactionManager{
		client:     client,
		maxRetries: maxRetries,
	}
}

// ExecuteTransaction runs fn inside a session transaction. Write contention
// (transient transaction labels) is retried up to maxRetries and then
// surfaced as a generic Conflict, so callers can tell "try again" apart from
// policy errors that will never succeed.
func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return apperrors.Internal("Failed to start store session", err)
	}
	defer session.EndSession(ctx)

	var lastErr error
	for attempt := 0; attempt < m.maxRetries; attempt++ {
		_, lastErr = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
			return nil, fn(sessCtx)
		})
		if lastErr == nil {
			return nil
		}
		if apperrors.IsAppError(lastErr) {
			return lastErr
		}
		if !isTransient(lastErr) {
			return fmt.Errorf("transaction failed: %w", lastErr)
		}
	}

	return apperrors.Conflict("Store contention, the operation was retried and still conflicts. Please try again.")
}

func isTransient(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.HasErrorLabel("TransientTransactionError") ||
			cmdErr.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}
