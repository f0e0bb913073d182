package usecase

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"

	"firestore-fake/internal/firestore/domain/model"
	"firestore-fake/internal/shared/contextkeys"
	"firestore-fake/internal/shared/errors"
	"firestore-fake/internal/shared/paths"
)

// transactionState is the per-attempt state machine:
// active -> writing -> committed | aborted.
type transactionState int

const (
	txActive transactionState = iota
	txWriting
	txCommitted
	txAborted
)

type pendingWriteKind int

const (
	writeSet pendingWriteKind = iota
	writeUpdate
	writeDelete
)

// pendingWrite is one buffered mutation, applied only on commit.
type pendingWrite struct {
	kind  pendingWriteKind
	path  string
	data  map[string]interface{}
	merge bool
}

// Transaction buffers the operations issued inside one RunTransaction
// callback. Reads run eagerly against committed store state; writes queue up
// and apply atomically on success. Once the first write is issued no further
// reads are permitted.
type Transaction struct {
	id     string
	uc     *FirestoreUsecase
	state  transactionState
	writes []pendingWrite
}

// TransactionFunc is the caller-supplied transaction body. Its returned
// value becomes the transaction result and must be nil or a
// map[string]interface{} restricted to the safe value kinds.
type TransactionFunc func(ctx context.Context, tx *Transaction) (interface{}, error)

// Get reads a document inside the transaction. It sees committed state at
// read time, not this transaction's own buffered writes, and fails once any
// write has been issued.
func (tx *Transaction) Get(ctx context.Context, path string) (*model.DocumentSnapshot, error) {
	if tx.state == txWriting {
		return nil, errors.NewTransactionOrderingError("cannot read after writing in a transaction").
			WithDetail("transaction_id", tx.id).
			WithDetail("path", path)
	}
	return tx.uc.GetDocument(ctx, path)
}

// Set buffers a document set. Path and payload are validated eagerly so the
// commit itself cannot fail halfway.
func (tx *Transaction) Set(ctx context.Context, path string, data map[string]interface{}, merge bool) error {
	if err := paths.ValidateDocumentPath(path); err != nil {
		return err
	}
	if err := validateUpdateData(data); err != nil {
		return err
	}
	tx.buffer(pendingWrite{kind: writeSet, path: path, data: model.DeepCopyMap(data), merge: merge})
	return nil
}

// Update buffers a document update.
func (tx *Transaction) Update(ctx context.Context, path string, data map[string]interface{}) error {
	if err := paths.ValidateDocumentPath(path); err != nil {
		return err
	}
	if err := validateUpdateData(data); err != nil {
		return err
	}
	tx.buffer(pendingWrite{kind: writeUpdate, path: path, data: model.DeepCopyMap(data)})
	return nil
}

// Delete buffers a document delete.
func (tx *Transaction) Delete(ctx context.Context, path string) error {
	if err := paths.ValidateDocumentPath(path); err != nil {
		return err
	}
	tx.buffer(pendingWrite{kind: writeDelete, path: path})
	return nil
}

func (tx *Transaction) buffer(write pendingWrite) {
	tx.state = txWriting
	tx.writes = append(tx.writes, write)
}

// RunTransaction executes fn and commits its buffered writes atomically on
// success. Any error from the callback, and any invalid result value, aborts
// the attempt with zero writes applied.
func (uc *FirestoreUsecase) RunTransaction(ctx context.Context, fn TransactionFunc) (map[string]interface{}, error) {
	tx := &Transaction{id: uuid.NewString(), uc: uc, state: txActive}
	ctx = context.WithValue(ctx, contextkeys.TransactionIDKey, tx.id)
	log := uc.log.WithFields(map[string]interface{}{"transaction_id": tx.id})
	log.Debug("transaction started")

	result, err := fn(ctx, tx)
	if err != nil {
		tx.state = txAborted
		log.Debugf("transaction aborted: %v", err)
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, errors.NewTransactionCallbackError(err)
	}

	resultMap, err := validateTransactionResult(result)
	if err != nil {
		tx.state = txAborted
		log.Debugf("transaction aborted: %v", err)
		return nil, err
	}

	for _, write := range tx.writes {
		if err := uc.applyPendingWrite(ctx, write); err != nil {
			tx.state = txAborted
			log.Errorf("transaction failed applying buffered write to %s: %v", write.path, err)
			return nil, errors.WrapError(err, "applying buffered transaction write")
		}
	}
	tx.state = txCommitted
	log.Debugf("transaction committed (%d writes)", len(tx.writes))
	return resultMap, nil
}

func (uc *FirestoreUsecase) applyPendingWrite(ctx context.Context, write pendingWrite) error {
	switch write.kind {
	case writeSet:
		return uc.SetDocument(ctx, write.path, write.data, write.merge)
	case writeUpdate:
		return uc.UpdateDocument(ctx, write.path, write.data)
	case writeDelete:
		return uc.DeleteDocument(ctx, write.path)
	default:
		return errors.NewInternalError("unknown pending write kind")
	}
}

// validateTransactionResult checks the callback's return value: nil is
// allowed, otherwise it must be a map whose values, recursively, are
// restricted to the safe value kinds.
func validateTransactionResult(result interface{}) (map[string]interface{}, error) {
	if result == nil {
		return nil, nil
	}
	resultMap, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.NewValidationError("transaction result must be nil or a map").
			WithCause(errors.ErrInvalidResultValue)
	}
	if err := model.ValidateResultValue(resultMap); err != nil {
		return nil, err
	}
	return resultMap, nil
}
