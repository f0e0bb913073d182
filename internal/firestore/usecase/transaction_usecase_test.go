package usecase

import (
	"context"
	stderrors "errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestore-fake/internal/firestore/domain/model"
	"firestore-fake/internal/shared/errors"
)

func TestRunTransaction_CommitsBufferedWritesInOrder(t *testing.T) {
	uc := newTestUsecase(t)
	ctx := context.Background()

	require.NoError(t, uc.SetDocument(ctx, "accounts/a", map[string]interface{}{"balance": 100}, false))

	result, err := uc.RunTransaction(ctx, func(ctx context.Context, tx *Transaction) (interface{}, error) {
		snap, err := tx.Get(ctx, "accounts/a")
		if err != nil {
			return nil, err
		}
		balance, err := snap.Get("balance")
		if err != nil {
			return nil, err
		}

		if err := tx.Update(ctx, "accounts/a", map[string]interface{}{"balance": model.Increment(-30)}); err != nil {
			return nil, err
		}
		if err := tx.Set(ctx, "accounts/b", map[string]interface{}{"balance": 30}, false); err != nil {
			return nil, err
		}
		// Later writes win over earlier ones to the same document.
		if err := tx.Update(ctx, "accounts/b", map[string]interface{}{"note": "transfer"}); err != nil {
			return nil, err
		}
		return map[string]interface{}{"before": balance}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"before": int64(100)}, result)

	snapA, err := uc.GetDocument(ctx, "accounts/a")
	require.NoError(t, err)
	assert.Equal(t, int64(70), snapA.Data()["balance"])

	snapB, err := uc.GetDocument(ctx, "accounts/b")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"balance": int64(30), "note": "transfer"}, snapB.Data())
}

func TestRunTransaction_GetAfterWriteFails(t *testing.T) {
	uc := newTestUsecase(t)
	ctx := context.Background()

	require.NoError(t, uc.SetDocument(ctx, "accounts/a", map[string]interface{}{"balance": 100}, false))

	_, err := uc.RunTransaction(ctx, func(ctx context.Context, tx *Transaction) (interface{}, error) {
		if err := tx.Set(ctx, "accounts/a", map[string]interface{}{"balance": 0}, false); err != nil {
			return nil, err
		}
		_, err := tx.Get(ctx, "accounts/a")
		return nil, err
	})
	require.Error(t, err)
	assert.True(t, errors.IsTransactionOrdering(err))

	// The buffered write was discarded with the abort.
	snap, err := uc.GetDocument(ctx, "accounts/a")
	require.NoError(t, err)
	assert.Equal(t, int64(100), snap.Data()["balance"])
}

func TestRunTransaction_NoReadYourWrites(t *testing.T) {
	uc := newTestUsecase(t)
	ctx := context.Background()

	require.NoError(t, uc.SetDocument(ctx, "docs/d", map[string]interface{}{"v": 1}, false))

	_, err := uc.RunTransaction(ctx, func(ctx context.Context, tx *Transaction) (interface{}, error) {
		// Reads before any write see committed state only.
		snap, err := tx.Get(ctx, "docs/d")
		if err != nil {
			return nil, err
		}
		if got := snap.Data()["v"]; got != int64(1) {
			t.Fatalf("expected committed value, got %v", got)
		}
		return nil, tx.Set(ctx, "docs/d", map[string]interface{}{"v": 2}, false)
	})
	require.NoError(t, err)
}

func TestRunTransaction_CallbackErrorAborts(t *testing.T) {
	uc := newTestUsecase(t)
	ctx := context.Background()

	boom := stderrors.New("boom")
	_, err := uc.RunTransaction(ctx, func(ctx context.Context, tx *Transaction) (interface{}, error) {
		if err := tx.Set(ctx, "docs/d", map[string]interface{}{"v": 1}, false); err != nil {
			return nil, err
		}
		return nil, boom
	})
	require.Error(t, err)
	assert.True(t, errors.IsTransactionCallback(err))
	assert.True(t, stderrors.Is(err, boom))

	snap, err := uc.GetDocument(ctx, "docs/d")
	require.NoError(t, err)
	assert.False(t, snap.Exists())
}

func TestRunTransaction_AppErrorPassesThrough(t *testing.T) {
	uc := newTestUsecase(t)

	_, err := uc.RunTransaction(context.Background(), func(ctx context.Context, tx *Transaction) (interface{}, error) {
		return nil, tx.Set(ctx, "bad", map[string]interface{}{}, false)
	})
	require.Error(t, err)
	assert.True(t, errors.IsPathError(err))
	assert.False(t, errors.IsTransactionCallback(err))
}

func TestRunTransaction_ResultValidation(t *testing.T) {
	testCases := []struct {
		name   string
		result interface{}
		valid  bool
	}{
		{name: "nil", result: nil, valid: true},
		{name: "safe map", result: map[string]interface{}{"n": int64(1), "s": "x", "list": []interface{}{1.5, true}}, valid: true},
		{name: "non-map", result: "just a string", valid: false},
		{name: "big int inside", result: map[string]interface{}{"n": big.NewInt(1)}, valid: false},
		{name: "struct inside", result: map[string]interface{}{"v": struct{ X int }{1}}, valid: false},
		{name: "channel inside", result: map[string]interface{}{"ch": make(chan int)}, valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newTestUsecase(t)
			ctx := context.Background()

			_, err := uc.RunTransaction(ctx, func(ctx context.Context, tx *Transaction) (interface{}, error) {
				if err := tx.Set(ctx, "docs/d", map[string]interface{}{"v": 1}, false); err != nil {
					return nil, err
				}
				return tc.result, nil
			})

			snap, getErr := uc.GetDocument(ctx, "docs/d")
			require.NoError(t, getErr)
			if tc.valid {
				require.NoError(t, err)
				assert.True(t, snap.Exists())
			} else {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
				// Invalid results abort before any buffered write applies.
				assert.False(t, snap.Exists())
			}
		})
	}
}

func TestRunTransaction_DeleteBuffered(t *testing.T) {
	uc := newTestUsecase(t)
	ctx := context.Background()

	require.NoError(t, uc.SetDocument(ctx, "docs/d", map[string]interface{}{"v": 1}, false))

	_, err := uc.RunTransaction(ctx, func(ctx context.Context, tx *Transaction) (interface{}, error) {
		if err := tx.Delete(ctx, "docs/d"); err != nil {
			return nil, err
		}
		// Still visible until commit.
		if !uc.store.HasDocument(ctx, "docs/d") {
			t.Fatal("delete applied before commit")
		}
		return nil, nil
	})
	require.NoError(t, err)

	snap, err := uc.GetDocument(ctx, "docs/d")
	require.NoError(t, err)
	assert.False(t, snap.Exists())
}

func TestRunTransaction_InvalidIncrementOperandAbortsWithZeroWrites(t *testing.T) {
	uc := newTestUsecase(t)
	ctx := context.Background()

	_, err := uc.RunTransaction(ctx, func(ctx context.Context, tx *Transaction) (interface{}, error) {
		if err := tx.Set(ctx, "docs/first", map[string]interface{}{"v": 1}, false); err != nil {
			return nil, err
		}
		// The bad operand must fail here, at buffer time, not during commit.
		err := tx.Update(ctx, "docs/second", map[string]interface{}{"n": model.Increment("oops")})
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
		return nil, err
	})
	require.Error(t, err)

	first, err := uc.GetDocument(ctx, "docs/first")
	require.NoError(t, err)
	assert.False(t, first.Exists())
	second, err := uc.GetDocument(ctx, "docs/second")
	require.NoError(t, err)
	assert.False(t, second.Exists())
}
