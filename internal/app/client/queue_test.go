package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavka/internal/domain/operation"
	"lavka/internal/utils/logger"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	return NewQueue(newTestStorage(t), logger.Discard())
}

func TestQueueEnqueueOrder(t *testing.T) {
	queue := newTestQueue(t)

	ops := []operation.Operation{
		operation.DeductStock{Items: []operation.DeductItem{{Name: "Rice", QuantityDisplay: 1}}},
		operation.RecordSale{InvoiceID: "inv-1", Amount: 170, Date: time.Now()},
		operation.DeductStock{Items: []operation.DeductItem{{Name: "Rice", QuantityDisplay: 1.5}}},
	}

	var ids []int64
	for _, op := range ops {
		id, err := queue.Enqueue(op)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// id монотонно растут
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	pending, err := queue.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 3)

	// Порядок постановки, старые первыми
	assert.Equal(t, operation.KindDeductStock, pending[0].Kind)
	assert.Equal(t, operation.KindRecordSale, pending[1].Kind)
	assert.Equal(t, operation.KindDeductStock, pending[2].Kind)
	for i, env := range pending {
		assert.Equal(t, ids[i], env.ID)
		assert.False(t, env.CreatedAt.IsZero(), "метка времени ставится при постановке")
	}
}

func TestQueueResolveIdempotent(t *testing.T) {
	queue := newTestQueue(t)

	id, err := queue.Enqueue(operation.LedgerEntry{CustomerName: "Ахмед", Amount: 50, Date: time.Now()})
	require.NoError(t, err)

	count, err := queue.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, queue.Resolve(id))

	count, err = queue.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	// Повторный Resolve по тому же id — no-op, не ошибка
	require.NoError(t, queue.Resolve(id))

	count, err = queue.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestQueueRoundTripPayload(t *testing.T) {
	queue := newTestQueue(t)

	original := operation.RecordSale{
		Date:      time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		Amount:    340,
		InvoiceID: "inv-42",
		Items: []operation.SaleItem{
			{Name: "Rice", QuantityDisplay: 2, Price: 170},
		},
	}

	_, err := queue.Enqueue(original)
	require.NoError(t, err)

	pending, err := queue.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)

	decoded, err := pending[0].Decode()
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
