package operation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapDecode(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		op   Operation
	}{
		{
			name: "списание остатков",
			op: DeductStock{Items: []DeductItem{
				{Name: "Rice", QuantityDisplay: 2},
				{Name: "Сахар", QuantityDisplay: 0.5},
			}},
		},
		{
			name: "запись продажи",
			op: RecordSale{
				Date:      now,
				Amount:    340,
				InvoiceID: "d1f0b7ac-0000-0000-0000-000000000001",
				Items:     []SaleItem{{Name: "Rice", QuantityDisplay: 2, Price: 170}},
			},
		},
		{
			name: "запись в долговую книгу",
			op:   LedgerEntry{CustomerName: "Ахмед", Amount: 120, Date: now},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Wrap(tt.op, now)
			require.NoError(t, err)
			assert.Equal(t, tt.op.Kind(), env.Kind)
			assert.Equal(t, now, env.CreatedAt)

			decoded, err := env.Decode()
			require.NoError(t, err)
			assert.Equal(t, tt.op, decoded)
		})
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	env := Envelope{Kind: "drop_table", Payload: []byte(`{}`)}

	_, err := env.Decode()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDecodeBrokenPayload(t *testing.T) {
	env := Envelope{Kind: KindDeductStock, Payload: []byte(`{"items":`)}

	_, err := env.Decode()
	assert.Error(t, err)
}
