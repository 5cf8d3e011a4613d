package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavka/internal/app/client/config"
	"lavka/internal/domain/inventory"
	"lavka/internal/domain/operation"
	"lavka/internal/utils/logger"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		ServerAddress: "localhost:1", // до сервера не дойдет ни один запрос
		TokenPath:     filepath.Join(dir, "token"),
		DataPath:      filepath.Join(dir, "lavka.db"),
		SyncInterval:  30,
		ProbeInterval: 15,
	}

	app, err := New(cfg, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestNewSaleOfflineQueuesPair(t *testing.T) {
	app := newTestApp(t)
	app.Netmon().SetOnline(false)

	items := []operation.SaleItem{
		{Name: "Rice", QuantityDisplay: 2, Price: 85},
	}
	result, err := app.NewSale(context.Background(), items, "", false)
	require.NoError(t, err)
	assert.True(t, result.Queued)
	assert.InDelta(t, 170, result.Sale.Amount, 1e-9)
	assert.NotEmpty(t, result.Sale.InvoiceID)

	// В очереди ровно пара: списание раньше записи о продаже, как и онлайн
	pending, err := app.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, operation.KindDeductStock, pending[0].Kind)
	assert.Equal(t, operation.KindRecordSale, pending[1].Kind)

	// Чек лег в локальный журнал непереданным
	sales, err := app.CachedSales()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.False(t, sales[0].Synced)
}

func TestNewSaleOfflineOnCredit(t *testing.T) {
	app := newTestApp(t)
	app.Netmon().SetOnline(false)

	items := []operation.SaleItem{
		{Name: "Сахар", QuantityDisplay: 1, Price: 60},
	}
	result, err := app.NewSale(context.Background(), items, "Ахмед", true)
	require.NoError(t, err)
	assert.True(t, result.Queued)

	pending, err := app.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, operation.KindDeductStock, pending[0].Kind)
	assert.Equal(t, operation.KindRecordSale, pending[1].Kind)
	assert.Equal(t, operation.KindLedgerEntry, pending[2].Kind)

	op, err := pending[2].Decode()
	require.NoError(t, err)
	entry, ok := op.(operation.LedgerEntry)
	require.True(t, ok)
	assert.Equal(t, "Ахмед", entry.CustomerName)
	assert.InDelta(t, 60, entry.Amount, 1e-9)
}

func TestNewSaleOfflineDeductsLocalSnapshot(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, app.ReplaceInventory([]inventory.Item{
		{ID: 1, Name: "Rice", QuantityBase: 5000, Price: 85, Factor: 1000, DisplayUnit: "килограмм"},
	}))

	app.Netmon().SetOnline(false)

	_, err := app.NewSale(context.Background(), []operation.SaleItem{
		{Name: "rice", QuantityDisplay: 2, Price: 85},
	}, "", false)
	require.NoError(t, err)

	// Экран не должен врать до следующей загрузки снимка
	items, err := app.CachedItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 3000, items[0].QuantityBase, 1e-9)
}

func TestNewSaleEmptyReceipt(t *testing.T) {
	app := newTestApp(t)

	_, err := app.NewSale(context.Background(), nil, "", false)
	assert.Error(t, err)

	count, err := app.PendingCount()
	require.NoError(t, err)
	assert.Zero(t, count, "неудавшаяся продажа не оставляет следов в очереди")
}
