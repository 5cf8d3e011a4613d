package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavka/internal/app/client/config"
	"lavka/internal/domain/inventory"
	"lavka/internal/domain/operation"
	"lavka/internal/utils/logger"
)

// fakeSheet имитирует удаленное хранилище строк: GET отдает все строки,
// PUT перезаписывает одну
type fakeSheet struct {
	rows map[int64]inventory.Item
	puts int
}

func (f *fakeSheet) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/items", func(w http.ResponseWriter, r *http.Request) {
		items := make([]inventory.Item, 0, len(f.rows))
		for _, item := range f.rows {
			items = append(items, item)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
	})
	mux.HandleFunc("/api/v1/items/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/v1/items/"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var item inventory.Item
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		item.ID = id
		f.rows[id] = item
		f.puts++
		json.NewEncoder(w).Encode(map[string]string{"status": "Ok"})
	})
	return mux
}

func newTestRemote(t *testing.T, sheet *fakeSheet) *remote {
	t.Helper()

	server := httptest.NewServer(sheet.handler())
	t.Cleanup(server.Close)

	cfg := &config.Config{
		ServerAddress: strings.TrimPrefix(server.URL, "http://"),
		SyncInterval:  30,
	}
	return newRemote(cfg, logger.Discard())
}

func TestApplyDeductionRice(t *testing.T) {
	// Рис: 5000 грамм, продажа идет килограммами
	sheet := &fakeSheet{rows: map[int64]inventory.Item{
		1: {ID: 1, Name: "Rice", QuantityBase: 5000, BaseUnit: "gram", DisplayUnit: "kilogram", Factor: 1000},
	}}
	r := newTestRemote(t, sheet)

	matched, err := r.ApplyDeduction(context.Background(), []operation.DeductItem{
		{Name: "Rice", QuantityDisplay: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, matched)
	assert.InDelta(t, 3000, sheet.rows[1].QuantityBase, 1e-9, "5000 г − 2 кг = 3000 г")
}

func TestApplyDeductionSequential(t *testing.T) {
	// Два отложенных списания одного товара обязаны примениться
	// последовательно: 5000 − 1000 − 1500 = 2500, а не 3500
	sheet := &fakeSheet{rows: map[int64]inventory.Item{
		1: {ID: 1, Name: "Rice", QuantityBase: 5000, BaseUnit: "gram", DisplayUnit: "kilogram", Factor: 1000},
	}}
	r := newTestRemote(t, sheet)

	for _, qty := range []float64{1, 1.5} {
		_, err := r.ApplyDeduction(context.Background(), []operation.DeductItem{
			{Name: "Rice", QuantityDisplay: qty},
		})
		require.NoError(t, err)
	}

	assert.InDelta(t, 2500, sheet.rows[1].QuantityBase, 1e-9)
	assert.Equal(t, 2, sheet.puts)
}

func TestApplyDeductionMatchesByName(t *testing.T) {
	sheet := &fakeSheet{rows: map[int64]inventory.Item{
		1: {ID: 1, Name: "  Сахар ", QuantityBase: 2000, Factor: 1000},
		2: {ID: 2, Name: "Rice", QuantityBase: 5000, Factor: 1000},
	}}
	r := newTestRemote(t, sheet)

	// Регистр и пробелы не мешают сопоставлению
	matched, err := r.ApplyDeduction(context.Background(), []operation.DeductItem{
		{Name: "сахар", QuantityDisplay: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, matched)
	assert.InDelta(t, 1000, sheet.rows[1].QuantityBase, 1e-9)
	assert.InDelta(t, 5000, sheet.rows[2].QuantityBase, 1e-9, "чужая строка не тронута")
}

func TestApplyDeductionNoMatch(t *testing.T) {
	sheet := &fakeSheet{rows: map[int64]inventory.Item{
		1: {ID: 1, Name: "Rice", QuantityBase: 5000, Factor: 1000},
	}}
	r := newTestRemote(t, sheet)

	// Товар переименован или удален на сервере между постановкой и повтором
	_, err := r.ApplyDeduction(context.Background(), []operation.DeductItem{
		{Name: "Гречка", QuantityDisplay: 1},
	})
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Zero(t, sheet.puts)
}

func TestApplyDeductionClampsAtZero(t *testing.T) {
	sheet := &fakeSheet{rows: map[int64]inventory.Item{
		1: {ID: 1, Name: "Масло", QuantityBase: 500, Factor: 1000},
	}}
	r := newTestRemote(t, sheet)

	// Продали больше, чем числится: остаток не уходит в минус
	_, err := r.ApplyDeduction(context.Background(), []operation.DeductItem{
		{Name: "Масло", QuantityDisplay: 3},
	})
	require.NoError(t, err)
	assert.Zero(t, sheet.rows[1].QuantityBase)
}

func TestApplyDeductionZeroFactor(t *testing.T) {
	// Битая строка с нулевым коэффициентом: формула списания дает
	// base − 3×0, остаток не меняется. Защита "ноль как единица" живет
	// только в ToDisplay, где иначе было бы деление на ноль.
	sheet := &fakeSheet{rows: map[int64]inventory.Item{
		1: {ID: 1, Name: "Спички", QuantityBase: 10, Factor: 0},
	}}
	r := newTestRemote(t, sheet)

	matched, err := r.ApplyDeduction(context.Background(), []operation.DeductItem{
		{Name: "Спички", QuantityDisplay: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, matched)
	assert.InDelta(t, 10, sheet.rows[1].QuantityBase, 1e-9)
}

func TestRemoteTokenConcurrentAccess(t *testing.T) {
	// Токен пишется из Login/Logout и читается фоновыми циклами
	// одновременно; детектор гонок не должен находить здесь ничего
	sheet := &fakeSheet{rows: map[int64]inventory.Item{
		1: {ID: 1, Name: "Rice", QuantityBase: 5000, Factor: 1000},
	}}
	r := newTestRemote(t, sheet)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			r.SetToken(fmt.Sprintf("token-%d", n))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = r.FetchItems(context.Background())
		}()
	}
	wg.Wait()
}
