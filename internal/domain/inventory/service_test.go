package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type fakeRepo struct {
	items  map[int64]Item
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]Item{}, nextID: 1}
}

func (r *fakeRepo) List(_ context.Context, _ int) ([]Item, error) {
	out := make([]Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeRepo) Create(_ context.Context, _ int, item *Item) (int64, error) {
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = *item
	return item.ID, nil
}

func (r *fakeRepo) Update(_ context.Context, _ int, item *Item) error {
	if _, ok := r.items[item.ID]; !ok {
		return ErrNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, _ int, itemID int64) error {
	if _, ok := r.items[itemID]; !ok {
		return ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr error
	}{
		{
			name: "valid item",
			item: Item{Name: "Rice", QuantityBase: 5000, Price: 85, Factor: 1000},
		},
		{
			name:    "empty name",
			item:    Item{Name: "   ", QuantityBase: 100, Factor: 1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative quantity",
			item:    Item{Name: "Rice", QuantityBase: -1, Factor: 1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative price",
			item:    Item{Name: "Rice", Price: -5, Factor: 1},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(newFakeRepo(), slog.Default())

			id, err := service.Create(context.Background(), 1, tt.item)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, id)
		})
	}
}

func TestService_CreateNormalizesFactor(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, slog.Default())

	id, err := service.Create(context.Background(), 1, Item{Name: "Спички", Factor: 0})
	require.NoError(t, err)

	assert.Equal(t, float64(1), repo.items[id].Factor, "нулевой коэффициент заменяется единицей при сохранении")
}

func TestService_UpdateRequiresID(t *testing.T) {
	service := NewService(newFakeRepo(), slog.Default())

	err := service.Update(context.Background(), 1, Item{Name: "Rice", Factor: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_DeleteRequiresID(t *testing.T) {
	service := NewService(newFakeRepo(), slog.Default())

	err := service.Delete(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
