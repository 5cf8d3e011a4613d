package client

import (
	"encoding/json"
	"fmt"
	"time"

	"lavka/internal/domain/inventory"
	"lavka/internal/domain/ledger"
	"lavka/internal/domain/sale"
)

// Типизированные обертки над коллекциями локального хранилища. Снимки
// товаров и покупателей заменяются целиком при каждой удачной загрузке
// с сервера; между загрузками их правят только оптимистичные обновления.

// ReplaceInventory целиком заменяет локальный снимок товаров и двигает
// отметку времени последней синхронизации
func (a *App) ReplaceInventory(items []inventory.Item) error {
	if err := a.storage.Clear(CollectionInventory); err != nil {
		return err
	}
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("сериализация товара %q: %w", item.Name, err)
		}
		if err := a.storage.Put(CollectionInventory, item.ID, data); err != nil {
			return err
		}
	}
	return a.storage.SetState(StateLastInventorySync, time.Now().UTC().Format(time.RFC3339))
}

// CachedItems возвращает локальный снимок товаров
func (a *App) CachedItems() ([]inventory.Item, error) {
	records, err := a.storage.GetAll(CollectionInventory)
	if err != nil {
		return nil, err
	}

	items := make([]inventory.Item, 0, len(records))
	for _, rec := range records {
		var item inventory.Item
		if err := json.Unmarshal(rec.Data, &item); err != nil {
			return nil, fmt.Errorf("разбор товара %d: %w", rec.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// deductCachedLocally оптимистично списывает проданное с локального снимка,
// той же арифметикой, что спишет сервер. Снимок все равно будет заменен
// при следующей загрузке — это только чтобы экран не врал до нее.
func (a *App) deductCachedLocally(name string, quantityDisplay float64) error {
	items, err := a.CachedItems()
	if err != nil {
		return err
	}

	for _, item := range items {
		if !inventory.SameName(item.Name, name) {
			continue
		}
		item.QuantityBase = inventory.Deduct(item.QuantityBase, quantityDisplay, item.Factor)
		data, err := json.Marshal(item)
		if err != nil {
			return err
		}
		return a.storage.Put(CollectionInventory, item.ID, data)
	}
	return nil
}

// CacheSale добавляет продажу в локальный журнал
func (a *App) CacheSale(s sale.Sale) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("сериализация продажи: %w", err)
	}
	_, err = a.storage.Add(CollectionSales, 0, data)
	return err
}

// CachedSales возвращает локальный журнал продаж, старые первыми
func (a *App) CachedSales() ([]sale.Sale, error) {
	records, err := a.storage.GetAll(CollectionSales)
	if err != nil {
		return nil, err
	}

	sales := make([]sale.Sale, 0, len(records))
	for _, rec := range records {
		var s sale.Sale
		if err := json.Unmarshal(rec.Data, &s); err != nil {
			return nil, fmt.Errorf("разбор продажи %d: %w", rec.ID, err)
		}
		s.ID = rec.ID
		sales = append(sales, s)
	}
	return sales, nil
}

// ReplaceCustomers целиком заменяет локальный снимок покупателей
func (a *App) ReplaceCustomers(customers []ledger.Customer) error {
	if err := a.storage.Clear(CollectionCustomers); err != nil {
		return err
	}
	for _, c := range customers {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("сериализация покупателя %q: %w", c.Name, err)
		}
		if err := a.storage.Put(CollectionCustomers, c.ID, data); err != nil {
			return err
		}
	}
	return nil
}

// CachedCustomers возвращает локальный снимок покупателей
func (a *App) CachedCustomers() ([]ledger.Customer, error) {
	records, err := a.storage.GetAll(CollectionCustomers)
	if err != nil {
		return nil, err
	}

	customers := make([]ledger.Customer, 0, len(records))
	for _, rec := range records {
		var c ledger.Customer
		if err := json.Unmarshal(rec.Data, &c); err != nil {
			return nil, fmt.Errorf("разбор покупателя %d: %w", rec.ID, err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// LastInventorySync возвращает время последней загрузки снимка товаров
func (a *App) LastInventorySync() (time.Time, error) {
	value, err := a.storage.GetState(StateLastInventorySync)
	if err != nil || value == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}
