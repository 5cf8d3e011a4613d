package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"lavka/internal/app/client/config"
	"lavka/internal/domain/inventory"
	"lavka/internal/domain/ledger"
	"lavka/internal/domain/operation"

	"golang.org/x/exp/slog"
)

// ErrNoMatch — ни одна позиция списания не нашла строку на сервере.
// Сопоставление идет по нормализованному названию в момент применения:
// сервер — источник истины о строках, локальные id к моменту повтора
// могли устареть.
var ErrNoMatch = errors.New("товар не найден на сервере")

// ErrUnauthorized — сервер не принял токен
var ErrUnauthorized = errors.New("требуется вход в систему")

// remote — HTTP-адаптер удаленного хранилища. Вся арифметика пересчета
// единиц при списании считается здесь, той же моделью, что и при продаже
// онлайн — результат отложенного повтора обязан совпасть с немедленным.
type remote struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	userAgent string

	mu    sync.RWMutex
	token string
}

func newRemote(cfg *config.Config, log *slog.Logger) *remote {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &remote{
		client:    client,
		config:    cfg,
		log:       log.With("component", "remote"),
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "Lavka-Client/1.0",
	}
}

// SetToken устанавливает токен аутентификации. Токен читают фоновые
// циклы опроса и автопрохода, поэтому доступ под замком.
func (r *remote) SetToken(token string) {
	r.mu.Lock()
	r.token = token
	r.mu.Unlock()
}

// HealthCheck проверяет доступность сервера; используется монитором сети
func (r *remote) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}
	return nil
}

// Register регистрирует владельца лавки
func (r *remote) Register(ctx context.Context, login, password, shopName string) error {
	body := map[string]string{
		"login":     login,
		"password":  password,
		"shop_name": shopName,
	}
	resp, err := r.doRequest(ctx, http.MethodPost, "/api/v1/user/register", body)
	if err != nil {
		return err
	}
	return r.parseResponse(resp, nil)
}

// Login выполняет вход и возвращает токен
func (r *remote) Login(ctx context.Context, login, password string) (string, error) {
	body := map[string]string{
		"login":    login,
		"password": password,
	}
	resp, err := r.doRequest(ctx, http.MethodPost, "/api/v1/user/login", body)
	if err != nil {
		return "", err
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := r.parseResponse(resp, &loginResp); err != nil {
		return "", err
	}
	if loginResp.Token == "" {
		return "", fmt.Errorf("сервер не вернул токен")
	}

	r.SetToken(loginResp.Token)
	return loginResp.Token, nil
}

// FetchItems забирает полный набор строк товарных остатков
func (r *remote) FetchItems(ctx context.Context) ([]inventory.Item, error) {
	resp, err := r.doRequest(ctx, http.MethodGet, "/api/v1/items", nil)
	if err != nil {
		return nil, err
	}

	var itemsResp struct {
		Items []inventory.Item `json:"items"`
	}
	if err := r.parseResponse(resp, &itemsResp); err != nil {
		return nil, err
	}
	return itemsResp.Items, nil
}

// CreateItem добавляет строку товара на сервер
func (r *remote) CreateItem(ctx context.Context, item inventory.Item) (int64, error) {
	resp, err := r.doRequest(ctx, http.MethodPost, "/api/v1/items", item)
	if err != nil {
		return 0, err
	}

	var createResp struct {
		ID int64 `json:"id"`
	}
	if err := r.parseResponse(resp, &createResp); err != nil {
		return 0, err
	}
	return createResp.ID, nil
}

// UpdateItem перезаписывает строку товара на сервере
func (r *remote) UpdateItem(ctx context.Context, item inventory.Item) error {
	resp, err := r.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v1/items/%d", item.ID), item)
	if err != nil {
		return err
	}
	return r.parseResponse(resp, nil)
}

// ApplyDeduction применяет списание к удаленным строкам. Строки читаются
// заново при каждом применении, позиции сопоставляются по названию, новые
// остатки считаются моделью пересчета единиц и пишутся по одной,
// последовательно. Возвращает число сопоставленных позиций; если не
// сопоставилась ни одна — ErrNoMatch.
func (r *remote) ApplyDeduction(ctx context.Context, items []operation.DeductItem) (int, error) {
	rows, err := r.FetchItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("чтение строк для списания: %w", err)
	}

	matched := 0
	for _, d := range items {
		idx := -1
		for i := range rows {
			if inventory.SameName(rows[i].Name, d.Name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			r.log.Warn("позиция списания не нашла строку на сервере", "name", d.Name)
			continue
		}

		row := rows[idx]
		row.QuantityBase = inventory.Deduct(row.QuantityBase, d.QuantityDisplay, row.Factor)

		if err := r.UpdateItem(ctx, row); err != nil {
			return matched, fmt.Errorf("запись остатка %q: %w", row.Name, err)
		}
		rows[idx] = row
		matched++
	}

	if matched == 0 {
		return 0, ErrNoMatch
	}
	return matched, nil
}

// ApplySale записывает продажу в журнал продаж
func (r *remote) ApplySale(ctx context.Context, op operation.RecordSale) error {
	body := struct {
		operation.RecordSale
		ItemCount int `json:"item_count"`
	}{RecordSale: op, ItemCount: len(op.Items)}

	resp, err := r.doRequest(ctx, http.MethodPost, "/api/v1/sales", body)
	if err != nil {
		return err
	}
	return r.parseResponse(resp, nil)
}

// ApplyLedger записывает строку в долговую книгу
func (r *remote) ApplyLedger(ctx context.Context, op operation.LedgerEntry) error {
	resp, err := r.doRequest(ctx, http.MethodPost, "/api/v1/ledger", op)
	if err != nil {
		return err
	}
	return r.parseResponse(resp, nil)
}

// FetchCustomers забирает покупателей с балансами долгов
func (r *remote) FetchCustomers(ctx context.Context) ([]ledger.Customer, error) {
	resp, err := r.doRequest(ctx, http.MethodGet, "/api/v1/customers", nil)
	if err != nil {
		return nil, err
	}

	var customersResp struct {
		Customers []ledger.Customer `json:"customers"`
	}
	if err := r.parseResponse(resp, &customersResp); err != nil {
		return nil, err
	}
	return customersResp.Customers, nil
}

func (r *remote) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("сериализация запроса: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Content-Type", "application/json")

	r.mu.RLock()
	token := r.token
	r.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос %s %s: %w", method, path, err)
	}
	return resp, nil
}

func (r *remote) parseResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("чтение ответа: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("сервер: %s (статус %d)", errResp.Error, resp.StatusCode)
		}
		return fmt.Errorf("сервер вернул статус %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("разбор ответа: %w", err)
	}
	return nil
}
