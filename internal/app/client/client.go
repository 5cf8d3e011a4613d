package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"lavka/internal/app/client/config"
	"lavka/internal/domain/inventory"
	"lavka/internal/domain/operation"
	"lavka/internal/domain/sale"
)

// App собирает клиента воедино: локальное хранилище, очередь, монитор сети,
// координатор синхронизации и адаптер сервера. Конструируется один раз на
// процесс и передается по ссылке — никакого глобального состояния.
type App struct {
	config  *config.Config
	log     *slog.Logger
	storage *SQLiteStorage
	remote  *remote
	monitor *Monitor
	queue   *Queue
	sync    *Coordinator

	mu            gosync.RWMutex
	authenticated bool
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	// База не открылась — фатально для сеанса, без отката на память:
	// молчаливая потеря очереди хуже отказа запуститься
	storage, err := NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:  cfg,
		log:     log,
		storage: storage,
		remote:  newRemote(cfg, log),
		monitor: NewMonitor(log),
	}
	app.queue = NewQueue(storage, log)
	app.sync = NewCoordinator(app.queue, app.monitor, app.applyOperation, log)

	// Подхватываем сохраненный токен
	if token, err := os.ReadFile(cfg.TokenPath); err == nil && len(token) > 0 {
		app.remote.SetToken(string(token))
		app.authenticated = true
		log.Debug("токен загружен из файла")
	}

	return app, nil
}

// Close закрывает локальное хранилище
func (a *App) Close() error {
	return a.storage.Close()
}

// Sync возвращает координатор синхронизации
func (a *App) Sync() *Coordinator { return a.sync }

// Netmon возвращает монитор сети
func (a *App) Netmon() *Monitor { return a.monitor }

// PendingCount возвращает длину очереди отложенных операций
func (a *App) PendingCount() (int, error) { return a.queue.Count() }

// DropPending вручную выбрасывает операцию из очереди. Нужен для
// операций, которые сервер отвергает раз за разом: координатор сам их
// никогда не бросит.
func (a *App) DropPending(id int64) error { return a.queue.Resolve(id) }

// ListPending возвращает содержимое очереди для показа пользователю
func (a *App) ListPending() ([]operation.Envelope, error) { return a.queue.ListPending() }

// IsAuthenticated сообщает, есть ли сохраненный токен
func (a *App) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authenticated
}

// CheckConnection опрашивает сервер и двигает состояние монитора
func (a *App) CheckConnection(ctx context.Context) error {
	err := a.remote.HealthCheck(ctx)
	a.monitor.SetOnline(err == nil)
	return err
}

// StartBackground запускает фоновые циклы: опрос сервера и автопроход
// очереди по возвращении сети. Для разовых команд CLI не нужен, нужен
// для sync --watch.
func (a *App) StartBackground(ctx context.Context) {
	a.sync.Bind(ctx)
	go a.monitor.Watch(ctx, time.Duration(a.config.ProbeInterval)*time.Second, a.remote.HealthCheck)
	go a.sync.AutoSync(ctx, time.Duration(a.config.SyncInterval)*time.Second)
}

// Register регистрирует владельца лавки на сервере
func (a *App) Register(ctx context.Context, login, password, shopName string) error {
	if err := a.remote.Register(ctx, login, password, shopName); err != nil {
		return err
	}
	return a.storage.SetState(StateShopName, shopName)
}

// Login выполняет вход и сохраняет токен в файл
func (a *App) Login(ctx context.Context, login, password string) error {
	token, err := a.remote.Login(ctx, login, password)
	if err != nil {
		return err
	}

	if err := os.WriteFile(a.config.TokenPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("сохранение токена: %w", err)
	}

	a.mu.Lock()
	a.authenticated = true
	a.mu.Unlock()
	return nil
}

// Logout стирает сохраненный токен
func (a *App) Logout() error {
	a.mu.Lock()
	a.authenticated = false
	a.mu.Unlock()
	a.remote.SetToken("")

	if err := os.Remove(a.config.TokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("удаление токена: %w", err)
	}
	return nil
}

// RefreshInventory забирает снимок товаров с сервера и целиком заменяет
// им локальный кэш
func (a *App) RefreshInventory(ctx context.Context) error {
	items, err := a.remote.FetchItems(ctx)
	if err != nil {
		a.monitor.SetOnline(false)
		return err
	}
	a.monitor.SetOnline(true)
	return a.ReplaceInventory(items)
}

// RefreshCustomers забирает покупателей с балансами
func (a *App) RefreshCustomers(ctx context.Context) error {
	customers, err := a.remote.FetchCustomers(ctx)
	if err != nil {
		a.monitor.SetOnline(false)
		return err
	}
	a.monitor.SetOnline(true)
	return a.ReplaceCustomers(customers)
}

// AddItem заводит новый товар на сервере (только онлайн: создание строки
// не откладывается, чтобы не плодить дубликаты при повторе)
func (a *App) AddItem(ctx context.Context, item inventory.Item) (int64, error) {
	return a.remote.CreateItem(ctx, item)
}

// SaleResult — итог проведения продажи
type SaleResult struct {
	Sale   sale.Sale
	Queued bool // операции легли в очередь, а не ушли на сервер
}

// NewSale проводит продажу. Онлайн — списание и запись в журнал уходят на
// сервер сразу; офлайн (или если сервер отвалился на полпути) — намерения
// ложатся в очередь: списание раньше записи о продаже, чтобы повтор
// воспроизвел тот же порядок, что и онлайн-путь. Локальный снимок товаров
// в обоих случаях правится оптимистично.
func (a *App) NewSale(ctx context.Context, items []operation.SaleItem, customer string, onCredit bool) (*SaleResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("пустой чек")
	}

	now := time.Now()
	total := sale.Total(items)

	deductOp := operation.DeductStock{Items: make([]operation.DeductItem, 0, len(items))}
	for _, it := range items {
		deductOp.Items = append(deductOp.Items, operation.DeductItem{
			Name:            it.Name,
			QuantityDisplay: it.QuantityDisplay,
		})
	}

	saleOp := operation.RecordSale{
		Date:      now,
		Amount:    total,
		InvoiceID: uuid.NewString(),
		Customer:  customer,
		Items:     items,
	}

	queued := false
	if a.monitor.IsOnline() {
		_, err := a.remote.ApplyDeduction(ctx, deductOp.Items)
		if err == nil || errors.Is(err, ErrNoMatch) {
			// Списание прошло (или цель исчезла с сервера — повтор не
			// поможет); журнал продаж пишем отдельно
			if err := a.remote.ApplySale(ctx, saleOp); err != nil {
				a.log.Warn("продажа не записалась, откладываем запись в журнал", "error", err)
				a.monitor.SetOnline(false)
				if _, qErr := a.queue.Enqueue(saleOp); qErr != nil {
					return nil, qErr
				}
				queued = true
			}
		} else {
			a.log.Warn("сервер недоступен, продажа уходит в очередь", "error", err)
			a.monitor.SetOnline(false)
			if err := a.enqueueSalePair(deductOp, saleOp); err != nil {
				return nil, err
			}
			queued = true
		}
	} else {
		if err := a.enqueueSalePair(deductOp, saleOp); err != nil {
			return nil, err
		}
		queued = true
	}

	if onCredit && customer != "" {
		ledgerOp := operation.LedgerEntry{
			CustomerName: customer,
			Amount:       total,
			Note:         "продажа " + saleOp.InvoiceID,
			Date:         now,
		}
		if err := a.recordLedger(ctx, ledgerOp); err != nil {
			return nil, err
		}
	}

	// Оптимистичное списание с локального снимка
	for _, d := range deductOp.Items {
		if err := a.deductCachedLocally(d.Name, d.QuantityDisplay); err != nil {
			a.log.Warn("не удалось обновить локальный снимок", "name", d.Name, "error", err)
		}
	}

	s := sale.Sale{
		InvoiceID: saleOp.InvoiceID,
		Date:      now,
		Amount:    total,
		Customer:  customer,
		Items:     items,
		Synced:    !queued,
	}
	if err := a.CacheSale(s); err != nil {
		a.log.Warn("продажа не попала в локальный журнал", "error", err)
	}

	return &SaleResult{Sale: s, Queued: queued}, nil
}

// enqueueSalePair кладет оба намерения продажи в очередь: списание
// первым, чтобы повтор воспроизвел порядок онлайн-пути
func (a *App) enqueueSalePair(deductOp operation.DeductStock, saleOp operation.RecordSale) error {
	if _, err := a.queue.Enqueue(deductOp); err != nil {
		return err
	}
	if _, err := a.queue.Enqueue(saleOp); err != nil {
		return err
	}
	return nil
}

// RecordUdhar вносит запись в долговую книгу покупателя (отдельно от
// продажи: возврат долга, ручная корректировка)
func (a *App) RecordUdhar(ctx context.Context, customerName string, amount float64, note string) (bool, error) {
	op := operation.LedgerEntry{
		CustomerName: customerName,
		Amount:       amount,
		Note:         note,
		Date:         time.Now(),
	}
	if err := a.recordLedger(ctx, op); err != nil {
		return false, err
	}
	return !a.monitor.IsOnline(), nil
}

func (a *App) recordLedger(ctx context.Context, op operation.LedgerEntry) error {
	if a.monitor.IsOnline() {
		err := a.remote.ApplyLedger(ctx, op)
		if err == nil {
			return nil
		}
		a.log.Warn("долговая запись не ушла на сервер, откладываем", "error", err)
		a.monitor.SetOnline(false)
	}
	_, err := a.queue.Enqueue(op)
	return err
}

// applyOperation — функция применения для координатора: разбирает конверт
// и зовет соответствующий метод адаптера. Switch исчерпывающий по
// закрытому набору видов операций.
func (a *App) applyOperation(ctx context.Context, env operation.Envelope) error {
	op, err := env.Decode()
	if err != nil {
		return err
	}

	switch typed := op.(type) {
	case operation.DeductStock:
		_, err := a.remote.ApplyDeduction(ctx, typed.Items)
		return err
	case operation.RecordSale:
		return a.remote.ApplySale(ctx, typed)
	case operation.LedgerEntry:
		return a.remote.ApplyLedger(ctx, typed)
	default:
		return fmt.Errorf("%w: %T", operation.ErrUnknownKind, op)
	}
}
