package client

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Локальное хранилище — SQLite-база с коллекциями документов. Каждая
// коллекция — отдельная таблица вида (id, data), записи лежат как JSON.
// Коллекции независимы: каждая операция атомарна в пределах своей таблицы,
// межколлекционных транзакций здесь нет и не требуется.

const (
	CollectionInventory = "inventory"
	CollectionSales     = "sales"
	CollectionCustomers = "customers"
	CollectionPending   = "pending_operations"
)

// Ключи метаданных в app_state
const (
	StateLastInventorySync = "inventory_last_sync_timestamp"
	StateShopName          = "shop_name"
)

var (
	// ErrStoreUnavailable — база не открылась; фатально для сеанса,
	// молчаливого отката на память нет
	ErrStoreUnavailable = errors.New("локальное хранилище недоступно")
	// ErrDuplicateKey — Add с явным id наткнулся на существующую запись
	ErrDuplicateKey = errors.New("запись с таким id уже существует")
	// ErrUnknownCollection — обращение к несуществующей коллекции
	ErrUnknownCollection = errors.New("неизвестная коллекция")
)

// Record — запись коллекции: ключ и JSON-документ
type Record struct {
	ID   int64
	Data []byte
}

var collections = map[string]struct{}{
	CollectionInventory: {},
	CollectionSales:     {},
	CollectionCustomers: {},
	CollectionPending:   {},
}

type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage открывает (или создает) базу по пути path.
// WAL + synchronous=FULL: запись долетает до диска до возврата из вызова,
// иначе перезапуск процесса потеряет операции, поставленные в очередь офлайн.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=FULL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	storage := &SQLiteStorage{db: db}

	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: инициализация таблиц: %v", ErrStoreUnavailable, err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	for name := range collections {
		_, err := s.db.Exec(fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				data TEXT NOT NULL
			)`, name))
		if err != nil {
			return err
		}
	}

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`)
	return err
}

func (s *SQLiteStorage) table(collection string) (string, error) {
	if _, ok := collections[collection]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return collection, nil
}

// GetAll возвращает все записи коллекции в порядке вставки (по id).
// Пустая коллекция — пустой срез, не nil.
func (s *SQLiteStorage) GetAll(collection string) ([]Record, error) {
	table, err := s.table(collection)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(fmt.Sprintf("SELECT id, data FROM %s ORDER BY id ASC", table))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения коллекции %s: %w", collection, err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Data); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Add вставляет новую запись. При id == 0 ключ назначает база (монотонно
// растущий), назначенный id возвращается. Явный id, совпавший с
// существующим, дает ErrDuplicateKey.
func (s *SQLiteStorage) Add(collection string, id int64, data []byte) (int64, error) {
	table, err := s.table(collection)
	if err != nil {
		return 0, err
	}

	var res sql.Result
	if id == 0 {
		res, err = s.db.Exec(fmt.Sprintf("INSERT INTO %s (data) VALUES (?)", table), data)
	} else {
		res, err = s.db.Exec(fmt.Sprintf("INSERT INTO %s (id, data) VALUES (?, ?)", table), id, data)
	}
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return 0, fmt.Errorf("%w: %s/%d", ErrDuplicateKey, collection, id)
		}
		return 0, fmt.Errorf("ошибка вставки в %s: %w", collection, err)
	}

	newID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения id: %w", err)
	}
	return newID, nil
}

// Put сохраняет запись с явным ключом, перезаписывая существующую.
// На коллизии ключа никогда не падает.
func (s *SQLiteStorage) Put(collection string, id int64, data []byte) error {
	table, err := s.table(collection)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(fmt.Sprintf(`
		INSERT INTO %s (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`, table), id, data)
	if err != nil {
		return fmt.Errorf("ошибка записи в %s: %w", collection, err)
	}
	return nil
}

// Delete удаляет запись по id. Отсутствующий id — не ошибка.
func (s *SQLiteStorage) Delete(collection string, id int64) error {
	table, err := s.table(collection)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id); err != nil {
		return fmt.Errorf("ошибка удаления из %s: %w", collection, err)
	}
	return nil
}

// Clear опустошает коллекцию
func (s *SQLiteStorage) Clear(collection string) error {
	table, err := s.table(collection)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return fmt.Errorf("ошибка очистки %s: %w", collection, err)
	}
	return nil
}

// Count возвращает число записей в коллекции
func (s *SQLiteStorage) Count(collection string) (int, error) {
	table, err := s.table(collection)
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчета %s: %w", collection, err)
	}
	return count, nil
}

// GetState читает значение из app_state; отсутствующий ключ — пустая строка
func (s *SQLiteStorage) GetState(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("ошибка чтения app_state[%s]: %w", key, err)
	}
	return value, nil
}

// SetState пишет значение в app_state, перезаписывая существующее
func (s *SQLiteStorage) SetState(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("ошибка записи app_state[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
