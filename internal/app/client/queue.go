package client

import (
	"encoding/json"
	"fmt"
	"time"

	"lavka/internal/domain/operation"

	"golang.org/x/exp/slog"
)

// Queue — очередь отложенных операций поверх коллекции pending_operations.
// Порядок строго по вставке: поздние продажи могут зависеть от остатков,
// списанных ранними операциями, поэтому повтор не переупорядочивается.
type Queue struct {
	storage *SQLiteStorage
	log     *slog.Logger
}

func NewQueue(storage *SQLiteStorage, log *slog.Logger) *Queue {
	return &Queue{
		storage: storage,
		log:     log.With("component", "queue"),
	}
}

// Enqueue ставит операцию в хвост очереди. Метка времени ставится здесь,
// один раз, и при повторах не меняется.
func (q *Queue) Enqueue(op operation.Operation) (int64, error) {
	env, err := operation.Wrap(op, time.Now())
	if err != nil {
		return 0, err
	}

	data, err := json.Marshal(env)
	if err != nil {
		return 0, fmt.Errorf("сериализация конверта: %w", err)
	}

	id, err := q.storage.Add(CollectionPending, 0, data)
	if err != nil {
		return 0, fmt.Errorf("постановка операции в очередь: %w", err)
	}

	q.log.Debug("операция поставлена в очередь", "id", id, "kind", env.Kind)
	return id, nil
}

// ListPending возвращает невыполненные операции, старые первыми
func (q *Queue) ListPending() ([]operation.Envelope, error) {
	records, err := q.storage.GetAll(CollectionPending)
	if err != nil {
		return nil, err
	}

	envelopes := make([]operation.Envelope, 0, len(records))
	for _, rec := range records {
		var env operation.Envelope
		if err := json.Unmarshal(rec.Data, &env); err != nil {
			return nil, fmt.Errorf("разбор операции %d: %w", rec.ID, err)
		}
		// Ключ хранилища — истинный id, что бы ни лежало в документе
		env.ID = rec.ID
		envelopes = append(envelopes, env)
	}

	return envelopes, nil
}

// Resolve удаляет выполненную операцию. Идемпотентна: повторный вызов по
// тому же id — no-op. Выполненные операции не архивируются, очередь держит
// только нерешенную работу.
func (q *Queue) Resolve(id int64) error {
	return q.storage.Delete(CollectionPending, id)
}

// Count возвращает длину очереди (для индикатора в интерфейсе)
func (q *Queue) Count() (int, error) {
	return q.storage.Count(CollectionPending)
}
