package operation

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Очередь отложенных операций хранит намерения мутаций, записанные в офлайне.
// Набор видов операций закрытый: координатор синхронизации разбирает Envelope
// исчерпывающим switch, незнакомый вид — ошибка, а не молчаливый пропуск.

var ErrUnknownKind = errors.New("неизвестный вид операции")

// Kind — вид отложенной операции
type Kind string

const (
	KindDeductStock Kind = "deduct_stock"
	KindRecordSale  Kind = "record_sale"
	KindLedgerEntry Kind = "ledger_entry"
)

// Operation — типизированная полезная нагрузка отложенной операции
type Operation interface {
	Kind() Kind
}

// DeductItem — одна позиция списания: название и количество в единицах продажи.
// Сопоставление с удаленной строкой идет по названию в момент повтора.
type DeductItem struct {
	Name            string  `json:"name"`
	QuantityDisplay float64 `json:"quantity_display"`
}

// DeductStock — списание остатков по списку позиций
type DeductStock struct {
	Items []DeductItem `json:"items"`
}

func (DeductStock) Kind() Kind { return KindDeductStock }

// SaleItem — позиция чека
type SaleItem struct {
	Name            string  `json:"name"`
	QuantityDisplay float64 `json:"quantity_display"`
	Price           float64 `json:"price"`
}

// RecordSale — запись продажи в журнал продаж
type RecordSale struct {
	Date      time.Time  `json:"date"`
	Amount    float64    `json:"amount"`
	InvoiceID string     `json:"invoice_id"`
	Customer  string     `json:"customer,omitempty"`
	Items     []SaleItem `json:"items"`
}

func (RecordSale) Kind() Kind { return KindRecordSale }

// LedgerEntry — запись в долговую книгу покупателя. Положительная сумма —
// долг вырос, отрицательная — покупатель вернул деньги.
type LedgerEntry struct {
	CustomerName string    `json:"customer_name"`
	Amount       float64   `json:"amount"`
	Note         string    `json:"note,omitempty"`
	Date         time.Time `json:"date"`
}

func (LedgerEntry) Kind() Kind { return KindLedgerEntry }

// Envelope — операция в том виде, в каком она лежит в очереди: id назначает
// хранилище, метка времени ставится один раз при постановке и не меняется.
type Envelope struct {
	ID        int64           `json:"id"`
	Kind      Kind            `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Wrap упаковывает типизированную операцию в Envelope для постановки в очередь
func Wrap(op Operation, now time.Time) (Envelope, error) {
	payload, err := json.Marshal(op)
	if err != nil {
		return Envelope{}, fmt.Errorf("сериализация операции %s: %w", op.Kind(), err)
	}
	return Envelope{
		Kind:      op.Kind(),
		Payload:   payload,
		CreatedAt: now,
	}, nil
}

// Decode восстанавливает типизированную операцию из конверта
func (e Envelope) Decode() (Operation, error) {
	switch e.Kind {
	case KindDeductStock:
		var op DeductStock
		if err := json.Unmarshal(e.Payload, &op); err != nil {
			return nil, fmt.Errorf("разбор %s: %w", e.Kind, err)
		}
		return op, nil
	case KindRecordSale:
		var op RecordSale
		if err := json.Unmarshal(e.Payload, &op); err != nil {
			return nil, fmt.Errorf("разбор %s: %w", e.Kind, err)
		}
		return op, nil
	case KindLedgerEntry:
		var op LedgerEntry
		if err := json.Unmarshal(e.Payload, &op); err != nil {
			return nil, fmt.Errorf("разбор %s: %w", e.Kind, err)
		}
		return op, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
}
