// Package audit хранит воспроизводимые записи спинов в Badger.
// По записи можно заново прогнать выбор и проверить, что результат не подменен.
package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"prize_pool/internal/probability"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "spin"

var (
	ErrRecordNotFound = errors.New("audit record not found")
	ErrKeyEmpty       = errors.New("ticket id is empty")
)

// Record Все, что нужно для повторного выбора: сид и вектор вероятностей с доступностью на момент спина
type Record struct {
	PoolID        int64     `json:"pool_id"`
	TicketID      string    `json:"ticket_id"`
	SpinnerID     int       `json:"spinner_id"`
	Seed          uint64    `json:"seed"`
	Probabilities []uint32  `json:"probabilities"`
	Available     []bool    `json:"available"`
	ItemIndex     int       `json:"item_index"`
	CreatedAt     time.Time `json:"created_at"`
}

type Store struct {
	db *badger.DB
}

// Open открывает хранилище в каталоге dir
func Open(dir string) (*Store, error) {
	return open(badger.DefaultOptions(dir).WithLogger(nil))
}

// OpenInMemory хранилище без диска, для тестов и CLI
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit store: %w", err)
	}
	return &Store{db: db}, nil
}

func poolPrefix(poolID int64) string {
	return keyPrefix + "/" + strconv.FormatInt(poolID, 10) + "/"
}

func recordKey(poolID int64, ticketID string) (string, error) {
	if ticketID == "" {
		return "", ErrKeyEmpty
	}
	return poolPrefix(poolID) + ticketID, nil
}

// Put сохраняет запись. Повторная запись по тому же билету перезаписывает предыдущую
func (s *Store) Put(rec Record) error {
	k, err := recordKey(rec.PoolID, rec.TicketID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(k), data)
	})
}

func (s *Store) Get(poolID int64, ticketID string) (Record, error) {
	k, err := recordKey(poolID, ticketID)
	if err != nil {
		return Record{}, err
	}

	var valCopy []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(k))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
		valCopy, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(valCopy, &rec); err != nil {
		return Record{}, fmt.Errorf("corrupted audit record %s: %w", k, err)
	}
	return rec, nil
}

// List все записи пула в порядке ключей
func (s *Store) List(poolID int64) ([]Record, error) {
	result := make([]Record, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(poolPrefix(poolID))
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupted audit record %s: %w", it.Item().Key(), err)
			}
			result = append(result, rec)
		}
		return nil
	})
	return result, err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Replay повторяет выбор по записи. Возвращает выбранный индекс и совпал ли он с сохраненным
func Replay(rec Record) (int, bool, error) {
	if len(rec.Probabilities) != len(rec.Available) {
		return -1, false, fmt.Errorf("audit record has %d probabilities and %d availability flags",
			len(rec.Probabilities), len(rec.Available))
	}

	items := make([]probability.Item, len(rec.Probabilities))
	for i, p := range rec.Probabilities {
		items[i] = probability.Item{Probability: p, Available: rec.Available[i]}
	}

	idx, err := probability.SelectAvailable(items, rec.Seed)
	if err != nil {
		return -1, false, err
	}
	return idx, idx == rec.ItemIndex, nil
}
