package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
)

// Badger LSM 저장소
type Badger struct {
	db *badger.DB
}

// OpenBadger dir에 badger DB 열기
func OpenBadger(dir string) (*Badger, error) {
	// badger 자체 로그는 끈다
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

// Save 데이터셋을 한 트랜잭션으로 기록
func (b *Badger) Save(name string, data []int) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(name), encode(data))
	})
}

// Load 없으면 ErrNotFound
func (b *Badger) Load(name string) ([]int, error) {
	var data []int
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data, err = decode(val)
			return err
		})
	})
	return data, err
}

func (b *Badger) Close() error {
	return b.db.Close()
}
