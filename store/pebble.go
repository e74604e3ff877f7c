package store

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// Pebble LSM 저장소
type Pebble struct {
	db *pebble.DB
}

// OpenPebble dir에 pebble DB 열기
func OpenPebble(dir string) (*Pebble, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("store: open pebble: %w", err)
	}
	return &Pebble{db: db}, nil
}

// Save 동기 쓰기 (pebble.Sync)
func (p *Pebble) Save(name string, data []int) error {
	return p.db.Set([]byte(name), encode(data), pebble.Sync)
}

// Load 없으면 ErrNotFound
func (p *Pebble) Load(name string) ([]int, error) {
	val, closer, err := p.db.Get([]byte(name))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return decode(val)
}

func (p *Pebble) Close() error {
	return p.db.Close()
}
