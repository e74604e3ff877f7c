package store

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var bucketName = []byte("datasets")

// Bbolt 단일 파일 B+트리 저장소. 데이터셋 하나가 값 하나
type Bbolt struct {
	db *bbolt.DB
}

// OpenBbolt path에 bbolt 파일 열기 (잠금 대기 1초)
func OpenBbolt(path string) (*Bbolt, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open bbolt: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create bucket: %w", err)
	}
	return &Bbolt{db: db}, nil
}

func (b *Bbolt) Save(name string, data []int) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(name), encode(data))
	})
}

func (b *Bbolt) Load(name string) ([]int, error) {
	var data []int
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(name))
		if v == nil {
			return ErrNotFound
		}
		// v는 트랜잭션 안에서만 유효하므로 여기서 디코딩
		var err error
		data, err = decode(v)
		return err
	})
	return data, err
}

func (b *Bbolt) Close() error {
	return b.db.Close()
}
