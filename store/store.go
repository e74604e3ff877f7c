package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound 해당 이름의 데이터셋이 없음
var ErrNotFound = errors.New("store: dataset not found")

// Store 벤치마크 데이터셋 저장소
// * 정렬 엔진과는 무관하고, 하네스가 입력 데이터를 저장/재적재하는 용도다.
type Store interface {
	Save(name string, data []int) error
	Load(name string) ([]int, error)
	Close() error
}

// Kind 저장소 종류
type Kind string

const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindBbolt  Kind = "bbolt"
	KindBadger Kind = "badger"
	KindPebble Kind = "pebble"
)

// Kinds 지원하는 저장소 종류 전체
func Kinds() []Kind {
	return []Kind{KindMemory, KindFile, KindBbolt, KindBadger, KindPebble}
}

// ParseKind 문자열을 저장소 종류로 변환
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown storage kind: %q", s)
}

// Open 종류에 맞는 저장소 열기. path는 file/bbolt/badger/pebble에서만 쓴다
func Open(kind Kind, path string) (Store, error) {
	if kind != KindMemory && path == "" {
		return nil, fmt.Errorf("storage %s needs a path", kind)
	}

	switch kind {
	case KindMemory:
		return NewMemory(), nil
	case KindFile:
		return OpenFile(path)
	case KindBbolt:
		return OpenBbolt(path)
	case KindBadger:
		return OpenBadger(path)
	case KindPebble:
		return OpenPebble(path)
	default:
		return nil, fmt.Errorf("unknown storage kind: %q", kind)
	}
}

// encode 개수(8바이트) + 값마다 8바이트 빅엔디언
// * 빈 데이터셋도 값이 비지 않도록 개수를 앞에 둔다.
func encode(data []int) []byte {
	buf := make([]byte, 8+len(data)*8)
	binary.BigEndian.PutUint64(buf, uint64(len(data)))
	for i, v := range data {
		binary.BigEndian.PutUint64(buf[8+i*8:], uint64(v))
	}
	return buf
}

func decode(buf []byte) ([]int, error) {
	if len(buf) < 8 {
		return nil, fmt.Errorf("store: corrupt dataset (%d bytes)", len(buf))
	}
	n := binary.BigEndian.Uint64(buf)
	if uint64(len(buf)-8) != n*8 {
		return nil, fmt.Errorf("store: corrupt dataset (header %d, %d bytes)", n, len(buf))
	}
	data := make([]int, n)
	for i := range data {
		data[i] = int(binary.BigEndian.Uint64(buf[8+i*8:]))
	}
	return data, nil
}
