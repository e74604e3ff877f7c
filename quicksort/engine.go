// Package quicksort 제자리(in-place) 퀵소트: 순차, 고정 팬아웃 병렬, 워커 풀 세 가지 엔진
package quicksort

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/exp/constraints"

	"quicksort/logger"
)

// Range 시퀀스의 닫힌 구간 [Low, High]
// * Low == High+1 이면 빈 구간
type Range struct {
	Low  int
	High int
}

// Whole 길이 n 시퀀스 전체 구간
func Whole(n int) Range {
	return Range{Low: 0, High: n - 1}
}

// Len 원소 개수
func (r Range) Len() int {
	if r.High < r.Low {
		return 0
	}
	return r.High - r.Low + 1
}

// Overlaps 두 구간이 인덱스를 하나라도 공유하는지
func (r Range) Overlaps(o Range) bool {
	if r.Len() == 0 || o.Len() == 0 {
		return false
	}
	return r.Low <= o.High && o.Low <= r.High
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Low, r.High)
}

func (r Range) validFor(n int) bool {
	return r.Low >= 0 && r.High < n && r.Low <= r.High+1
}

// Stats 마지막 ParallelSort / PoolSort 실행 통계
type Stats struct {
	Units           int64 // ParallelSort가 띄운 유닛 수
	Tasks           int64 // PoolSort가 실행한 작업 수
	Splits          int64 // 분할 후 재제출한 작업 수
	Leaves          int64 // 순차 정렬로 끝난 작업 수
	Inline          int64 // 큐가 가득 차서 제출한 쪽에서 바로 실행한 작업 수
	PeakOutstanding int64 // 동시에 남아 있던 작업 수의 최댓값
}

type engineStats struct {
	units  atomic.Int64
	tasks  atomic.Int64
	splits atomic.Int64
	leaves atomic.Int64
	inline atomic.Int64
	peak   atomic.Int64
}

func (s *engineStats) reset() {
	s.units.Store(0)
	s.tasks.Store(0)
	s.splits.Store(0)
	s.leaves.Store(0)
	s.inline.Store(0)
	s.peak.Store(0)
}

func (s *engineStats) observePeak(n int64) {
	for {
		cur := s.peak.Load()
		if n <= cur || s.peak.CompareAndSwap(cur, n) {
			return
		}
	}
}

// Engine 호출자가 소유한 슬라이스의 한 구간을 제자리 정렬한다.
// 같은 Engine의 정렬 메서드를 동시에 호출하면 안 된다.
type Engine[T any] struct {
	data []T
	rng  Range
	cmp  func(a, b T) int
	cfg  Config

	stats engineStats

	// 테스트에서 구간 소유권을 관찰하는 훅. claim 시 호출되고 반환된 함수로 release
	tracker func(Range) func()
}

// New constraints.Ordered 타입용 엔진
func New[T constraints.Ordered](data []T, opts ...Option) (*Engine[T], error) {
	return NewFunc(data, compareOrdered[T], opts...)
}

// NewFunc 임의 타입 + 비교 함수 (a<b 음수, a==b 0, a>b 양수)
func NewFunc[T any](data []T, cmp func(a, b T) int, opts ...Option) (*Engine[T], error) {
	if cmp == nil {
		return nil, fmt.Errorf("%w: nil compare function", ErrInvalidConfig)
	}

	s := settings{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	rng := Whole(len(data))
	if s.rng != nil {
		rng = *s.rng
	}
	if !rng.validFor(len(data)) {
		return nil, invalidRange(rng, len(data))
	}

	return &Engine[T]{
		data: data,
		rng:  rng,
		cmp:  cmp,
		cfg:  s.cfg,
	}, nil
}

// Range 정렬 대상 구간
func (e *Engine[T]) Range() Range {
	return e.rng
}

// Config 적용된 설정
func (e *Engine[T]) Config() Config {
	return e.cfg
}

// Stats 마지막 병렬 실행 통계
func (e *Engine[T]) Stats() Stats {
	return Stats{
		Units:           e.stats.units.Load(),
		Tasks:           e.stats.tasks.Load(),
		Splits:          e.stats.splits.Load(),
		Leaves:          e.stats.leaves.Load(),
		Inline:          e.stats.inline.Load(),
		PeakOutstanding: e.stats.peak.Load(),
	}
}

func (e *Engine[T]) log() *logger.Logger {
	if e.cfg.Logger != nil {
		return e.cfg.Logger.Named("quicksort")
	}
	return logger.Default.Named("quicksort")
}

// claim 구간 소유 시작. 반환 함수로 해제
func (e *Engine[T]) claim(r Range) func() {
	if e.tracker == nil {
		return func() {}
	}
	return e.tracker(r)
}

// guard fn 실행 중 패닉을 UnitError로 바꾼다
func (e *Engine[T]) guard(r Range, fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &UnitError{Range: r, Value: p}
		}
	}()
	fn()
	return nil
}

// compareOrdered NaN은 가장 작은 값으로 취급 (cmp.Compare와 같은 순서)
func compareOrdered[T constraints.Ordered](a, b T) int {
	aNaN, bNaN := isNaN(a), isNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func isNaN[T constraints.Ordered](x T) bool {
	return x != x
}
