package quicksort

import (
	"context"

	"golang.org/x/exp/constraints"
)

func whole[T any](data []T, cmp func(a, b T) int) *Engine[T] {
	return &Engine[T]{
		data: data,
		rng:  Whole(len(data)),
		cmp:  cmp,
		cfg:  DefaultConfig(),
	}
}

// Sort 슬라이스 전체를 순차 정렬
func Sort[T constraints.Ordered](data []T) {
	whole(data, compareOrdered[T]).Sort()
}

// SortFunc 비교 함수로 슬라이스 전체를 순차 정렬
func SortFunc[T any](data []T, cmp func(a, b T) int) {
	whole(data, cmp).Sort()
}

// ParallelSort 슬라이스 전체를 고정 팬아웃으로 병렬 정렬
func ParallelSort[T constraints.Ordered](ctx context.Context, data []T) error {
	return whole(data, compareOrdered[T]).ParallelSort(ctx)
}

// PoolSort 슬라이스 전체를 워커 풀로 정렬
func PoolSort[T constraints.Ordered](ctx context.Context, data []T, opts ...Option) error {
	e, err := New(data, opts...)
	if err != nil {
		return err
	}
	return e.PoolSort(ctx)
}

// IsSorted 오름차순(같은 값 허용) 여부
func IsSorted[T constraints.Ordered](data []T) bool {
	return IsSortedFunc(data, compareOrdered[T])
}

// IsSortedFunc 비교 함수 기준 오름차순 여부
func IsSortedFunc[T any](data []T, cmp func(a, b T) int) bool {
	for i := 1; i < len(data); i++ {
		if cmp(data[i], data[i-1]) < 0 {
			return false
		}
	}
	return true
}
