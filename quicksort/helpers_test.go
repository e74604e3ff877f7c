package quicksort_test

import (
	"context"
	"io"
	"math/rand"
	"slices"
	"sync"
	"testing"

	"quicksort/logger"
	"quicksort/quicksort"
)

var quiet = logger.New(io.Discard, logger.LevelError)

// engine 엔진별 실행 함수
type engine struct {
	name string
	run  func(e *quicksort.Engine[int]) error
}

var engines = []engine{
	{"sequential", func(e *quicksort.Engine[int]) error {
		e.Sort()
		return nil
	}},
	{"parallel", func(e *quicksort.Engine[int]) error {
		return e.ParallelSort(context.Background())
	}},
	{"pool", func(e *quicksort.Engine[int]) error {
		return e.PoolSort(context.Background())
	}},
}

func randomInts(rng *rand.Rand, n, maxValue int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = rng.Intn(maxValue)
	}
	return data
}

// counts 값 -> 개수
func counts(data []int) map[int]int {
	m := make(map[int]int, len(data))
	for _, v := range data {
		m[v]++
	}
	return m
}

func assertSameCounts(t *testing.T, before map[int]int, after []int) {
	t.Helper()
	got := counts(after)
	if len(got) != len(before) {
		t.Fatalf("distinct values changed: %d -> %d", len(before), len(got))
	}
	for v, n := range before {
		if got[v] != n {
			t.Fatalf("count of %d changed: %d -> %d", v, n, got[v])
		}
	}
}

func assertEqual(t *testing.T, got, want []int) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// ownership 동시에 소유된 구간들을 기록하고 겹침을 찾는다
type ownership struct {
	mu        sync.Mutex
	active    map[int]quicksort.Range
	next      int
	claims    int
	maxActive int
	overlaps  []string
}

func newOwnership() *ownership {
	return &ownership{active: make(map[int]quicksort.Range)}
}

func (o *ownership) track(r quicksort.Range) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, a := range o.active {
		if a.Overlaps(r) {
			o.overlaps = append(o.overlaps, a.String()+" & "+r.String())
		}
	}
	id := o.next
	o.next++
	o.claims++
	o.active[id] = r
	o.maxActive = max(o.maxActive, len(o.active))

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.active, id)
	}
}

func (o *ownership) check(t *testing.T) {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.overlaps) > 0 {
		t.Fatalf("%d overlapping claims, first: %s", len(o.overlaps), o.overlaps[0])
	}
	if len(o.active) != 0 {
		t.Fatalf("%d ranges still claimed after return", len(o.active))
	}
}
