package quicksort_test

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"

	"quicksort/quicksort"
	"quicksort/workerpool"
)

func TestPoolSortTenThousandRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(2016))
	data := randomInts(rng, 10000, 100000)
	before := counts(data)

	e, err := quicksort.New(data, quicksort.WithWorkers(10), quicksort.WithThreshold(1000), quicksort.WithLogger(quiet))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.PoolSort(context.Background()); err != nil {
		t.Fatalf("PoolSort failed: %v", err)
	}

	if !quicksort.IsSorted(data) {
		t.Fatal("result not sorted")
	}
	assertSameCounts(t, before, data)

	st := e.Stats()
	if st.Splits < 1 {
		t.Errorf("expected at least one split for 10000 elements, got %d", st.Splits)
	}
	if st.Tasks != st.Splits+st.Leaves {
		t.Errorf("task accounting mismatch: tasks=%d splits=%d leaves=%d", st.Tasks, st.Splits, st.Leaves)
	}
	if st.PeakOutstanding < 2 {
		t.Errorf("expected several outstanding tasks at peak, got %d", st.PeakOutstanding)
	}
}

func TestPoolSortDisjointTasks(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for _, scheme := range []quicksort.Scheme{quicksort.SchemeStaged, quicksort.SchemeMedianValue} {
		data := randomInts(rng, 20000, 5000)
		e, _ := quicksort.New(data, quicksort.WithScheme(scheme), quicksort.WithWorkers(8),
			quicksort.WithThreshold(50), quicksort.WithLogger(quiet))
		own := newOwnership()
		e.SetTracker(own.track)

		if err := e.PoolSort(context.Background()); err != nil {
			t.Fatalf("%s: %v", scheme, err)
		}

		own.check(t)
		if !quicksort.IsSorted(data) {
			t.Fatalf("%s: result not sorted", scheme)
		}
	}
}

func TestPoolSortThresholdBoundary(t *testing.T) {
	// 크기 == Threshold 이면 분할 없이 작업 하나로 끝난다
	rng := rand.New(rand.NewSource(1))
	data := randomInts(rng, 64, 100)
	e, _ := quicksort.New(data, quicksort.WithThreshold(64), quicksort.WithLogger(quiet))

	if err := e.PoolSort(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := e.Stats()
	if st.Tasks != 1 || st.Splits != 0 || st.Leaves != 1 {
		t.Errorf("expected a single leaf task, got %+v", st)
	}
	if !quicksort.IsSorted(data) {
		t.Fatal("result not sorted")
	}
}

func TestPoolSortTrivialInputCreatesNoTasks(t *testing.T) {
	for _, data := range [][]int{{}, {7}} {
		e, _ := quicksort.New(data, quicksort.WithLogger(quiet))
		if err := e.PoolSort(context.Background()); err != nil {
			t.Fatal(err)
		}
		if e.Stats().Tasks != 0 {
			t.Errorf("%v: expected no tasks, got %d", data, e.Stats().Tasks)
		}
	}
}

func TestPoolSortSharedPool(t *testing.T) {
	pool := workerpool.NewWithConfig(workerpool.Config{NumWorkers: 4, QueueFactor: 1, Logger: quiet})
	pool.Start(context.Background())
	defer pool.Stop()

	rng := rand.New(rand.NewSource(33))
	for i := range 5 {
		data := randomInts(rng, 5000, 1000)
		before := counts(data)
		e, _ := quicksort.New(data, quicksort.WithPool(pool), quicksort.WithThreshold(20), quicksort.WithLogger(quiet))

		if err := e.PoolSort(context.Background()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !quicksort.IsSorted(data) {
			t.Fatalf("run %d: not sorted", i)
		}
		assertSameCounts(t, before, data)
	}

	if !pool.Running() {
		t.Error("a shared pool must not be stopped by PoolSort")
	}
}

func TestPoolSortInlineWhenQueueFull(t *testing.T) {
	// 워커 1개, 큐 1칸: 재제출 대부분이 인라인으로 처리돼야 한다
	pool := workerpool.NewWithConfig(workerpool.Config{NumWorkers: 1, QueueFactor: 1, Logger: quiet})
	pool.Start(context.Background())
	defer pool.Stop()

	rng := rand.New(rand.NewSource(4))
	data := randomInts(rng, 30000, 1<<20)
	e, _ := quicksort.New(data, quicksort.WithPool(pool), quicksort.WithThreshold(8), quicksort.WithLogger(quiet))

	if err := e.PoolSort(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !quicksort.IsSorted(data) {
		t.Fatal("result not sorted")
	}
	if e.Stats().Inline == 0 {
		t.Error("expected some tasks to run inline")
	}
}

func TestPoolSortStoppedPool(t *testing.T) {
	pool := workerpool.NewWithConfig(workerpool.Config{NumWorkers: 2, Logger: quiet})
	data := []int{3, 1, 2}
	e, _ := quicksort.New(data, quicksort.WithPool(pool), quicksort.WithLogger(quiet))

	if err := e.PoolSort(context.Background()); !errors.Is(err, workerpool.ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped, got %v", err)
	}
	assertEqual(t, data, []int{3, 1, 2})
}

func TestPoolSortPropagatesPanic(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	data := randomInts(rng, 20000, 1000)

	var calls atomic.Int64
	cmp := func(a, b int) int {
		if calls.Add(1) == 50000 {
			panic("bad comparison")
		}
		return a - b
	}
	e, _ := quicksort.NewFunc(data, cmp, quicksort.WithThreshold(100), quicksort.WithLogger(quiet))

	err := e.PoolSort(context.Background())

	if !errors.Is(err, quicksort.ErrUnitFailed) {
		t.Fatalf("expected ErrUnitFailed, got %v", err)
	}
	var ue *quicksort.UnitError
	if !errors.As(err, &ue) || ue.Value != "bad comparison" {
		t.Errorf("unexpected error detail: %#v", err)
	}
}

func TestPoolSortCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := []int{5, 4, 3, 2, 1}
	e, _ := quicksort.New(data, quicksort.WithLogger(quiet))
	if err := e.PoolSort(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	assertEqual(t, data, []int{5, 4, 3, 2, 1})
}

func TestPoolSortCancelledMidway(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	data := randomInts(rng, 50000, 1<<20)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int64
	cmp := func(a, b int) int {
		// 첫 작업의 분할 도중 취소: 자식 작업은 모두 일을 건너뛴다
		if calls.Add(1) == 1000 {
			cancel()
		}
		return a - b
	}
	e, _ := quicksort.NewFunc(data, cmp, quicksort.WithThreshold(100), quicksort.WithLogger(quiet))

	if err := e.PoolSort(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	st := e.Stats()
	if st.Splits != 1 {
		t.Errorf("expected only the first task to split, got %d splits", st.Splits)
	}
}
