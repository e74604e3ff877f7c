package quicksort

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"quicksort/workerpool"
)

// PoolSort 구간 전체를 작업 하나로 워커 풀에 넣고, 남은 작업 수가 0이 될 때까지 기다린다.
//   - Threshold 이하 구간: 작업 안에서 순차 정렬
//   - 그보다 큰 구간: 한 번 분할하고 양쪽을 새 작업으로 재제출
//
// 남은 작업 카운터는 제출 전에 올리고 작업 본체가 끝날 때 내리므로, 0이 되는 것은 모든 작업이 끝났을 때뿐이다.
func (e *Engine[T]) PoolSort(ctx context.Context) error {
	e.stats.reset()

	low, high := e.rng.Low, e.rng.High
	if low >= high {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pool := e.cfg.Pool
	if pool == nil {
		pool = workerpool.NewWithConfig(workerpool.Config{
			NumWorkers: e.cfg.Workers,
			Logger:     e.log(),
		})
		// 취소돼도 워커는 남은 작업의 계정 정리를 끝내야 한다
		pool.Start(context.WithoutCancel(ctx))
		defer pool.Stop()
	}

	run := &poolRun[T]{
		e:    e,
		ctx:  ctx,
		pool: pool,
		done: make(chan struct{}),
	}
	run.pending.Store(1)
	e.stats.observePeak(1)
	run.enqueue(Range{Low: low, High: high})

	<-run.done

	st := e.Stats()
	e.log().Debug("poolSort %s: tasks=%d splits=%d leaves=%d inline=%d peak=%d",
		e.rng, st.Tasks, st.Splits, st.Leaves, st.Inline, st.PeakOutstanding)

	return run.err
}

// poolRun PoolSort 한 번의 실행 상태
type poolRun[T any] struct {
	e    *Engine[T]
	ctx  context.Context
	pool *workerpool.Pool

	pending atomic.Int64 // 제출됐지만 끝나지 않은 작업 수
	done    chan struct{}

	failed  atomic.Bool
	errOnce sync.Once
	err     error
}

// submit 카운터를 먼저 올리고 제출. 원소가 하나 이하인 구간은 이미 정렬돼 있다
func (r *poolRun[T]) submit(rg Range) {
	if rg.Len() < 2 {
		return
	}
	r.e.stats.observePeak(r.pending.Add(1))
	r.enqueue(rg)
}

func (r *poolRun[T]) enqueue(rg Range) {
	task := func() { r.execute(rg) }

	err := r.pool.TrySubmit(task)
	switch {
	case err == nil:
	case errors.Is(err, workerpool.ErrQueueFull):
		// 슬롯 없으면 제출한 쪽에서 바로 처리
		r.e.stats.inline.Add(1)
		task()
	default:
		r.fail(err)
		r.finish()
	}
}

// execute 작업 본체. 실패 후의 작업은 일을 건너뛰고 계정만 정리한다
func (r *poolRun[T]) execute(rg Range) {
	defer r.finish()
	r.e.stats.tasks.Add(1)

	if r.failed.Load() {
		return
	}
	if err := r.ctx.Err(); err != nil {
		r.fail(err)
		return
	}

	if rg.Len() <= r.e.cfg.Threshold {
		release := r.e.claim(rg)
		err := r.e.guard(rg, func() {
			r.e.sortRange(rg.Low, rg.High)
		})
		release()
		if err != nil {
			r.fail(err)
			return
		}
		r.e.stats.leaves.Add(1)
		return
	}

	leftHigh, rightLow, err := r.e.guardedSplit(rg)
	if err != nil {
		r.fail(err)
		return
	}
	r.e.stats.splits.Add(1)

	r.submit(Range{Low: rg.Low, High: leftHigh})
	r.submit(Range{Low: rightLow, High: rg.High})
}

func (r *poolRun[T]) fail(err error) {
	r.errOnce.Do(func() {
		r.err = err
		r.failed.Store(true)
	})
}

func (r *poolRun[T]) finish() {
	if r.pending.Add(-1) == 0 {
		close(r.done)
	}
}
