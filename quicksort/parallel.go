package quicksort

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// maxFanout ParallelSort가 한 번에 띄우는 유닛 수 상한
const maxFanout = 3

// ParallelSort 두 단계 분할로 최대 네 구간을 만들고 세 구간은 고루틴, 마지막 구간은 호출한 고루틴에서 정렬한다.
// 모든 유닛이 끝나야 반환하며, 먼저 실패한 유닛의 에러를 돌려준다.
func (e *Engine[T]) ParallelSort(ctx context.Context) error {
	e.stats.reset()

	low, high := e.rng.Low, e.rng.High
	if low >= high {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFanout)

	leftHigh, rightLow, err := e.guardedSplit(Range{Low: low, High: high})
	if err != nil {
		return err
	}

	// 아래쪽 절반: 한 번 더 나눠서 두 유닛
	if low < leftHigh {
		lh, rl, err := e.guardedSplit(Range{Low: low, High: leftHigh})
		if err != nil {
			return err
		}
		e.spawn(gctx, g, Range{Low: low, High: lh})
		e.spawn(gctx, g, Range{Low: rl, High: leftHigh})
	}

	// 위쪽 절반: 한 유닛 + 나머지는 직접
	if rightLow < high {
		lh, rl, err := e.guardedSplit(Range{Low: rightLow, High: high})
		if err != nil {
			return join(g, err)
		}
		e.spawn(gctx, g, Range{Low: rightLow, High: lh})

		if err := e.runUnit(gctx, Range{Low: rl, High: high}); err != nil {
			return join(g, err)
		}
	}

	return g.Wait()
}

// join 띄운 유닛을 모두 기다린다. 유닛이 먼저 실패했으면 그 에러가 우선
// * 유닛 실패로 gctx가 취소되면 호출자 쪽 err는 context.Canceled일 뿐이다.
func join(g *errgroup.Group, err error) error {
	if werr := g.Wait(); werr != nil {
		return werr
	}
	return err
}

// spawn 원소가 둘 이상인 구간만 고루틴으로 넘긴다
func (e *Engine[T]) spawn(ctx context.Context, g *errgroup.Group, r Range) {
	if r.Len() < 2 {
		return
	}
	e.stats.units.Add(1)
	g.Go(func() error {
		return e.runUnit(ctx, r)
	})
}

// runUnit 구간 하나를 순차 정렬. 시작 전에 취소됐으면 건너뛴다
func (e *Engine[T]) runUnit(ctx context.Context, r Range) error {
	if r.Len() < 2 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	release := e.claim(r)
	defer release()

	return e.guard(r, func() {
		e.sortRange(r.Low, r.High)
	})
}

// guardedSplit 구간을 소유한 채로 한 번 분할
func (e *Engine[T]) guardedSplit(r Range) (leftHigh, rightLow int, err error) {
	release := e.claim(r)
	defer release()

	err = e.guard(r, func() {
		leftHigh, rightLow = e.split(r.Low, r.High)
	})
	return leftHigh, rightLow, err
}
