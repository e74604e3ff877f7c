package quicksort

// 테스트 전용 훅

func (e *Engine[T]) SetTracker(fn func(Range) func()) {
	e.tracker = fn
}

func (e *Engine[T]) Partition(a, b int) int {
	return e.partition(a, b)
}

func (e *Engine[T]) PartitionMedianValue(a, b int) int {
	return e.partitionMedianValue(a, b)
}

const MaxFanout = maxFanout
