package quicksort

// Sort 순차 퀵소트. 동시성 없음
func (e *Engine[T]) Sort() {
	e.sortRange(e.rng.Low, e.rng.High)
}

// sortRange 병렬 엔진들이 작은 구간을 끝낼 때도 쓰는 순차 본체
func (e *Engine[T]) sortRange(low, high int) {
	for low < high {
		leftHigh, rightLow := e.split(low, high)

		// 꼬리 재귀 최적화 (더 작은 쪽을 재귀로)
		if leftHigh-low < high-rightLow {
			e.sortRange(low, leftHigh)
			low = rightLow
		} else {
			e.sortRange(rightLow, high)
			high = leftHigh
		}
	}
}
