package quicksort

// setMedian 세 번의 비교-교환으로 arr[a]=최솟값, arr[middle]=최댓값, arr[b]=중앙값
func (e *Engine[T]) setMedian(a, b int) {
	arr := e.data
	middle := a + (b-a)/2

	if e.cmp(arr[a], arr[middle]) > 0 {
		arr[a], arr[middle] = arr[middle], arr[a]
	}
	if e.cmp(arr[b], arr[middle]) > 0 {
		arr[b], arr[middle] = arr[middle], arr[b]
	}
	if e.cmp(arr[a], arr[b]) > 0 {
		arr[a], arr[b] = arr[b], arr[a]
	}
}

// partition 중앙값을 b에 올린 뒤 [a, b-1]을 양쪽에서 훑는 Hoare 분할 (a < b)
// 반환값 m: arr[m]은 피벗이 놓일 최종 위치, [a, m-1] <= 피벗 <= [m+1, b]
func (e *Engine[T]) partition(a, b int) int {
	arr := e.data
	e.setMedian(a, b)
	pivot := arr[b]

	left, right := a, b-1
	for left <= right {
		for left <= right && e.cmp(arr[left], pivot) < 0 {
			left++
		}
		for left <= right && e.cmp(arr[right], pivot) > 0 {
			right--
		}
		// 피벗과 같은 값도 교환하고 양쪽을 전진시킨다. 모두 같은 값이어도 멈추지 않음
		if left <= right {
			arr[left], arr[right] = arr[right], arr[left]
			left++
			right--
		}
	}

	arr[left], arr[b] = arr[b], arr[left]
	return left
}

// partitionMedianValue 세 원소의 중앙값을 값으로만 골라 Hoare 분할 (a < b)
// 반환값 m은 (a, b] 안에 있고 [a, m-1] <= [m, b]
func (e *Engine[T]) partitionMedianValue(a, b int) int {
	arr := e.data
	pivot := e.medianOf(arr[a], arr[a+(b-a)/2], arr[b])

	// 중앙값은 구간 안의 값이라 두 포인터 모두 구간 밖으로 나가지 않는다
	i, j := a, b
	for {
		for e.cmp(arr[i], pivot) < 0 {
			i++
		}
		for e.cmp(arr[j], pivot) > 0 {
			j--
		}
		if i >= j {
			return j + 1
		}
		arr[i], arr[j] = arr[j], arr[i]
		i++
		j--
	}
}

func (e *Engine[T]) medianOf(x, y, z T) T {
	if e.cmp(x, y) > 0 {
		x, y = y, x
	}
	// x <= y
	if e.cmp(y, z) <= 0 {
		return y
	}
	if e.cmp(x, z) > 0 {
		return x
	}
	return z
}

// split 분할 후 재귀할 두 구간의 경계 [low, leftHigh], [rightLow, high]
func (e *Engine[T]) split(low, high int) (leftHigh, rightLow int) {
	if e.cfg.Scheme == SchemeMedianValue {
		m := e.partitionMedianValue(low, high)
		return m - 1, m
	}
	m := e.partition(low, high)
	return m - 1, m + 1
}
