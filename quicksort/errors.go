package quicksort

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange 범위가 시퀀스 밖이거나 low > high+1
	ErrInvalidRange = errors.New("quicksort: invalid range")
	// ErrInvalidConfig 옵션 값이 잘못됨
	ErrInvalidConfig = errors.New("quicksort: invalid config")
	// ErrUnitFailed 병렬 유닛/풀 작업 중 하나가 실패
	ErrUnitFailed = errors.New("quicksort: unit failed")
)

// UnitError 실패한 유닛과 그 범위
// * Value는 recover로 잡은 패닉 값이다.
type UnitError struct {
	Range Range
	Value any
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("quicksort: unit %s failed: %v", e.Range, e.Value)
}

// Is errors.Is(err, ErrUnitFailed) 지원
func (e *UnitError) Is(target error) bool {
	return target == ErrUnitFailed
}

// Unwrap 패닉 값이 error면 노출
func (e *UnitError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func invalidRange(r Range, n int) error {
	return fmt.Errorf("%w: %s for length %d", ErrInvalidRange, r, n)
}
