package quicksort

import (
	"fmt"

	"quicksort/logger"
	"quicksort/workerpool"
)

// Scheme 분할 방식
type Scheme int

const (
	// SchemeStaged 세 원소를 교환해서 중앙값을 b에 올려두고 분할 (피벗이 최종 위치에 고정됨)
	SchemeStaged Scheme = iota
	// SchemeMedianValue 세 원소의 중앙값을 값으로만 골라서 Hoare 분할
	SchemeMedianValue
)

func (s Scheme) String() string {
	switch s {
	case SchemeStaged:
		return "staged"
	case SchemeMedianValue:
		return "median-value"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

const (
	// DefaultWorkers PoolSort 기본 워커 수
	DefaultWorkers = 10
	// DefaultThreshold 이 크기 이하 범위는 풀 작업 안에서 순차 정렬
	DefaultThreshold = 1000
)

// Config 엔진 설정
type Config struct {
	Scheme    Scheme
	Workers   int
	Threshold int

	// Pool이 있으면 PoolSort가 새 풀을 만들지 않고 이 풀을 쓴다 (정지시키지 않음)
	Pool   *workerpool.Pool
	Logger *logger.Logger
}

// DefaultConfig 기본 설정
func DefaultConfig() Config {
	return Config{
		Scheme:    SchemeStaged,
		Workers:   DefaultWorkers,
		Threshold: DefaultThreshold,
	}
}

// Validate 설정 검증
func (c Config) Validate() error {
	if c.Scheme != SchemeStaged && c.Scheme != SchemeMedianValue {
		return fmt.Errorf("%w: unknown scheme %s", ErrInvalidConfig, c.Scheme)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("%w: threshold must be positive, got %d", ErrInvalidConfig, c.Threshold)
	}
	return nil
}

type settings struct {
	cfg Config
	rng *Range
}

// Option 엔진 옵션
type Option func(*settings)

// WithRange 정렬할 닫힌 구간 [low, high]. 기본은 시퀀스 전체
func WithRange(low, high int) Option {
	return func(s *settings) {
		s.rng = &Range{Low: low, High: high}
	}
}

// WithScheme 분할 방식 지정
func WithScheme(scheme Scheme) Option {
	return func(s *settings) {
		s.cfg.Scheme = scheme
	}
}

// WithWorkers PoolSort가 직접 만드는 풀의 워커 수
func WithWorkers(n int) Option {
	return func(s *settings) {
		s.cfg.Workers = n
	}
}

// WithThreshold 이 크기 이하 구간은 풀 작업 안에서 순차 정렬
func WithThreshold(n int) Option {
	return func(s *settings) {
		s.cfg.Threshold = n
	}
}

// WithPool 호출자가 관리하는 풀 사용. 정렬이 끝날 때까지 풀이 실행 중이어야 한다
func WithPool(pool *workerpool.Pool) Option {
	return func(s *settings) {
		s.cfg.Pool = pool
	}
}

// WithLogger 풀 실행 요약을 남길 로거 (없으면 logger.Default)
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) {
		s.cfg.Logger = l
	}
}

// WithConfig 설정 전체 교체 (WithRange는 유지)
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}
