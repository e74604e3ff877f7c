package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"quicksort/logger"
	"quicksort/quicksort"
	"quicksort/store"
)

// 알고리즘 이름
const (
	AlgoSequential = "sequential"
	AlgoParallel   = "parallel"
	AlgoPool       = "pool"
	AlgoStdlib     = "stdlib"
)

// Algorithms 지원하는 알고리즘 전체 (출력 순서)
func Algorithms() []string {
	return []string{AlgoSequential, AlgoParallel, AlgoPool, AlgoStdlib}
}

// FileConfig 설정 파일 구조
type FileConfig struct {
	Benchmark BenchmarkConfig `yaml:"benchmark" json:"benchmark"`
}

// BenchmarkConfig 벤치마크 설정
type BenchmarkConfig struct {
	Sizes      []int    `yaml:"sizes" json:"sizes"`
	Runs       int      `yaml:"runs" json:"runs"`
	Seed       int64    `yaml:"seed" json:"seed"`
	MaxValue   int      `yaml:"max_value" json:"max_value"`
	Algorithms []string `yaml:"algorithms" json:"algorithms"`
	LogLevel   string   `yaml:"log_level" json:"log_level"`

	Pool    PoolConfig    `yaml:"pool" json:"pool"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Output  OutputConfig  `yaml:"output" json:"output"`
}

// PoolConfig PoolSort 설정
type PoolConfig struct {
	Workers   int    `yaml:"workers" json:"workers"`
	Threshold int    `yaml:"threshold" json:"threshold"`
	Scheme    string `yaml:"scheme" json:"scheme"`
}

// StorageConfig 데이터셋 저장소
type StorageConfig struct {
	Kind string `yaml:"kind" json:"kind"`
	Path string `yaml:"path" json:"path"`
}

// OutputConfig 결과 파일
type OutputConfig struct {
	Markdown string `yaml:"markdown" json:"markdown"`
	JSON     string `yaml:"json" json:"json"`
}

// RunConfig 기본값이 채워진 실행 설정
type RunConfig struct {
	Sizes      []int
	Runs       int
	Seed       int64
	MaxValue   int
	Algorithms []string
	LogLevel   logger.Level

	Workers   int
	Threshold int
	Scheme    quicksort.Scheme

	StorageKind store.Kind
	StoragePath string

	MarkdownPath string
	JSONPath     string
}

// DefaultRunConfig 기본 실행 설정
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Sizes:        []int{1000, 10000, 100000},
		Runs:         3,
		Seed:         42, // 동일한 시드로 일관된 결과
		MaxValue:     1000000,
		Algorithms:   Algorithms(),
		LogLevel:     logger.LevelInfo,
		Workers:      quicksort.DefaultWorkers,
		Threshold:    quicksort.DefaultThreshold,
		Scheme:       quicksort.SchemeStaged,
		StorageKind:  store.KindMemory,
		MarkdownPath: "benchmark_results.md",
		JSONPath:     "benchmark_results.json",
	}
}

// LoadFile 설정 파일 읽기 (YAML/JSON)
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	return &cfg, nil
}

// Validate 값 범위 검증
func (f *FileConfig) Validate() error {
	b := f.Benchmark

	for _, n := range b.Sizes {
		if n < 0 {
			return fmt.Errorf("sizes must be non-negative, got %d", n)
		}
	}
	if b.Runs < 0 {
		return fmt.Errorf("runs must be non-negative")
	}
	if b.MaxValue < 0 {
		return fmt.Errorf("max_value must be non-negative")
	}
	if b.Pool.Workers < 0 {
		return fmt.Errorf("pool.workers must be non-negative")
	}
	if b.Pool.Threshold < 0 {
		return fmt.Errorf("pool.threshold must be non-negative")
	}
	return nil
}

// ToRunConfig 기본값 위에 파일 설정을 덮어쓴다
func (f *FileConfig) ToRunConfig() (RunConfig, error) {
	b := f.Benchmark
	cfg := DefaultRunConfig()

	if len(b.Sizes) > 0 {
		cfg.Sizes = b.Sizes
	}
	if b.Runs > 0 {
		cfg.Runs = b.Runs
	}
	if b.Seed != 0 {
		cfg.Seed = b.Seed
	}
	if b.MaxValue > 0 {
		cfg.MaxValue = b.MaxValue
	}
	if len(b.Algorithms) > 0 {
		algos, err := ParseAlgorithms(b.Algorithms)
		if err != nil {
			return cfg, err
		}
		cfg.Algorithms = algos
	}
	if b.LogLevel != "" {
		level, err := logger.ParseLevel(b.LogLevel)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}

	// Pool 설정
	if b.Pool.Workers > 0 {
		cfg.Workers = b.Pool.Workers
	}
	if b.Pool.Threshold > 0 {
		cfg.Threshold = b.Pool.Threshold
	}
	if b.Pool.Scheme != "" {
		scheme, err := ParseScheme(b.Pool.Scheme)
		if err != nil {
			return cfg, err
		}
		cfg.Scheme = scheme
	}

	// Storage 설정
	if b.Storage.Kind != "" {
		kind, err := store.ParseKind(b.Storage.Kind)
		if err != nil {
			return cfg, err
		}
		cfg.StorageKind = kind
	}
	cfg.StoragePath = b.Storage.Path

	// Output 설정
	if b.Output.Markdown != "" {
		cfg.MarkdownPath = b.Output.Markdown
	}
	if b.Output.JSON != "" {
		cfg.JSONPath = b.Output.JSON
	}

	return cfg, nil
}

// ParseAlgorithms 알고리즘 이름 검증 (중복 제거, 입력 순서 유지)
func ParseAlgorithms(names []string) ([]string, error) {
	var algos []string
	seen := make(map[string]bool)

	for _, n := range names {
		name := strings.ToLower(strings.TrimSpace(n))
		switch name {
		case AlgoSequential, AlgoParallel, AlgoPool, AlgoStdlib:
		default:
			return nil, fmt.Errorf("unknown algorithm: %s", n)
		}
		if !seen[name] {
			seen[name] = true
			algos = append(algos, name)
		}
	}

	return algos, nil
}

// ParseScheme 분할 방식 이름 변환
func ParseScheme(s string) (quicksort.Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "staged":
		return quicksort.SchemeStaged, nil
	case "median-value", "median_value":
		return quicksort.SchemeMedianValue, nil
	default:
		return quicksort.SchemeStaged, fmt.Errorf("unknown scheme: %s", s)
	}
}
