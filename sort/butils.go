package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"quicksort/config"
	"quicksort/quicksort"
)

// BenchmarkResult 벤치마크 결과를 저장하는 구조체
type BenchmarkResult struct {
	Algorithm    string        `json:"algorithm"`
	DataSize     int           `json:"data_size"`
	StorageType  string        `json:"storage_type"`
	TestRun      int           `json:"test_run"`
	Duration     time.Duration `json:"duration"`
	MemoryUsage  uint64        `json:"memory_usage_bytes"`
	GoroutineNum int           `json:"goroutine_num"`

	// 엔진 통계 (sequential/stdlib은 비어 있음)
	Units           int64 `json:"units,omitempty"`
	Tasks           int64 `json:"tasks,omitempty"`
	Leaves          int64 `json:"leaves,omitempty"`
	Inline          int64 `json:"inline,omitempty"`
	PeakOutstanding int64 `json:"peak_outstanding,omitempty"`
}

// SystemStats 시스템 통계를 위한 구조체
type SystemStats struct {
	startTime time.Time
	startMem  runtime.MemStats
	endMem    runtime.MemStats
}

// generateRandomData [0, maxValue) 범위 난수. 같은 시드면 같은 데이터
func generateRandomData(size int, seed int64, maxValue int) []int {
	r := rand.New(rand.NewSource(seed))

	data := make([]int, size)
	for i := range size {
		data[i] = r.Intn(maxValue)
	}
	return data
}

// datasetName 저장소 키
func datasetName(size int, seed int64) string {
	return fmt.Sprintf("random-%d-seed-%d", size, seed)
}

// startStats 성능 측정 시작
func startStats() *SystemStats {
	runtime.GC() // 가비지 컬렉션으로 정확한 측정

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemStats{
		startTime: time.Now(),
		startMem:  m,
	}
}

// endStats 성능 측정 종료
func (s *SystemStats) endStats() (time.Duration, uint64) {
	duration := time.Since(s.startTime)
	runtime.ReadMemStats(&s.endMem)
	return duration, s.endMem.TotalAlloc - s.startMem.TotalAlloc
}

// sortWith 알고리즘 이름대로 정렬하고 엔진 통계를 돌려준다
func sortWith(ctx context.Context, algorithm string, data []int, opts []quicksort.Option) (quicksort.Stats, error) {
	if algorithm == config.AlgoStdlib {
		slices.Sort(data)
		return quicksort.Stats{}, nil
	}

	e, err := quicksort.New(data, opts...)
	if err != nil {
		return quicksort.Stats{}, err
	}

	switch algorithm {
	case config.AlgoSequential:
		e.Sort()
	case config.AlgoParallel:
		err = e.ParallelSort(ctx)
	case config.AlgoPool:
		err = e.PoolSort(ctx)
	default:
		return quicksort.Stats{}, fmt.Errorf("unknown algorithm: %s", algorithm)
	}
	return e.Stats(), err
}

// verifySorted 정렬 결과가 오름차순이고 원본과 값 구성이 같은지 확인
func verifySorted(original, sorted []int) error {
	if len(original) != len(sorted) {
		return fmt.Errorf("length changed: %d -> %d", len(original), len(sorted))
	}
	if !quicksort.IsSorted(sorted) {
		return fmt.Errorf("output is not sorted")
	}

	counts := make(map[int]int, len(original))
	for _, v := range original {
		counts[v]++
	}
	for _, v := range sorted {
		counts[v]--
		if counts[v] < 0 {
			return fmt.Errorf("value %d appears more often than in input", v)
		}
	}
	return nil
}

// runBenchmark 한 번 정렬하고 측정
// * data는 복사해서 정렬하므로 호출자의 슬라이스는 그대로 남는다.
func runBenchmark(ctx context.Context, algorithm string, data []int, opts []quicksort.Option) (BenchmarkResult, error) {
	result := BenchmarkResult{
		Algorithm: algorithm,
		DataSize:  len(data),
	}

	testData := slices.Clone(data)

	stats := startStats()
	engineStats, err := sortWith(ctx, algorithm, testData, opts)
	duration, memUsage := stats.endStats()
	if err != nil {
		return result, fmt.Errorf("%s: %w", algorithm, err)
	}

	if err := verifySorted(data, testData); err != nil {
		return result, fmt.Errorf("%s: %w", algorithm, err)
	}

	result.Duration = duration
	result.MemoryUsage = memUsage
	result.GoroutineNum = runtime.NumGoroutine()
	result.Units = engineStats.Units
	result.Tasks = engineStats.Tasks
	result.Leaves = engineStats.Leaves
	result.Inline = engineStats.Inline
	result.PeakOutstanding = engineStats.PeakOutstanding
	return result, nil
}

// saveResultsToMarkdown 마크다운 보고서 저장
func saveResultsToMarkdown(path string, results []BenchmarkResult, cfg config.RunConfig) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)

	var builder strings.Builder

	// 마크다운 헤더
	builder.WriteString("# 퀵소트 벤치마크 결과\n\n")
	builder.WriteString(fmt.Sprintf("실행 시간: %s\n", time.Now().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("CPU 코어 수: %d\n", runtime.NumCPU()))
	builder.WriteString(fmt.Sprintf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0)))
	builder.WriteString(fmt.Sprintf("저장소: %s\n", cfg.StorageKind))
	builder.WriteString(fmt.Sprintf("워커 수: %d, 임계값: %d, 분할 방식: %s\n\n", cfg.Workers, cfg.Threshold, cfg.Scheme))

	for _, size := range cfg.Sizes {
		builder.WriteString(fmt.Sprintf("## %d개 데이터\n\n", size))
		builder.WriteString("| 알고리즘 | 테스트 | 실행시간 | 메모리사용량 | 고루틴수 | 작업수 | 최대대기 |\n")
		builder.WriteString("|----------|--------|----------|--------------|----------|--------|----------|\n")

		for _, algo := range cfg.Algorithms {
			for _, result := range results {
				if result.Algorithm == algo && result.DataSize == size {
					builder.WriteString(fmt.Sprintf("| %s | %d | %v | %d bytes | %d | %d | %d |\n",
						algo, result.TestRun, result.Duration, result.MemoryUsage,
						result.GoroutineNum, result.Tasks, result.PeakOutstanding))
				}
			}
		}
		builder.WriteString("\n")
	}

	// 요약 통계
	builder.WriteString("## 요약 통계\n\n")

	for _, size := range cfg.Sizes {
		builder.WriteString(fmt.Sprintf("### %d개 데이터 평균\n\n", size))
		builder.WriteString("| 알고리즘 | 평균 실행시간 | 평균 메모리사용량 |\n")
		builder.WriteString("|----------|---------------|-------------------|\n")

		for _, algo := range cfg.Algorithms {
			var totalDuration time.Duration
			var totalMemory uint64
			count := 0

			for _, result := range results {
				if result.Algorithm == algo && result.DataSize == size {
					totalDuration += result.Duration
					totalMemory += result.MemoryUsage
					count++
				}
			}

			if count > 0 {
				builder.WriteString(fmt.Sprintf("| %s | %v | %d bytes |\n",
					algo, totalDuration/time.Duration(count), totalMemory/uint64(count)))
			}
		}
		builder.WriteString("\n")
	}

	if _, err := writer.WriteString(builder.String()); err != nil {
		return err
	}
	return writer.Flush()
}

// saveResultsToJSON JSON 보고서 저장
func saveResultsToJSON(path string, results []BenchmarkResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return err
	}
	return writer.Flush()
}
