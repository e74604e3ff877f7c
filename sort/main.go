package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"quicksort/config"
	"quicksort/logger"
	"quicksort/quicksort"
	"quicksort/store"
	"quicksort/workerpool"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stderr, cfg.LogLevel).Named("bench")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

// loadConfig 설정 파일을 읽고 명령행 플래그로 덮어쓴다 (플래그가 우선)
func loadConfig(args []string) (config.RunConfig, error) {
	fs := flag.NewFlagSet("sort", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "", "설정 파일 (YAML/JSON)")
		storageKind = fs.String("storage", "", "데이터셋 저장소 (memory, file, bbolt, badger, pebble)")
		storagePath = fs.String("storage-path", "", "저장소 경로")
		sizes       = fs.String("sizes", "", "데이터 크기 목록 (예: 1000,10000)")
		runs        = fs.Int("runs", 0, "알고리즘별 반복 횟수")
		workers     = fs.Int("workers", 0, "PoolSort 워커 수")
		threshold   = fs.Int("threshold", 0, "PoolSort 순차 정렬 임계값")
		scheme      = fs.String("scheme", "", "분할 방식 (staged, median-value)")
		algorithms  = fs.String("algorithms", "", "실행할 알고리즘 (예: sequential,pool)")
		logLevel    = fs.String("log-level", "", "로그 레벨 (debug, info, warn, error)")
	)
	if err := fs.Parse(args); err != nil {
		return config.RunConfig{}, err
	}

	file := &config.FileConfig{}
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			return config.RunConfig{}, err
		}
		file = loaded
	}

	b := &file.Benchmark
	var sizesErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "storage":
			b.Storage.Kind = *storageKind
		case "storage-path":
			b.Storage.Path = *storagePath
		case "sizes":
			b.Sizes, sizesErr = parseSizes(*sizes)
		case "runs":
			b.Runs = *runs
		case "workers":
			b.Pool.Workers = *workers
		case "threshold":
			b.Pool.Threshold = *threshold
		case "scheme":
			b.Pool.Scheme = *scheme
		case "algorithms":
			b.Algorithms = strings.Split(*algorithms, ",")
		case "log-level":
			b.LogLevel = *logLevel
		}
	})
	if sizesErr != nil {
		return config.RunConfig{}, sizesErr
	}

	if err := file.Validate(); err != nil {
		return config.RunConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	cfg, err := file.ToRunConfig()
	if err != nil {
		return config.RunConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// run 설정대로 벤치마크를 돌리고 보고서를 쓴다
func run(ctx context.Context, cfg config.RunConfig, log *logger.Logger) error {
	log.Info("정렬 벤치마크 시작 (CPU %d, GOMAXPROCS %d)", runtime.NumCPU(), runtime.GOMAXPROCS(0))

	st, err := store.Open(cfg.StorageKind, cfg.StoragePath)
	if err != nil {
		return err
	}
	defer st.Close()

	// 모든 PoolSort가 하나의 풀을 공유. 취소는 각 정렬의 ctx로 전달된다
	pool := workerpool.NewWithConfig(workerpool.Config{
		NumWorkers:  cfg.Workers,
		QueueFactor: workerpool.DefaultConfig().QueueFactor,
		Logger:      log,
	})
	pool.Start(context.WithoutCancel(ctx))
	defer pool.Stop()

	opts := []quicksort.Option{
		quicksort.WithScheme(cfg.Scheme),
		quicksort.WithWorkers(cfg.Workers),
		quicksort.WithThreshold(cfg.Threshold),
		quicksort.WithPool(pool),
		quicksort.WithLogger(log),
	}

	results, err := runAll(ctx, cfg, st, opts, log)
	if err != nil {
		return err
	}

	if err := saveResultsToMarkdown(cfg.MarkdownPath, results, cfg); err != nil {
		return fmt.Errorf("마크다운 저장 오류: %w", err)
	}
	log.Info("%s 파일이 생성되었습니다", cfg.MarkdownPath)

	if err := saveResultsToJSON(cfg.JSONPath, results); err != nil {
		return fmt.Errorf("JSON 저장 오류: %w", err)
	}
	log.Info("%s 파일이 생성되었습니다", cfg.JSONPath)

	stats := pool.Stats()
	log.Debug("pool submitted=%d completed=%d panicked=%d", stats.Submitted, stats.Completed, stats.Panicked)
	log.Info("벤치마크 완료!")
	return nil
}

// runAll 크기마다 데이터셋을 저장하고, 알고리즘/회차마다 저장소에서 다시 읽어 정렬
func runAll(ctx context.Context, cfg config.RunConfig, st store.Store, opts []quicksort.Option, log *logger.Logger) ([]BenchmarkResult, error) {
	var allResults []BenchmarkResult

	for _, size := range cfg.Sizes {
		name := datasetName(size, cfg.Seed)
		log.Info("%d개 데이터 (%s) 테스트 중...", size, cfg.StorageKind)

		if err := st.Save(name, generateRandomData(size, cfg.Seed, cfg.MaxValue)); err != nil {
			return nil, fmt.Errorf("save %s: %w", name, err)
		}

		for _, algo := range cfg.Algorithms {
			for r := 1; r <= cfg.Runs; r++ {
				if err := ctx.Err(); err != nil {
					return nil, err
				}

				// 매번 저장소에서 읽기
				data, err := st.Load(name)
				if err != nil {
					return nil, fmt.Errorf("load %s: %w", name, err)
				}

				result, err := runBenchmark(ctx, algo, data, opts)
				if err != nil {
					return nil, err
				}
				result.StorageType = string(cfg.StorageKind)
				result.TestRun = r
				allResults = append(allResults, result)

				log.Debug("  %s - 테스트 %d: %v", algo, r, result.Duration)
			}
		}
	}

	return allResults, nil
}

// parseSizes "1000,10000" 형식 파싱
func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", part, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid size %d", n)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
