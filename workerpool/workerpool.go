package workerpool

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"quicksort/logger"
)

// Task 워커가 실행할 작업
type Task func()

var (
	// ErrPoolStopped 시작 전이거나 정지된 풀에 제출
	ErrPoolStopped = errors.New("workerpool: pool is not running")
	// ErrQueueFull 큐에 빈 슬롯이 없음 (TrySubmit 전용)
	ErrQueueFull = errors.New("workerpool: queue is full")
)

// Config 워커 풀 설정
type Config struct {
	NumWorkers  int // 워커 수 (0 이하면 CPU 수)
	QueueFactor int // 큐 크기 = NumWorkers * QueueFactor
	Logger      *logger.Logger
}

// DefaultConfig 기본 설정
func DefaultConfig() Config {
	return Config{
		NumWorkers:  0,
		QueueFactor: 64,
	}
}

// Pool 고정 크기 고루틴 풀
// * 채널 하나를 작업 큐로 공유하고, 워커는 Stop 전까지 재사용된다.
type Pool struct {
	numWorkers int
	tasks      chan Task
	log        *logger.Logger

	lifecycle sync.Mutex // Start/Stop 직렬화
	mu        sync.Mutex // ctx, cancel, running 변경 보호 (짧게만 잡는다)
	wg        sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool

	submitted atomic.Uint64
	completed atomic.Uint64
	panicked  atomic.Uint64
}

// New 워커 수만 지정해서 풀 생성
func New(numWorkers int) *Pool {
	cfg := DefaultConfig()
	cfg.NumWorkers = numWorkers
	return NewWithConfig(cfg)
}

// NewWithConfig 설정으로 풀 생성 (워커는 Start에서 띄운다)
func NewWithConfig(cfg Config) *Pool {
	numWorkers := cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	queueFactor := cfg.QueueFactor
	if queueFactor <= 0 {
		queueFactor = DefaultConfig().QueueFactor
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Default
	}
	log = log.Named("workerpool")
	return &Pool{
		numWorkers: numWorkers,
		tasks:      make(chan Task, numWorkers*queueFactor),
		log:        log,
	}
}

// Start 워커 고루틴 기동. 이미 실행 중이면 무시
func (p *Pool) Start(ctx context.Context) {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	if p.running.Load() {
		return
	}

	p.mu.Lock()
	p.ctx, p.cancel = context.WithCancel(ctx)
	workerCtx := p.ctx
	p.running.Store(true)
	p.mu.Unlock()

	for range p.numWorkers {
		p.wg.Add(1)
		go p.worker(workerCtx)
	}

	p.log.Debug("started with %d workers (queue %d)", p.numWorkers, cap(p.tasks))
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task := <-p.tasks:
			p.run(task)
		}
	}
}

// run 작업 하나 실행. 패닉은 워커를 죽이지 않는다
func (p *Pool) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.panicked.Add(1)
			p.log.Error("task panicked: %v", r)
		}
		p.completed.Add(1)
	}()
	task()
}

// done 현재 실행 세대의 종료 채널
func (p *Pool) done() (<-chan struct{}, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running.Load() {
		return nil, false
	}
	return p.ctx.Done(), true
}

// TrySubmit 빈 슬롯이 있을 때만 큐에 넣는다 (블록하지 않음)
func (p *Pool) TrySubmit(task Task) error {
	if !p.running.Load() {
		return ErrPoolStopped
	}

	select {
	case p.tasks <- task:
		p.submitted.Add(1)
		return nil
	default:
		return ErrQueueFull
	}
}

// Submit 큐에 빈 슬롯이 생길 때까지 기다렸다가 넣는다
func (p *Pool) Submit(ctx context.Context, task Task) error {
	stopped, ok := p.done()
	if !ok {
		return ErrPoolStopped
	}

	select {
	case <-stopped:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	case p.tasks <- task:
		p.submitted.Add(1)
		return nil
	}
}

// Stop 워커를 모두 정지시키고 종료를 기다린다
// * 큐에 남은 작업은 실행되지 않고 버려진다.
// * 워커를 기다리는 동안 mu를 잡지 않으므로, 실행 중인 작업이 Submit을 불러도 ErrPoolStopped로 바로 돌아온다.
func (p *Pool) Stop() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.mu.Lock()
	if !p.running.Load() {
		p.mu.Unlock()
		return
	}
	p.running.Store(false)
	p.cancel()
	p.mu.Unlock()

	p.wg.Wait()

	dropped := 0
	for {
		select {
		case <-p.tasks:
			dropped++
			continue
		default:
		}
		break
	}
	if dropped > 0 {
		p.log.Warn("stopped with %d queued tasks dropped", dropped)
	}
	p.log.Debug("stopped (completed %d tasks)", p.completed.Load())
}

// Running 실행 중 여부
func (p *Pool) Running() bool {
	return p.running.Load()
}

// NumWorkers 워커 수
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// QueueSize 현재 큐에 쌓인 작업 수
func (p *Pool) QueueSize() int {
	return len(p.tasks)
}

// Stats 누적 통계
type Stats struct {
	Submitted uint64
	Completed uint64
	Panicked  uint64
}

func (p *Pool) Stats() Stats {
	return Stats{
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
	}
}
