// Package logger 벤치마크와 정렬 엔진이 함께 쓰는 레벨 로거
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level 로그 레벨
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel 설정 파일/플래그 문자열을 레벨로 변환 (빈 문자열은 INFO)
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

// sink 출력 대상과 최소 레벨. Named로 만든 로거끼리 공유한다
type sink struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel Level
}

// Logger 컴포넌트 이름이 붙은 로거
// 한 줄 형식: [시각] [레벨] [컴포넌트] 메시지
type Logger struct {
	sink      *sink
	component string
}

// Default 로거를 넘기지 않은 풀/엔진이 쓰는 stdout 로거
var Default = New(os.Stdout, LevelInfo)

func New(out io.Writer, minLevel Level) *Logger {
	return &Logger{sink: &sink{out: out, minLevel: minLevel}}
}

// Named 같은 출력을 쓰면서 컴포넌트 이름만 바꾼 로거
func (l *Logger) Named(component string) *Logger {
	return &Logger{sink: l.sink, component: component}
}

func (l *Logger) log(level Level, format string, args ...any) {
	s := l.sink
	if level < s.minLevel {
		return
	}

	line := fmt.Sprintf(format, args...)
	ts := time.Now().Format("2006-01-02 15:04:05.000")

	s.mu.Lock()
	defer s.mu.Unlock()
	if l.component == "" {
		_, _ = fmt.Fprintf(s.out, "[%s] [%s] %s\n", ts, level, line)
		return
	}
	_, _ = fmt.Fprintf(s.out, "[%s] [%s] [%s] %s\n", ts, level, l.component, line)
}

func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }
