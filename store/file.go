package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// File 디렉터리 아래 데이터셋마다 한 줄에 숫자 하나씩 쓰는 텍스트 파일
type File struct {
	dir string
}

// OpenFile dir 아래에 데이터셋마다 파일 하나
func OpenFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("store: invalid dataset name %q", name)
	}
	return filepath.Join(f.dir, name+".txt"), nil
}

// Save 큰 버퍼로 한 번에 쓴다
func (f *File) Save(name string, data []int) error {
	path, err := f.path(name)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 64*1024) // 64KB 버퍼
	buf := make([]byte, 0, 24)
	for _, num := range data {
		buf = strconv.AppendInt(buf[:0], int64(num), 10)
		buf = append(buf, '\n')
		if _, err := writer.Write(buf); err != nil {
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return file.Close()
}

func (f *File) Load(name string) ([]int, error) {
	path, err := f.path(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// 파일 크기로 개수를 대략 추정해서 미리 할당 (평균 6자리 + 개행)
	var data []int
	if info, err := file.Stat(); err == nil {
		data = make([]int, 0, info.Size()/7)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), bufio.MaxScanTokenSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		num, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("store: %s: %w", name, err)
		}
		data = append(data, num)
	}
	return data, scanner.Err()
}

func (f *File) Close() error {
	return nil
}
