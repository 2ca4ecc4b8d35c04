package logging

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LogExt is the extension of per-run log files.
const LogExt = ".log"

// RunLogger owns the log file of a single tpdp run.
type RunLogger struct {
	Dir     string
	RunID   string
	LogPath string
	file    *os.File
}

// NewRunLogger creates dir if needed and opens a fresh <timestamp>-<pid>.log
// file inside it.
func NewRunLogger(dir string) (*RunLogger, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("log dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := runID(time.Now())
	path := filepath.Join(dir, id+LogExt)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	return &RunLogger{
		Dir:     dir,
		RunID:   id,
		LogPath: path,
		file:    file,
	}, nil
}

// Writer returns the underlying log file.
func (r *RunLogger) Writer() io.Writer {
	return r.file
}

// Close closes the log file.
func (r *RunLogger) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

func runID(now time.Time) string {
	return fmt.Sprintf("%s-%d", now.UTC().Format("20060102-150405"), os.Getpid())
}

// ListLogs returns the run logs in dir, newest first. A missing dir yields
// an empty list.
func ListLogs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log dir: %w", err)
	}

	type logFile struct {
		path string
		mod  time.Time
	}
	var files []logFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), LogExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{path: filepath.Join(dir, entry.Name()), mod: info.ModTime()})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].mod.Equal(files[j].mod) {
			return files[i].path > files[j].path
		}
		return files[i].mod.After(files[j].mod)
	})

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}

// FindLatestLog returns the newest run log in dir, or "" when there is none.
func FindLatestLog(dir string) (string, error) {
	logs, err := ListLogs(dir)
	if err != nil || len(logs) == 0 {
		return "", err
	}
	return logs[0], nil
}

// Prune removes all but the newest keep run logs in dir and returns how
// many files were removed.
func Prune(dir string, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	logs, err := ListLogs(dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, path := range logs[min(keep, len(logs)):] {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("remove %s: %w", path, err)
		}
		removed++
	}
	return removed, nil
}

// TailLog copies the last n lines of path to w (all of it when n <= 0).
// With follow it keeps copying appended data until ctx is done.
func TailLog(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := seekLastLines(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}

	if _, err := io.Copy(w, file); err != nil {
		return err
	}
	if !follow {
		return nil
	}
	return followFile(ctx, w, file)
}

// seekLastLines positions file at the start of its last n lines. A trailing
// newline does not count as an extra empty line.
func seekLastLines(file *os.File, n int) error {
	const chunk = 4096

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	size := stat.Size()
	end := size

	// Skip the trailing newline so it terminates the last line.
	if size > 0 {
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, size-1); err != nil {
			return err
		}
		if last[0] == '\n' {
			end--
		}
	}

	buf := make([]byte, chunk)
	found := 0
	for pos := end; pos > 0; {
		readSize := int64(chunk)
		if pos < readSize {
			readSize = pos
		}
		pos -= readSize
		if _, err := file.ReadAt(buf[:readSize], pos); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		for i := readSize - 1; i >= 0; i-- {
			if buf[i] != '\n' {
				continue
			}
			found++
			if found == n {
				_, err := file.Seek(pos+i+1, io.SeekStart)
				return err
			}
		}
	}

	_, err = file.Seek(0, io.SeekStart)
	return err
}

func followFile(ctx context.Context, w io.Writer, file *os.File) error {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	reader := bufio.NewReader(file)
	var partial bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			if partial.Len() > 0 {
				_, _ = w.Write(partial.Bytes())
			}
			return nil
		case <-ticker.C:
		}

		for {
			line, err := reader.ReadBytes('\n')
			partial.Write(line)
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return err
			}
			if _, err := w.Write(partial.Bytes()); err != nil {
				return err
			}
			partial.Reset()
		}
	}
}
