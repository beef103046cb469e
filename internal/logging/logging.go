package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mwiater/gapview/internal/gap"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init sends the standard logger to stdout and, when logPath is set, to an
// append-only log file. An empty logPath discards log output.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	if logPath == "" {
		log.SetOutput(io.Discard)
		return nil
	}

	if dir := filepath.Dir(logPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	logFile = file

	log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	return nil
}

// InitFileOnly is Init without the stdout copy, for full-screen UIs that own
// the terminal.
func InitFileOnly(logPath string) error {
	if err := Init(logPath); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		log.SetOutput(logFile)
	}
	return nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogEvaluation records one engine evaluation on a single line.
func LogEvaluation(res gap.Result, override *float64) {
	log.Println(buildEvaluationMessage(res, override))
}

func buildEvaluationMessage(res gap.Result, override *float64) string {
	metric := strings.TrimSpace(string(res.Metric))
	if metric == "" {
		metric = "unknown"
	}
	overrideValue := "none"
	if override != nil {
		overrideValue = fmt.Sprintf("%.2f", *override)
	}
	parts := []string{
		"[EVAL]",
		fmt.Sprintf("metric=%s", metric),
		fmt.Sprintf("override=%s", overrideValue),
		fmt.Sprintf("pair=(%.2f,%.2f)", res.Pair.Normal, res.Pair.Malicious),
		fmt.Sprintf("tier=%s", res.Verdict.Tier),
		fmt.Sprintf("gap=%.2f", res.Verdict.Gap),
		fmt.Sprintf("leading=%s", res.Verdict.Leading),
	}
	return strings.Join(parts, " ")
}
