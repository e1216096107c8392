package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed log line. Lines that are not JSON objects come back
// with only Raw and Message set.
type Entry struct {
	Time      time.Time
	Level     string
	Component string
	Message   string
	Fields    []Field
	Raw       string
}

// Field is an extra key/value pair from a structured line.
type Field struct {
	Key   string
	Value string
}

// Structured reports whether the line parsed as a log record.
func (e Entry) Structured() bool {
	return e.Level != ""
}

// Keys written by the logger's encoder; everything else is a field.
const (
	keyTime      = "timestamp"
	keyLevel     = "level"
	keyComponent = "component"
	keyMessage   = "message"
	keyCaller    = "caller"
)

// Parse decodes one line written by the JSON encoder.
func Parse(line string) Entry {
	entry := Entry{Raw: line, Message: line}
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return entry
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return entry
	}
	level := stringValue(obj[keyLevel])
	if level == "" {
		return entry
	}

	entry.Level = strings.ToLower(level)
	entry.Component = stringValue(obj[keyComponent])
	entry.Message = stringValue(obj[keyMessage])
	if ts := stringValue(obj[keyTime]); ts != "" {
		if parsed, err := time.Parse("2006-01-02T15:04:05.000Z0700", ts); err == nil {
			entry.Time = parsed
		} else if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			entry.Time = parsed
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		switch k {
		case keyTime, keyLevel, keyComponent, keyMessage, keyCaller:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		entry.Fields = append(entry.Fields, Field{Key: k, Value: fieldValue(obj[k])})
	}
	return entry
}

// Tail reads and parses the last maxLines lines of path.
func Tail(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

func stringValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func fieldValue(raw json.RawMessage) string {
	if s := stringValue(raw); s != "" {
		return s
	}
	return string(raw)
}
