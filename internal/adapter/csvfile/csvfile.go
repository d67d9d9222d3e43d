// Package csvfile reads archived post exports and writes per-terminal
// observation tables.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/couchcryptid/ferry-wait-etl/internal/domain"
)

const (
	textColumn = "tweet_text"
	timeColumn = "time"
	waitColumn = "wait_time"

	// TimeLayout is the timestamp format written to observation files.
	TimeLayout = "2006-01-02 15:04:05-07:00"
)

// LoadMessages reads every CSV file matching pattern, in lexical path order,
// and returns their posts concatenated.
func LoadMessages(pattern string) ([]domain.RawMessage, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files match %q", pattern)
	}
	sort.Strings(paths)

	var msgs []domain.RawMessage
	for _, path := range paths {
		batch, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, batch...)
	}
	return msgs, nil
}

func loadFile(path string) ([]domain.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	msgs, err := ReadMessages(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return msgs, nil
}

// ReadMessages parses one archive export. Header names are matched after
// lowercasing and replacing spaces with underscores; columns other than
// tweet_text and time are ignored.
func ReadMessages(r io.Reader) ([]domain.RawMessage, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	textIdx, timeIdx := -1, -1
	for i, name := range header {
		switch normalizeHeader(name) {
		case textColumn:
			textIdx = i
		case timeColumn:
			timeIdx = i
		}
	}
	if textIdx < 0 || timeIdx < 0 {
		return nil, fmt.Errorf("missing %s or %s column", textColumn, timeColumn)
	}

	var msgs []domain.RawMessage
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return msgs, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if textIdx >= len(rec) || timeIdx >= len(rec) {
			return nil, fmt.Errorf("line %d: short record", line)
		}
		ts, err := domain.ParseTimestamp(rec[timeIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		msgs = append(msgs, domain.RawMessage{Text: rec[textIdx], Timestamp: ts})
	}
}

// WriteObservations writes obs as tweet_text,time,wait_time rows. Unknown
// waits are left blank.
func WriteObservations(w io.Writer, obs []domain.WaitObservation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{textColumn, timeColumn, waitColumn}); err != nil {
		return err
	}
	for _, o := range obs {
		row := []string{o.Text, o.Timestamp.Format(TimeLayout), domain.FormatHours(o.Hours)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes obs to path, replacing any existing file.
func WriteFile(path string, obs []domain.WaitObservation) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteObservations(f, obs)
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
