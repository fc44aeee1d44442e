package main

import (
	"encoding/csv"
	"fmt"
	"io"
)

const logTimestampFormat = "2006-01-02 15:04:05.000"

// WriteLogCSV writes the given log lines to w as CSV, one record per line.
func WriteLogCSV(w io.Writer, lines []LogLine, includeTimestamps bool) error {
	cw := csv.NewWriter(w)

	header := []string{"Data"}
	if includeTimestamps {
		header = []string{"Timestamp", "Data"}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, line := range lines {
		record := []string{line.Text}
		if includeTimestamps {
			record = []string{line.Timestamp.Format(logTimestampFormat), line.Text}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv writer: %w", err)
	}
	return nil
}
