// Package csvtable writes fixed-column CSV tables. The target file is
// routinely held open in spreadsheet software, so writes go through a retry
// policy instead of failing and dropping collected records.
package csvtable

import (
	"encoding/csv"
	"os"

	"github.com/bstardust/opencamera-meta-export/internal/logger"
)

// Write writes a header row followed by one row per record, in input order.
// Fields absent from a record are rendered empty. On failure the policy
// decides whether to attempt the same write again; a nil policy fails on the
// first error.
func Write(path string, columns []string, records []map[string]string, policy RetryPolicy) error {
	for attempt := 1; ; attempt++ {
		err := writeOnce(path, columns, records)
		if err == nil {
			if attempt > 1 {
				logger.Info("Table write to %s succeeded after %d attempts", path, attempt)
			}
			return nil
		}

		logger.Warn("Table write to %s failed: %v", path, err)
		if policy == nil || !policy.Retry(attempt, err) {
			return err
		}
	}
}

func writeOnce(path string, columns []string, records []map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)

	if err := w.Write(columns); err != nil {
		f.Close()
		return err
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = rec[col]
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
