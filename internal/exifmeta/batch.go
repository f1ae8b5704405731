package exifmeta

import (
	"fmt"
	"path/filepath"

	"github.com/bstardust/opencamera-meta-export/internal/csvtable"
	"github.com/bstardust/opencamera-meta-export/internal/progress"
)

// BatchTableName is the fixed output name for batch image tables.
const BatchTableName = "metaData-images.csv"

// ExtractBatch extracts records for the given paths, in input order. Any
// per-image failure aborts the whole batch; there is no partial output. When
// writeTable is set the records are also exported to BatchTableName in the
// working directory.
func ExtractBatch(paths []string, writeTable bool) ([]*Record, error) {
	rep := progress.New()
	rep.Start("EXIF data", len(paths))

	records := make([]*Record, 0, len(paths))
	for _, path := range paths {
		rec, err := Extract(path)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", path, err)
		}
		rec.ImgName = filepath.Base(path)
		records = append(records, rec)
	}
	rep.Finish(len(records))

	if writeTable {
		if _, err := WriteTable(records, ""); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// WriteTable exports records to BatchTableName under dir (the working
// directory when dir is empty) and returns the written path. The write blocks
// on operator acknowledgement if the target is locked.
func WriteTable(records []*Record, dir string) (string, error) {
	path := filepath.Join(dir, BatchTableName)
	progress.New().Export(path)

	rows := make([]map[string]string, len(records))
	for i, rec := range records {
		rows[i] = rec.Values()
	}

	if err := csvtable.Write(path, Columns, rows, csvtable.NewPromptPolicy()); err != nil {
		return "", fmt.Errorf("write table %s: %w", path, err)
	}
	return path, nil
}
