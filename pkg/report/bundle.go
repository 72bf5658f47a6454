package report

import (
	"archive/zip"
	"bytes"
	"encoding/csv"

	"followdiff-be/internal/entity"
)

// FileName is the download name of the bundle.
const FileName = "report.zip"

// Bundle serializes a diff result into a zip of nine csv members, one per
// named list in the fixed order, each with a single "username" header column.
// The output is deterministic for the same result.
func Bundle(result *entity.DiffResult) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, name := range entity.ListNames {
		member, err := zw.Create(name + ".csv")
		if err != nil {
			return nil, err
		}
		cw := csv.NewWriter(member)
		if err := cw.Write([]string{"username"}); err != nil {
			return nil, err
		}
		for _, username := range result.Lists[name] {
			if err := cw.Write([]string{username}); err != nil {
				return nil, err
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
