package services

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// decodeRecords reads a list of objects, bare or inside {"data": [...]}.
func decodeRecords(raw json.RawMessage) ([]map[string]interface{}, error) {
	var records []map[string]interface{}
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}
	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Data == nil {
		return nil, fmt.Errorf("export: expected a list of records")
	}
	return envelope.Data, nil
}

func cellValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return ""
	case string, float64, bool:
		return t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// ExportRecords renders a passthrough list as a single sheet workbook. The
// header row is the sorted union of every record's keys.
func ExportRecords(raw json.RawMessage, sheet string) ([]byte, error) {
	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}

	keySet := map[string]bool{}
	for _, rec := range records {
		for k := range rec {
			keySet[k] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	set := func(col, row int, v interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	for i, k := range keys {
		if err := set(i+1, 1, k); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}
	for r, rec := range records {
		for i, k := range keys {
			if err := set(i+1, r+2, cellValue(rec[k])); err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return buf.Bytes(), nil
}
