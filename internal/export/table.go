package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Table is data flattened to a header and string rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Tabulate flattens data through its JSON form. An array of objects becomes
// one row per object under the sorted union of their keys. An object becomes
// key/value rows. Anything else becomes a single value column.
func Tabulate(data any) (Table, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Table{}, fmt.Errorf("encoding data: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Table{}, fmt.Errorf("decoding data: %w", err)
	}

	switch x := v.(type) {
	case []any:
		if objs, ok := allObjects(x); ok && len(objs) > 0 {
			return objectRows(objs), nil
		}
		t := Table{Header: []string{"value"}}
		for _, item := range x {
			t.Rows = append(t.Rows, []string{cell(item)})
		}
		return t, nil
	case map[string]any:
		t := Table{Header: []string{"key", "value"}}
		for _, k := range sortedKeys(x) {
			t.Rows = append(t.Rows, []string{k, cell(x[k])})
		}
		return t, nil
	default:
		return Table{Header: []string{"value"}, Rows: [][]string{{cell(x)}}}, nil
	}
}

func allObjects(items []any) ([]map[string]any, bool) {
	objs := make([]map[string]any, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, false
		}
		objs = append(objs, m)
	}
	return objs, true
}

func objectRows(objs []map[string]any) Table {
	seen := make(map[string]bool)
	var header []string
	for _, o := range objs {
		for k := range o {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}
	sort.Strings(header)

	t := Table{Header: header}
	for _, o := range objs {
		row := make([]string, len(header))
		for i, k := range header {
			row[i] = cell(o[k])
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		raw, _ := json.Marshal(x)
		return string(raw)
	}
}
