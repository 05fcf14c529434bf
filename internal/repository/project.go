package repository

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"cornershopparser/internal/domain/models"
)

type Row []any

// Project looks every header field up on item. Missing fields become nil.
func Project(item models.Record, headers Headers) Row {
	fields := item.Fields()
	byName := make(map[string]any, len(fields))
	for _, f := range fields {
		byName[f.Name] = f.Value
	}

	row := make(Row, len(headers))
	for i, h := range headers {
		row[i] = byName[h.Field]
	}
	return row
}

func ProjectAll(items []models.Record, headers Headers) []Row {
	out := make([]Row, len(items))
	for i, it := range items {
		out[i] = Project(it, headers)
	}
	return out
}

// ProjectMaps is ProjectAll keyed by header label.
func ProjectMaps(items []models.Record, headers Headers) []map[string]any {
	out := make([]map[string]any, len(items))
	for i, it := range items {
		row := Project(it, headers)
		m := make(map[string]any, len(headers))
		for j, h := range headers {
			m[h.Label] = row[j]
		}
		out[i] = m
	}
	return out
}

// FormatValue renders a projected value as cell text. nil renders empty.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case decimal.Decimal:
		return x.String()
	case decimal.NullDecimal:
		if !x.Valid {
			return ""
		}
		return x.Decimal.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = FormatValue(v)
	}
	return out
}
