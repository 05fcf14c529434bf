package repository

import (
	"fmt"
	"strings"

	"cornershopparser/internal/domain/models"
)

// Header maps one entity field to its column label.
type Header struct {
	Field string
	Label string
}

type Headers []Header

// HeadersFromList builds headers whose labels equal the field names.
func HeadersFromList(fields []string) Headers {
	out := make(Headers, 0, len(fields))
	for _, f := range fields {
		out = append(out, Header{Field: f, Label: f})
	}
	return out
}

// ParseHeaders reads "field" or "field:label" specs, keeping their order.
func ParseHeaders(specs []string) (Headers, error) {
	out := make(Headers, 0, len(specs))
	for _, s := range specs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		field, label, ok := strings.Cut(s, ":")
		field = strings.TrimSpace(field)
		label = strings.TrimSpace(label)
		if field == "" {
			return nil, fmt.Errorf("header %q: empty field name", s)
		}
		if !ok || label == "" {
			label = field
		}
		out = append(out, Header{Field: field, Label: label})
	}
	return out, nil
}

// DefaultHeaders is the full field set of the first item, in its order.
func DefaultHeaders(items []models.Record) Headers {
	if len(items) == 0 {
		return nil
	}
	fields := items[0].Fields()
	out := make(Headers, 0, len(fields))
	for _, f := range fields {
		out = append(out, Header{Field: f.Name, Label: f.Name})
	}
	return out
}

// Resolve returns h, or the default headers of items when h is empty.
func (h Headers) Resolve(items []models.Record) Headers {
	if len(h) > 0 {
		return h
	}
	return DefaultHeaders(items)
}

func (h Headers) Labels() []string {
	out := make([]string, len(h))
	for i, x := range h {
		out[i] = x.Label
	}
	return out
}

func (h Headers) Fields() []string {
	out := make([]string, len(h))
	for i, x := range h {
		out[i] = x.Field
	}
	return out
}
