package models

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
)

// LookupKey selects the field a Department or Aisle is matched on.
type LookupKey int

const (
	ByID LookupKey = iota
	ByName
)

func (k LookupKey) String() string {
	switch k {
	case ByID:
		return "id"
	case ByName:
		return "name"
	default:
		return fmt.Sprintf("LookupKey(%d)", int(k))
	}
}

func ParseLookupKey(s string) (LookupKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "id":
		return ByID, nil
	case "name":
		return ByName, nil
	default:
		return ByID, fmt.Errorf("unknown lookup key %q (expected id|name)", s)
	}
}

func (k LookupKey) departmentValue(d Department) string {
	if k == ByName {
		return d.Name
	}
	return d.ID
}

func (k LookupKey) aisleValue(a Aisle) string {
	if k == ByName {
		return a.Name
	}
	return a.ID
}

// minimum Jaro-Winkler similarity for a name to be offered as a suggestion
const suggestThreshold = 0.8

// FindDepartment returns the first department, in catalog order, whose key
// field equals value.
func (c *Catalog) FindDepartment(value string, key LookupKey) (Department, error) {
	for _, d := range c.Departments {
		if key.departmentValue(d) == value {
			return d, nil
		}
	}

	nf := &NotFoundError{Entity: "department", Key: key, Value: value}
	if key == ByName {
		names := make([]string, 0, len(c.Departments))
		for _, d := range c.Departments {
			names = append(names, d.Name)
		}
		nf.Suggestion = closest(value, names)
	}
	return Department{}, nf
}

// FindAisle returns the first aisle, in catalog order, whose key field
// equals value.
func (c *Catalog) FindAisle(value string, key LookupKey) (Aisle, error) {
	aisles := c.Aisles()
	for _, a := range aisles {
		if key.aisleValue(a) == value {
			return a, nil
		}
	}

	nf := &NotFoundError{Entity: "aisle", Key: key, Value: value}
	if key == ByName {
		names := make([]string, 0, len(aisles))
		for _, a := range aisles {
			names = append(names, a.Name)
		}
		nf.Suggestion = closest(value, names)
	}
	return Aisle{}, nf
}

func closest(value string, candidates []string) string {
	best, bestScore := "", 0.0
	target := strings.ToLower(value)
	for _, c := range candidates {
		score := matchr.JaroWinkler(target, strings.ToLower(c), false)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < suggestThreshold {
		return ""
	}
	return best
}
