package stormsql

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type (
	// A Table binds a SQL table name to a storm model.
	Table struct {
		// New returns a pointer to an empty record.
		New func() any
		// NewSlice returns a pointer to an empty slice of records.
		NewSlice func() any
		// Columns maps the SQL column names to the model's field names.
		Columns map[string]string
	}

	// A Schema lists the tables that can be queried.
	Schema map[string]Table
)

// Table returns the table registered with the given name.
func (s Schema) Table(name string) (Table, error) {
	t, ok := s[strings.ToLower(name)]
	if !ok {
		return Table{}, errors.Errorf("unknown tablename: %s", name)
	}
	return t, nil
}

// Tablenames returns the sorted list of the registered tables.
func (s Schema) Tablenames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Field returns the model's field name of the given column.
// The field name itself is also accepted.
func (t Table) Field(column string) (string, error) {
	if field, ok := t.Columns[strings.ToLower(column)]; ok {
		return field, nil
	}

	for _, field := range t.Columns {
		if field == column {
			return field, nil
		}
	}

	return "", errors.Errorf("unknown column: %s", column)
}
