package db

import (
	"strconv"
	"strings"

	"packable/internal/errors"
)

// Field is one column assignment of a partial update, named by its logical (JSON) name.
type Field struct {
	Name  string
	Value interface{}
}

// SetClause is the SET fragment of an UPDATE statement plus its bind values, in clause order.
type SetClause struct {
	Cols   string
	Values []interface{}
}

// Next returns the placeholder that follows the SET values, used for the key in the WHERE clause.
func (s SetClause) Next() string {
	return "$" + strconv.Itoa(len(s.Values)+1)
}

// Args returns the SET values followed by extra, ready to pass to the driver.
func (s SetClause) Args(extra ...interface{}) []interface{} {
	args := make([]interface{}, 0, len(s.Values)+len(extra))
	args = append(args, s.Values...)
	return append(args, extra...)
}

// PartialUpdate turns fields into `"col1" = $1, "col2" = $2` with one clause per field, numbered
// in field order. Names found in columns are replaced by the mapped column name.
//
//	PartialUpdate([]Field{{"first_name", "Aliya"}, {"age", 32}}, map[string]string{"first_name": "firstName"})
//	  => `"firstName" = $1, "age" = $2`, ["Aliya", 32]
func PartialUpdate(fields []Field, columns map[string]string) (SetClause, error) {
	if len(fields) == 0 {
		return SetClause{}, errors.ErrNoUpdateFields
	}

	cols := make([]string, len(fields))
	values := make([]interface{}, len(fields))
	for i, f := range fields {
		col := f.Name
		if mapped, ok := columns[f.Name]; ok && mapped != "" {
			col = mapped
		}
		cols[i] = `"` + col + `" = $` + strconv.Itoa(i+1)
		values[i] = f.Value
	}

	return SetClause{
		Cols:   strings.Join(cols, ", "),
		Values: values,
	}, nil
}
