package builder

import (
	"fmt"
	"strings"
)

type statement int

const (
	stmtSelect statement = iota + 1
	stmtInsert
	stmtUpdate
	stmtDelete
)

// SQLBuilder helps construct Postgres queries dynamically. Conditions are
// written with "?" placeholders, which Build renumbers to $1..$n in the order
// the arguments appear in the final statement.
type SQLBuilder struct {
	stmt      statement
	table     string
	columns   []string
	values    []interface{}
	setCols   []string
	setArgs   []interface{}
	joins     []string
	where     []string
	whereArgs []interface{}
	orderBy   []string
	returning []string
	limit     int
	offset    int
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.stmt = stmtSelect
	b.columns = cols
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.stmt = stmtInsert
	b.table = table
	b.columns = cols
	return b
}

// Update specifies the table to update.
func (b *SQLBuilder) Update(table string) *SQLBuilder {
	b.stmt = stmtUpdate
	b.table = table
	return b
}

// Delete specifies the table to delete from.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.stmt = stmtDelete
	b.table = table
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Set adds a column assignment to an UPDATE.
func (b *SQLBuilder) Set(col string, val interface{}) *SQLBuilder {
	b.setCols = append(b.setCols, col)
	b.setArgs = append(b.setArgs, val)
	return b
}

// Values specifies the values for insertion.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.values = vals
	return b
}

// Where adds a condition; conditions are combined with AND.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.whereArgs = append(b.whereArgs, args...)
	return b
}

// WhereIn adds "col IN (...)". An empty list matches no rows.
func (b *SQLBuilder) WhereIn(col string, vals ...interface{}) *SQLBuilder {
	if len(vals) == 0 {
		return b.Where("1 = 0")
	}
	return b.Where(fmt.Sprintf("%s IN (%s)", col, marks(len(vals))), vals...)
}

// WhereNotIn adds "col NOT IN (...)". An empty list adds no condition.
func (b *SQLBuilder) WhereNotIn(col string, vals ...interface{}) *SQLBuilder {
	if len(vals) == 0 {
		return b
	}
	return b.Where(fmt.Sprintf("%s NOT IN (%s)", col, marks(len(vals))), vals...)
}

// Join adds a JOIN clause.
func (b *SQLBuilder) Join(joinType, table, on string) *SQLBuilder {
	b.joins = append(b.joins, fmt.Sprintf("%s JOIN %s ON %s", joinType, table, on))
	return b
}

// OrderBy adds an ORDER BY clause.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Limit adds a LIMIT clause.
func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

// Offset adds an OFFSET clause.
func (b *SQLBuilder) Offset(offset int) *SQLBuilder {
	b.offset = offset
	return b
}

// Returning adds a RETURNING clause to INSERT, UPDATE and DELETE.
func (b *SQLBuilder) Returning(cols ...string) *SQLBuilder {
	b.returning = cols
	return b
}

// Build constructs the final SQL string and arguments.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	switch b.stmt {
	case stmtSelect:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
		for _, join := range b.joins {
			sb.WriteString(" ")
			sb.WriteString(join)
		}
	case stmtInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES (")
		sb.WriteString(marks(len(b.values)))
		sb.WriteString(")")
		args = append(args, b.values...)
	case stmtUpdate:
		sb.WriteString("UPDATE ")
		sb.WriteString(b.table)
		sb.WriteString(" SET ")
		sets := make([]string, len(b.setCols))
		for i, col := range b.setCols {
			sets[i] = col + " = ?"
		}
		sb.WriteString(strings.Join(sets, ", "))
		args = append(args, b.setArgs...)
	case stmtDelete:
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
	}

	if len(b.where) > 0 && b.stmt != stmtInsert {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
		args = append(args, b.whereArgs...)
	}

	if b.stmt == stmtSelect {
		if len(b.orderBy) > 0 {
			sb.WriteString(" ORDER BY ")
			sb.WriteString(strings.Join(b.orderBy, ", "))
		}
		if b.limit > 0 {
			sb.WriteString(fmt.Sprintf(" LIMIT %d", b.limit))
		}
		if b.offset > 0 {
			sb.WriteString(fmt.Sprintf(" OFFSET %d", b.offset))
		}
	} else if len(b.returning) > 0 {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(b.returning, ", "))
	}

	return number(sb.String()), args
}

// BuildSafe is Build plus a check that the placeholder count matches the
// argument count.
func (b *SQLBuilder) BuildSafe() (string, []interface{}, error) {
	query, args := b.Build()
	if n := strings.Count(query, "$"); n != len(args) {
		return "", nil, fmt.Errorf("placeholder count (%d) does not match argument count (%d)", n, len(args))
	}
	return query, args, nil
}

func marks(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func number(query string) string {
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString(fmt.Sprintf("$%d", n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
