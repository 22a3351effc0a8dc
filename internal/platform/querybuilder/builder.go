// Package querybuilder assembles parameterized Postgres statements.
// It covers only the shapes the repositories need: flat SELECTs,
// multi-row INSERTs with an upsert suffix, and column UPDATEs.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates statement text alongside its bind arguments,
// numbering placeholders as they are taken.
type sqlWriter struct {
	sb   strings.Builder
	args []any
	next int
}

func newSQLWriter() *sqlWriter {
	return &sqlWriter{next: 1}
}

func (w *sqlWriter) raw(s string) {
	w.sb.WriteString(s)
}

// bind appends the value as an argument and writes its placeholder.
func (w *sqlWriter) bind(v any) {
	w.sb.WriteString("$" + strconv.Itoa(w.next))
	w.args = append(w.args, v)
	w.next++
}

// bindExpr writes the expression with each ? replaced by the next
// numbered placeholder. Extra ? marks beyond the argument list pass
// through untouched.
func (w *sqlWriter) bindExpr(expr string, exprArgs []any) {
	if len(exprArgs) == 0 {
		w.sb.WriteString(expr)
		return
	}

	used := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && used < len(exprArgs) {
			w.bind(exprArgs[used])
			used++
			continue
		}
		w.sb.WriteByte(expr[i])
	}
}

// Condition writes one WHERE fragment into the statement.
type Condition func(w *sqlWriter)

// Eq matches a column against a bound value.
func Eq(column string, value any) Condition {
	return func(w *sqlWriter) {
		w.raw(column)
		w.raw(" = ")
		w.bind(value)
	}
}

// In matches a column against a bound list. An empty list matches
// nothing rather than producing invalid SQL.
func In(column string, values []any) Condition {
	return func(w *sqlWriter) {
		if len(values) == 0 {
			w.raw("1=0")
			return
		}
		w.raw(column)
		w.raw(" IN (")
		for i, v := range values {
			if i > 0 {
				w.raw(", ")
			}
			w.bind(v)
		}
		w.raw(")")
	}
}

// Expr is an escape hatch for fragments the helpers cannot express,
// such as OR groups. Arguments bind to ? marks in order.
func Expr(expr string, args ...any) Condition {
	return func(w *sqlWriter) {
		w.bindExpr(expr, args)
	}
}

func writeWhere(w *sqlWriter, conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.raw(" WHERE ")
		} else {
			w.raw(" AND ")
		}
		c(w)
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select needs columns")
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("select needs a table")
	}

	w := newSQLWriter()
	w.raw("SELECT ")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(" FROM ")
	w.raw(b.table)
	writeWhere(w, b.where)
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ")
		w.raw(strings.Join(b.orderBy, ", "))
	}

	return w.sb.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends trailing SQL, typically an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert needs a table")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert needs columns")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert needs values")
	}

	w := newSQLWriter()
	w.raw("INSERT INTO ")
	w.raw(b.table)
	w.raw(" (")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(") VALUES ")

	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values for %d columns", i, len(row), len(b.columns))
		}
		if i > 0 {
			w.raw(", ")
		}
		w.raw("(")
		for j, v := range row {
			if j > 0 {
				w.raw(", ")
			}
			w.bind(v)
		}
		w.raw(")")
	}

	if b.suffix != "" {
		w.raw(" ")
		w.raw(b.suffix)
	}

	return w.sb.String(), w.args, nil
}

type setClause struct {
	column   string
	value    any
	expr     string
	exprArgs []any
	isExpr   bool
}

type UpdateBuilder struct {
	table string
	sets  []setClause
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

// SetExpr assigns a raw expression, with arguments bound to ? marks.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, expr: expr, exprArgs: args, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("update needs a table")
	case len(b.sets) == 0:
		return "", nil, fmt.Errorf("update needs set clauses")
	}

	w := newSQLWriter()
	w.raw("UPDATE ")
	w.raw(b.table)
	w.raw(" SET ")

	for i, s := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(s.column)
		w.raw(" = ")
		if s.isExpr {
			w.bindExpr(s.expr, s.exprArgs)
		} else {
			w.bind(s.value)
		}
	}

	writeWhere(w, b.where)

	return w.sb.String(), w.args, nil
}
