// Package query builds parameterized SQL WHERE clauses for the reporting
// views: fixed predicates, inclusive date ranges and a substring-search group
// that ORs one user-supplied text across several columns or computed
// expressions. Filter groups are ANDed together; count and data queries share
// the same clause list so totals are always computed over the filtered,
// pre-pagination set.
package query

import (
	"fmt"
	"strings"
	"time"
)

// Builder accumulates WHERE clauses with positional arguments. The zero
// value is not usable; create one with New.
type Builder struct {
	clauses       []string
	args          []any
	idx           int
	caseSensitive bool
	orderBy       string
}

func New(caseSensitive bool) *Builder {
	return &Builder{idx: 1, caseSensitive: caseSensitive}
}

// Cond appends a clause with no bound arguments, e.g. "NOT p.deleted".
func (b *Builder) Cond(expr string) {
	b.clauses = append(b.clauses, expr)
}

// Arg appends a single-argument clause. expr must contain one %d verb for
// the positional placeholder, e.g. "a.room_number >= $%d".
func (b *Builder) Arg(expr string, v any) {
	b.clauses = append(b.clauses, fmt.Sprintf(expr, b.idx))
	b.args = append(b.args, v)
	b.idx++
}

// DateRange appends an inclusive [from, to] bound on col.
func (b *Builder) DateRange(col string, from, to time.Time) {
	b.Arg(col+" >= $%d", from)
	b.Arg(col+" <= $%d", to)
}

// Contains appends a substring match on a single expression, honoring the
// configured case mode. Used for fixed keyword predicates.
func (b *Builder) Contains(expr, text string) {
	b.Arg(expr+" "+b.likeOp()+" $%d", "%"+EscapeLike(text)+"%")
}

// Search appends an OR group matching text as a substring of any of the
// given expressions. Empty text appends nothing: an absent search filter
// passes every row. The pattern is bound once and referenced by each branch.
func (b *Builder) Search(text string, exprs ...string) {
	if text == "" || len(exprs) == 0 {
		return
	}
	op := b.likeOp()
	branches := make([]string, len(exprs))
	for i, expr := range exprs {
		branches[i] = fmt.Sprintf("%s %s $%d", expr, op, b.idx)
	}
	b.clauses = append(b.clauses, "("+strings.Join(branches, " OR ")+")")
	b.args = append(b.args, "%"+EscapeLike(text)+"%")
	b.idx++
}

func (b *Builder) likeOp() string {
	if b.caseSensitive {
		return "LIKE"
	}
	return "ILIKE"
}

func (b *Builder) OrderBy(orderBy string) {
	b.orderBy = orderBy
}

func (b *Builder) where() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// CountSQL returns the total-count query over the filtered set. from is the
// FROM clause body including any joins, e.g. "discharges e JOIN doctors m
// ON m.id = e.doctor_id".
func (b *Builder) CountSQL(from string) string {
	return "SELECT COUNT(*) FROM " + from + b.where()
}

// CountArgs returns the arguments for CountSQL.
func (b *Builder) CountArgs() []any {
	return b.args[:len(b.args):len(b.args)]
}

// DataSQL returns the row query with ordering and a LIMIT/OFFSET window.
func (b *Builder) DataSQL(cols, from string, limit, offset int) (string, []any) {
	sql := "SELECT " + cols + " FROM " + from + b.where()
	if b.orderBy != "" {
		sql += " ORDER BY " + b.orderBy
	}
	sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", b.idx, b.idx+1)
	args := make([]any, len(b.args), len(b.args)+2)
	copy(args, b.args)
	return sql, append(args, limit, offset)
}

// AllSQL returns the row query with ordering and no pagination window, for
// the views that return the full filtered list.
func (b *Builder) AllSQL(cols, from string) (string, []any) {
	sql := "SELECT " + cols + " FROM " + from + b.where()
	if b.orderBy != "" {
		sql += " ORDER BY " + b.orderBy
	}
	return sql, b.CountArgs()
}

// DisplayName returns the SQL expression computing a person's display name
// for the table alias: given name and paternal surname joined by single
// spaces, maternal surname appended only when present.
func DisplayName(alias string) string {
	return fmt.Sprintf(
		"%s.given_name || ' ' || %s.paternal_surname || COALESCE(' ' || %s.maternal_surname, '')",
		alias, alias, alias)
}

// EscapeLike escapes the LIKE metacharacters in user-supplied search text so
// it matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
