// Package querybuilder assembles WHERE clauses and pagination as (statement, ordered args) pairs.
//
// Fragments use `?` placeholders; callers rebind them for their driver (sqlx.DB.Rebind). Only static column
// names and keywords are ever written into the statement text; every value travels in Args.
package querybuilder

import (
	"strings"
)

// Builder accumulates AND-joined predicates and their bind arguments.
type Builder struct {
	predicates []string
	args       []interface{}
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Where appends a raw predicate. The number of `?` in fragment must match len(args).
func (b *Builder) Where(fragment string, args ...interface{}) *Builder {
	if strings.Count(fragment, "?") != len(args) {
		panic("querybuilder: placeholder count does not match argument count in " + fragment)
	}
	b.predicates = append(b.predicates, fragment)
	b.args = append(b.args, args...)
	return b
}

// Equals adds `column = ?` unless value is blank.
func (b *Builder) Equals(column, value string) *Builder {
	value = strings.TrimSpace(value)
	if value == "" {
		return b
	}
	return b.Where(column+" = ?", value)
}

// Search adds one case-insensitive substring group across columns: (LOWER(a) LIKE ? OR LOWER(b) LIKE ?).
func (b *Builder) Search(term string, columns ...string) *Builder {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return b
	}
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	parts := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, column := range columns {
		parts[i] = "LOWER(" + column + ") LIKE ?"
		args[i] = pattern
	}
	return b.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// Empty reports whether no predicate was added.
func (b *Builder) Empty() bool {
	return len(b.predicates) == 0
}

// Predicates returns the AND-joined predicate list without the WHERE keyword ("1=1" when empty).
func (b *Builder) Predicates() string {
	if b.Empty() {
		return "1=1"
	}
	return strings.Join(b.predicates, " AND ")
}

// Clause returns " WHERE ..." or an empty string.
func (b *Builder) Clause() string {
	if b.Empty() {
		return ""
	}
	return " WHERE " + b.Predicates()
}

// Args returns a copy of the bind arguments in placeholder order.
func (b *Builder) Args() []interface{} {
	out := make([]interface{}, len(b.args))
	copy(out, b.args)
	return out
}

// Twice returns the arguments repeated, for statements that embed the same predicate set in a subquery and in
// the outer WHERE clause.
func (b *Builder) Twice() []interface{} {
	out := make([]interface{}, 0, len(b.args)*2)
	out = append(out, b.args...)
	return append(out, b.args...)
}

// Placeholders counts the `?` markers in the generated predicate text.
func (b *Builder) Placeholders() int {
	return strings.Count(b.Clause(), "?")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
