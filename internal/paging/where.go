package paging

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Where collects AND-combined SQL predicates with positional ($n) arguments.
// Predicates for absent filters are skipped. The zero value is ready to use.
type Where struct {
	conds []string
	args  []any
}

// Contains adds a case-sensitive substring predicate on column.
func (w *Where) Contains(column, value string) {
	if value == "" {
		return
	}
	w.add("strpos("+column+", %s) > 0", value)
}

// Equal adds column = value.
func (w *Where) Equal(column string, value any) {
	w.add(column+" = %s", value)
}

// EqualInt64 adds column = *value when value is set.
func (w *Where) EqualInt64(column string, value *int64) {
	if value == nil {
		return
	}
	w.Equal(column, *value)
}

// EqualBool adds column = *value when value is set.
func (w *Where) EqualBool(column string, value *bool) {
	if value == nil {
		return
	}
	w.Equal(column, *value)
}

// AtLeast adds column >= *value when value is set.
func (w *Where) AtLeast(column string, value *time.Time) {
	if value == nil {
		return
	}
	w.add(column+" >= %s", *value)
}

// AtMost adds column <= *value when value is set.
func (w *Where) AtMost(column string, value *time.Time) {
	if value == nil {
		return
	}
	w.add(column+" <= %s", *value)
}

// Raw adds a predicate whose single %s verb is replaced by the placeholder
// bound to value.
func (w *Where) Raw(format string, value any) {
	w.add(format, value)
}

func (w *Where) add(format string, value any) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf(format, "$"+strconv.Itoa(len(w.args))))
}

// SQL renders " WHERE ..." or the empty string.
func (w *Where) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// Args returns the bound arguments in placeholder order.
func (w *Where) Args() []any {
	out := make([]any, len(w.args))
	copy(out, w.args)
	return out
}

// Page renders " LIMIT $n OFFSET $m" for p and returns the full argument list
// for a query built from SQL() followed by that clause.
func (w *Where) Page(p Params) (string, []any) {
	n := len(w.args)
	clause := fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	return clause, append(w.Args(), p.Limit(), p.Offset())
}
