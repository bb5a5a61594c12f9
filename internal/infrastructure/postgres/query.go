package postgres

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

const (
	defaultListLimit = 200
	maxListLimit     = 1000
)

// listQuery builds the WHERE/ORDER/LIMIT tail shared by list endpoints:
// an optional owner equality filter, an ILIKE pattern over searchCols,
// newest first.
type listQuery struct {
	where []string
	args  []any
}

func (q *listQuery) arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *listQuery) eq(col string, v string) {
	if v == "" {
		return
	}
	q.where = append(q.where, col+" = "+q.arg(v))
}

func (q *listQuery) search(term string, cols ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return
	}
	p := q.arg(likePattern(term))
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, c+" ILIKE "+p)
	}
	q.where = append(q.where, "("+strings.Join(parts, " OR ")+")")
}

func (q *listQuery) tail(orderCol string, limit int) string {
	var b strings.Builder
	if len(q.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.where, " AND "))
	}
	b.WriteString(" ORDER BY " + orderCol + " DESC")
	b.WriteString(" LIMIT " + q.arg(clampLimit(limit)))
	return b.String()
}

func filterQuery(f repository.ListFilter, ownerCol string, searchCols ...string) *listQuery {
	q := &listQuery{}
	q.eq(ownerCol, f.OwnerID)
	q.search(f.Search, searchCols...)
	return q
}

func clampLimit(n int) int {
	if n <= 0 {
		return defaultListLimit
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}

// likePattern wraps s for a substring ILIKE match, escaping wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// mapErr translates driver errors into repository sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return repository.ErrConflict
		case "22P02", "23503":
			// malformed uuid or dangling website reference
			return repository.ErrNotFound
		}
	}
	return err
}

func execOne(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
