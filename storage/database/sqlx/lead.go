package sqlxrepos

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/trezcool/institut/core"
	"github.com/trezcool/institut/core/lead"
)

const (
	insertLead = `INSERT INTO leads (id, lead_type, data) VALUES ($1, $2, $3) RETURNING created_at`
	selectLead = `SELECT id, lead_type, created_at, data FROM leads`
)

type leadRow struct {
	ID        string         `db:"id"`
	Type      string         `db:"lead_type"`
	CreatedAt time.Time      `db:"created_at"`
	Data      types.JSONText `db:"data"`
}

type leadRepository struct {
	db core.DBExecutor
}

var _ lead.Repository = (*leadRepository)(nil)

func NewLeadRepository(db core.DBExecutor) lead.Repository {
	return &leadRepository{db: db}
}

// AppendLead stores the lead document; created_at is set by the server.
func (repo *leadRepository) AppendLead(ctx context.Context, l lead.Lead) (lead.Lead, error) {
	doc := l.Document()
	delete(doc, "createdAt") // column
	data, err := json.Marshal(doc)
	if err != nil {
		return lead.Lead{}, errors.Wrap(err, "marshalling lead")
	}

	var createdAt time.Time
	if err = repo.db.GetContext(ctx, &createdAt, insertLead, l.ID, l.Type, types.JSONText(data)); err != nil {
		return lead.Lead{}, errors.Wrap(err, "inserting lead")
	}
	l.CreatedAt = createdAt.UTC()
	return l, nil
}

func (repo *leadRepository) QueryLeads(ctx context.Context, filter lead.QueryFilter) ([]lead.Lead, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Type != "" {
		conds = append(conds, "lead_type = "+arg(filter.Type))
	}
	if !filter.Since.IsZero() {
		conds = append(conds, "created_at >= "+arg(filter.Since.UTC()))
	}

	q := selectLead
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		q += " LIMIT " + arg(filter.Limit)
	}

	var rows []leadRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting leads")
	}

	leads := make([]lead.Lead, 0, len(rows))
	for _, row := range rows {
		var l lead.Lead
		if err := row.Data.Unmarshal(&l); err != nil {
			return nil, errors.Wrapf(err, "decoding lead %s", row.ID)
		}
		l.ID = row.ID
		l.Type = row.Type
		l.CreatedAt = row.CreatedAt.UTC()
		leads = append(leads, l)
	}
	return leads, nil
}
