package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/institut/core/lead"
)

type leadRepository struct {
	db *leadTable
}

var _ lead.Repository = (*leadRepository)(nil)

func NewLeadRepository(db *DB) lead.Repository {
	return &leadRepository{db: db.lead}
}

func (repo *leadRepository) AppendLead(_ context.Context, l lead.Lead) (lead.Lead, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	l.CreatedAt = nowFunc().UTC()
	repo.db.rows = append(repo.db.rows, l)
	return l, nil
}

func (repo *leadRepository) QueryLeads(_ context.Context, filter lead.QueryFilter) ([]lead.Lead, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	leads := make([]lead.Lead, 0, len(repo.db.rows))
	for i := len(repo.db.rows) - 1; i >= 0; i-- { // newest appended first
		l := repo.db.rows[i]
		if filter.Type != "" && l.Type != filter.Type {
			continue
		}
		if !filter.Since.IsZero() && l.CreatedAt.Before(filter.Since) {
			continue
		}
		leads = append(leads, l)
	}
	sort.SliceStable(leads, func(i, j int) bool { return leads[i].CreatedAt.After(leads[j].CreatedAt) })

	if filter.Limit > 0 && len(leads) > filter.Limit {
		leads = leads[:filter.Limit]
	}
	return leads, nil
}
