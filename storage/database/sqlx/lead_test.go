package sqlxrepos

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/institut/core/lead"
)

// jsonArg matches a JSON document argument regardless of key order.
type jsonArg map[string]interface{}

func (a jsonArg) Match(v driver.Value) bool {
	var raw []byte
	switch val := v.(type) {
	case []byte:
		raw = val
	case string:
		raw = []byte(val)
	default:
		return false
	}
	var got map[string]interface{}
	if err := json.Unmarshal(raw, &got); err != nil {
		return false
	}
	want, _ := json.Marshal(map[string]interface{}(a))
	var wantMap map[string]interface{}
	_ = json.Unmarshal(want, &wantMap)
	return assert.ObjectsAreEqual(wantMap, got)
}

func TestLeadRepository_AppendLead(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	total := 900.0
	l := lead.Lead{
		ID:             "8e0b6a4e-5d0c-4b8e-9a59-2f3f7c7f1c11",
		Type:           lead.TypeOnlineReservation,
		FullName:       "Awa Diop",
		Email:          "awa@example.com",
		FormationID:    "f1",
		StartDate:      &start,
		NumberOfPeople: 3,
		Country:        "Sénégal",
		TotalPrice:     &total,
	}
	createdAt := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertLead).
		WithArgs(l.ID, l.Type, jsonArg{
			"leadType":       lead.TypeOnlineReservation,
			"fullName":       "Awa Diop",
			"email":          "awa@example.com",
			"formationId":    "f1",
			"startDate":      "2024-04-01T00:00:00Z",
			"numberOfPeople": 3,
			"country":        "Sénégal",
			"totalPrice":     900,
		}).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	got, err := repo.AppendLead(context.Background(), l)
	require.NoError(t, err)
	assert.Equal(t, createdAt, got.CreatedAt)
	assert.Equal(t, l.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_QueryLeads(t *testing.T) {
	cols := []string{"id", "lead_type", "created_at", "data"}
	t1 := time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    lead.QueryFilter
		wantQuery string
		wantArgs  []driver.Value
	}{
		{
			name:      "all",
			wantQuery: selectLead + " ORDER BY created_at DESC",
		},
		{
			name:      "type",
			filter:    lead.QueryFilter{Type: lead.TypeCourseInquiry},
			wantQuery: selectLead + " WHERE lead_type = $1 ORDER BY created_at DESC",
			wantArgs:  []driver.Value{lead.TypeCourseInquiry},
		},
		{
			name:      "type, since and limit",
			filter:    lead.QueryFilter{Type: lead.TypeCourseInquiry, Since: t2, Limit: 10},
			wantQuery: selectLead + " WHERE lead_type = $1 AND created_at >= $2 ORDER BY created_at DESC LIMIT $3",
			wantArgs:  []driver.Value{lead.TypeCourseInquiry, t2, 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery(tt.wantQuery).
				WithArgs(tt.wantArgs...).
				WillReturnRows(sqlmock.NewRows(cols).
					AddRow("id-2", lead.TypeCourseInquiry, t1, []byte(`{"leadType":"Course Inquiry","fullName":"B","formationId":"f2"}`)).
					AddRow("id-1", lead.TypeCourseInquiry, t2, []byte(`{"leadType":"Course Inquiry","fullName":"A","phone":"+221 77"}`)),
				)

			leads, err := NewLeadRepository(db).QueryLeads(context.Background(), tt.filter)
			require.NoError(t, err)
			require.Len(t, leads, 2)
			assert.Equal(t, lead.Lead{ID: "id-2", Type: lead.TypeCourseInquiry, CreatedAt: t1, FullName: "B", FormationID: "f2"}, leads[0])
			assert.Equal(t, lead.Lead{ID: "id-1", Type: lead.TypeCourseInquiry, CreatedAt: t2, FullName: "A", Phone: "+221 77"}, leads[1])
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
