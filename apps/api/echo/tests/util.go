package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/institut/apps/api/echo"
	"github.com/trezcool/institut/core"
	"github.com/trezcool/institut/core/catalog"
	"github.com/trezcool/institut/core/lead"
	"github.com/trezcool/institut/services/email"
	"github.com/trezcool/institut/storage/database/inmem"
	"github.com/trezcool/institut/tests"
)

var (
	today = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	conf = &core.Config{
		AppName:        "Institut",
		TestMode:       true,
		LeadRecipients: []mail.Address{{Name: "Contact", Address: "contact@institut.test"}},
	}

	errNotFound = httpErr{Error: "formation introuvable"}
)

type failingLeadRepo struct{ lead.Repository }

func (failingLeadRepo) AppendLead(context.Context, lead.Lead) (lead.Lead, error) {
	return lead.Lead{}, errors.New("leads collection unavailable")
}

type testApp struct {
	Server
	leadRepo lead.Repository
}

func setup(t *testing.T) testApp {
	t.Helper()
	db := inmemdb.Open()
	return setupWith(t, inmemdb.NewCatalogRepository(db), inmemdb.NewLeadRepository(db))
}

func setupWith(t *testing.T, catRepo catalog.Repository, leadRepo lead.Repository) testApp {
	t.Helper()
	testutil.SeedCatalog(t, catRepo, testutil.SampleCatalog())
	emailsvc.ResetSentMessages()

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf, testutil.NopLogger{})
	validate, translator := testutil.NewValidator()

	// set up server
	srv := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         testutil.NopLogger{},
		CatalogSvc:     catalog.NewService(catRepo),
		LeadSvc:        lead.NewService(leadRepo, mailSvc, conf, testutil.NopLogger{}),
		Validate:       validate,
		Translator:     translator,
		Now:            func() time.Time { return today },
		DisableReqLogs: true,
	})
	return testApp{Server: srv, leadRepo: leadRepo}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

func (app testApp) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	app.ServeHTTP(rec, req)
	return rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func unmarshall(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("unmarshall(%s): %v", rec.Body.String(), err)
	}
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	assert.Equal(t, tt.wantCode, rec.Code)
	if tt.wantData != nil {
		require.JSONEq(t, string(tt.wantData), rec.Body.String())
	}
}
