package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/acadbase/academia/core"
	"github.com/acadbase/academia/core/academics"
	"github.com/acadbase/academia/core/account"
	inmemdb "github.com/acadbase/academia/storage/database/inmem"
)

type testApp struct {
	server Server
	db     *inmemdb.DB
	tokens *account.TokenIssuer

	accountRepo   account.Repository
	academicsRepo academics.Repository
}

func setupServer(t *testing.T) *testApp {
	t.Helper()

	conf := &core.Config{
		TestMode:  true,
		AppName:   "Academia",
		SecretKey: []byte("test-secret"),
		Token:     core.TokenConfig{TTL: 10 * time.Minute},
	}

	db := inmemdb.NewDB()
	accountRepo := inmemdb.NewAccountRepository(db)
	academicsRepo := inmemdb.NewAcademicsRepository(db)
	tokens := account.NewTokenIssuer(conf)
	validate, translator := core.NewValidator()

	srv := NewServer(&Options{
		Conf:           conf,
		Logger:         nopLogger{},
		DisableReqLogs: true,
		AccountSvc:     account.NewService(accountRepo, tokens),
		AcademicsSvc:   academics.NewService(academicsRepo),
		Tokens:         tokens,
		Validate:       validate,
		Translator:     translator,
	})

	return &testApp{
		server:        srv,
		db:            db,
		tokens:        tokens,
		accountRepo:   accountRepo,
		academicsRepo: academicsRepo,
	}
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                         {}
func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Error(string, error, ...interface{}) {}

func (app *testApp) token(t *testing.T, personID int) string {
	t.Helper()
	token, err := app.tokens.Issue(personID)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	return token
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func (app *testApp) do(t *testing.T, tt httpTest) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader(tt.body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if tt.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tt.token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, "body: %s", rec.Body.Bytes())
	if tt.wantData == nil {
		return
	}
	assert.JSONEq(t, string(tt.wantData), rec.Body.String())
}

// envelope renders the expected response body.
func envelope(status int, errMsg string, results interface{}) []byte {
	env := Envelope{Status: status, Results: results}
	if errMsg != "" {
		env.Errors = &errMsg
	}
	data, _ := json.Marshal(env)
	return data
}
