package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dm "bondspread/data/models"
	sm "bondspread/service/models"
)

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) sm.ServiceResponse[T] {
	t.Helper()
	var res sm.ServiceResponse[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return res
}

func TestEndpoints_Ping(t *testing.T) {
	sc, _ := newTestContext(nil)

	rec := doRequest(t, NewRouter(sc), http.MethodGet, "/api/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
}

func TestEndpoints_Selection(t *testing.T) {
	sc, _ := newTestContext(threeBondSnapshot())
	body := `{"issuer":"` + testIssuer + `","startDate":"2024-03-04","endDate":"2024-03-15","minMaturity":28,"maxMaturity":30,"topN":2}`

	rec := doRequest(t, NewRouter(sc), http.MethodPost, "/api/selection", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeResponse[dm.SelectionResult](t, rec)
	assert.Empty(t, res.Error)
	require.NotNil(t, res.Data)
	assert.Equal(t, []string{"A", "B"}, res.Data.BondCodes())
	assert.Equal(t, 3, res.Data.DistinctBonds)
}

func TestEndpoints_SelectionValidation(t *testing.T) {
	sc, _ := newTestContext(nil)
	router := NewRouter(sc)

	cases := map[string]string{
		"malformed json":     `{"issuer":`,
		"missing issuer":     `{"startDate":"2024-03-04","endDate":"2024-03-15","minMaturity":28,"maxMaturity":30}`,
		"bad date":           `{"issuer":"x","startDate":"04/03/2024","endDate":"2024-03-15","minMaturity":28,"maxMaturity":30}`,
		"missing maturity":   `{"issuer":"x","startDate":"2024-03-04","endDate":"2024-03-15","minMaturity":28}`,
		"end before start":   `{"issuer":"x","startDate":"2024-03-15","endDate":"2024-03-04","minMaturity":28,"maxMaturity":30}`,
		"inverted maturity":  `{"issuer":"x","startDate":"2024-03-04","endDate":"2024-03-15","minMaturity":30,"maxMaturity":28}`,
		"top size too large": `{"issuer":"x","startDate":"2024-03-04","endDate":"2024-03-15","minMaturity":28,"maxMaturity":30,"topN":500}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/api/selection", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			res := decodeResponse[any](t, rec)
			assert.NotEmpty(t, res.Error)
			assert.Nil(t, res.Data)
		})
	}
}

func TestEndpoints_AnalysisLoadFailure(t *testing.T) {
	sc, _ := newTestContext(nil)
	sc.Trades = &fakeTrades{err: errors.New("disk on fire")}
	body := `{"issuer":"x","startDate":"2024-03-04","endDate":"2024-03-15","minMaturity":28,"maxMaturity":30}`

	rec := doRequest(t, NewRouter(sc), http.MethodPost, "/api/analysis", body)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeResponse[any](t, rec).Error, ErrDataLoad.Error())
}

func TestEndpoints_Analysis(t *testing.T) {
	sc, _ := newTestContext(threeBondSnapshot())
	body := `{"issuer":"` + testIssuer + `","startDate":"2024-03-04","endDate":"2024-03-15","minMaturity":28,"maxMaturity":30}`

	rec := doRequest(t, NewRouter(sc), http.MethodPost, "/api/analysis", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeResponse[sm.AnalysisReport](t, rec)
	require.NotNil(t, res.Data)
	require.NotNil(t, res.Data.Spreads)
	assert.Len(t, res.Data.Spreads.Pairs, 3)
}

func TestEndpoints_Periods(t *testing.T) {
	sc, _ := newTestContext(threeBondSnapshot())
	body := `{"issuer":"` + testIssuer + `","minMaturity":28,"maxMaturity":30,"seasons":["2024Q1"],` +
		`"periods":[{"name":"second week","startDate":"2024-03-11","endDate":"2024-03-15"}]}`

	rec := doRequest(t, NewRouter(sc), http.MethodPost, "/api/periods", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeResponse[[]sm.PeriodSummary](t, rec)
	require.NotNil(t, res.Data)
	require.Len(t, *res.Data, 2)
	assert.Equal(t, "2024Q1", (*res.Data)[0].Period.Name)
	assert.Equal(t, "second week", (*res.Data)[1].Period.Name)
}

func TestEndpoints_PeriodsValidation(t *testing.T) {
	sc, _ := newTestContext(nil)
	router := NewRouter(sc)

	cases := map[string]string{
		"no periods":   `{"issuer":"x","minMaturity":28,"maxMaturity":30}`,
		"bad season":   `{"issuer":"x","minMaturity":28,"maxMaturity":30,"seasons":["2024Q5"]}`,
		"bad period":   `{"issuer":"x","minMaturity":28,"maxMaturity":30,"periods":[{"name":"p","startDate":"x","endDate":"2024-01-01"}]}`,
		"missing band": `{"issuer":"x","seasons":["2024"]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/api/periods", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}
