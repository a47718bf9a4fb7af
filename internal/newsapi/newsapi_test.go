package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", WithHTTPClient(srv.Client()), WithLogger(zap.NewNop()))
}

func jsonBody(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestNewsRequestShape(t *testing.T) {
	var gotPath, gotSector, gotCount string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSector = r.URL.Query().Get("sector")
		gotCount = r.URL.Query().Get("count")
		jsonBody(http.StatusOK, `{"articles":[]}`)(w, r)
	})

	c.News(context.Background(), "sector", "crypto", 16)
	assert.Equal(t, "/api/news", gotPath)
	assert.Equal(t, "crypto", gotSector)
	assert.Equal(t, "16", gotCount)
}

func TestLegacyCategoryParam(t *testing.T) {
	var gotCategory string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotCategory = r.URL.Query().Get("category")
		jsonBody(http.StatusOK, `{"articles":[]}`)(w, r)
	})

	c.News(context.Background(), "category", "business", 10)
	assert.Equal(t, "business", gotCategory)
}

func TestSearchEncodesQuery(t *testing.T) {
	var gotPath, gotQ, rawQuery string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQ = r.URL.Query().Get("q")
		rawQuery = r.URL.RawQuery
		jsonBody(http.StatusOK, `{"articles":[]}`)(w, r)
	})

	c.Search(context.Background(), "rates & bonds?", 20)
	assert.Equal(t, "/api/news/search", gotPath)
	assert.Equal(t, "rates & bonds?", gotQ)
	assert.NotContains(t, rawQuery, "&bonds")
}

func TestOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		outcome Outcome
		message string
		count   int
	}{
		{"success", 200, `{"articles":[{"title":"A","url":"https://a","source":"S","published":"2024-01-01T00:00:00Z"}]}`, OutcomeSuccess, "", 1},
		{"empty list", 200, `{"articles":[]}`, OutcomeEmpty, "", 0},
		{"missing articles", 200, `{"category":"general"}`, OutcomeEmpty, "", 0},
		{"api error", 200, `{"error":"rate limited"}`, OutcomeError, "rate limited", 0},
		{"api error on 500", 500, `{"error":"upstream down"}`, OutcomeError, "upstream down", 0},
		{"error wins over articles", 200, `{"error":"partial","articles":[{"title":"A"}]}`, OutcomeError, "partial", 0},
		{"not json", 502, `<html>bad gateway</html>`, OutcomeError, MsgConnectFailed, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testServer(t, jsonBody(tt.status, tt.body))
			res := c.News(context.Background(), "sector", "all", 16)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.message, res.Message)
			assert.Len(t, res.Articles, tt.count)
		})
	}
}

func TestNullOptionalFields(t *testing.T) {
	c := testServer(t, jsonBody(200, `{"articles":[{"title":"T","description":null,"url":"https://x","source":"NYT","image":null,"published":null}]}`))
	res := c.News(context.Background(), "sector", "all", 16)
	require.Equal(t, OutcomeSuccess, res.Outcome)
	a := res.Articles[0]
	assert.Equal(t, "", a.Description)
	assert.Equal(t, "", a.Image)
	assert.Equal(t, "", a.Published)
}

func TestDuplicatesKept(t *testing.T) {
	body := `{"articles":[{"title":"Same","url":"https://x"},{"title":"Same","url":"https://x"}]}`
	c := testServer(t, jsonBody(200, body))
	res := c.News(context.Background(), "sector", "all", 16)
	assert.Len(t, res.Articles, 2)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(base, WithHTTPClient(&http.Client{Transport: &http.Transport{DisableKeepAlives: true}}))
	res := c.News(context.Background(), "sector", "all", 16)
	assert.Equal(t, OutcomeError, res.Outcome)
	assert.Equal(t, MsgConnectFailed, res.Message)

	res = c.Search(context.Background(), "anything", 20)
	assert.Equal(t, OutcomeError, res.Outcome)
	assert.Equal(t, MsgSearchFailed, res.Message)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithHTTPClient(srv.Client()), WithTimeout(50*time.Millisecond))
	res := c.News(context.Background(), "sector", "all", 16)
	assert.Equal(t, OutcomeError, res.Outcome)
	assert.Equal(t, MsgConnectFailed, res.Message)
}

func TestCanceledContext(t *testing.T) {
	c := testServer(t, jsonBody(200, `{"articles":[]}`))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := c.Search(ctx, "q", 20)
	assert.Equal(t, OutcomeError, res.Outcome)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "error", OutcomeError.String())
	assert.Equal(t, "empty", OutcomeEmpty.String())
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
