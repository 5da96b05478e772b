package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quoteservice/internal/httpx"
)

func TestClient_Do_FillsHeaders(t *testing.T) {
	t.Parallel()

	// Arrange: a server echoing what it received.
	var gotUA, gotAccept, gotTrace string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotTrace = r.Header.Get("X-Trace")
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	c := httpx.New(time.Second)
	c.Headers = map[string]string{"Accept": "application/json", "X-Trace": "default"}

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)
	req.Header.Set("X-Trace", "explicit")

	// Act
	res, err := c.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	// Assert: defaults fill gaps, explicit headers win.
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	require.Equal(t, httpx.DefaultUserAgent, gotUA)
	require.Equal(t, "application/json", gotAccept)
	require.Equal(t, "explicit", gotTrace)
}
