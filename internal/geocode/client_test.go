package geocode

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestClient_Search(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q":              q.Get("q"),
			"format":         q.Get("format"),
			"limit":          q.Get("limit"),
			"countrycodes":   q.Get("countrycodes"),
			"addressdetails": q.Get("addressdetails"),
		}
		assert.Equal(t, "flood-incident-map/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"lat":"6.0535","lon":"80.2210","display_name":"Galle Fort, Galle, Sri Lanka","address":{"city":"Galle"}},
			{"lat":"6.9271","lon":"79.8612","display_name":"Colombo, Sri Lanka","address":{"city":"Colombo"}}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "Galle", "Sri Lanka", "lk", 5*time.Second, testLogger())

	candidates, err := client.Search(context.Background(), "Galle Fort")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "Galle Fort, Galle, Sri Lanka", gotQuery["q"])
	assert.Equal(t, "json", gotQuery["format"])
	assert.Equal(t, "3", gotQuery["limit"])
	assert.Equal(t, "lk", gotQuery["countrycodes"])
	assert.Equal(t, "1", gotQuery["addressdetails"])

	assert.Equal(t, "6.0535", candidates[0].Lat)
	assert.Equal(t, "80.2210", candidates[0].Lon)
	assert.Equal(t, "Galle Fort, Galle, Sri Lanka", candidates[0].DisplayName)
	assert.Equal(t, "Galle", candidates[0].Address.City)
}

func TestClient_Search_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "Galle", "Sri Lanka", "lk", 5*time.Second, testLogger())

	candidates, err := client.Search(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestClient_Search_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "Galle", "Sri Lanka", "lk", 5*time.Second, testLogger())

	_, err := client.Search(context.Background(), "Galle Fort")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
	assert.Contains(t, statusErr.Body, "rate limited")
}

func TestClient_Search_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "Galle", "Sri Lanka", "lk", 5*time.Second, testLogger())

	_, err := client.Search(context.Background(), "Galle Fort")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode geocode response")
}

func TestClient_Search_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "Galle", "Sri Lanka", "lk", time.Second, testLogger())

	_, err := client.Search(context.Background(), "Galle Fort")
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}
