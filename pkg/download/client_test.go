package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBytes(t *testing.T) {
	var gotUserAgent, gotLanguage, gotReferer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotLanguage = r.Header.Get("Accept-Language")
		gotReferer = r.Header.Get("Referer")
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	client := NewClient(WithReferer("https://www.firstview.com"))
	body, err := client.GetBytes(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, []byte("hello"), body)
	assert.Equal(t, UserAgent, gotUserAgent)
	assert.Equal(t, defaultAcceptLanguage, gotLanguage)
	assert.Equal(t, "https://www.firstview.com", gotReferer)
}

func TestGetBytesNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient()
	_, err := client.GetBytes(context.Background(), server.URL)
	assert.ErrorContains(t, err, "404")
}

func TestWithUserAgent(t *testing.T) {
	client := NewClient(WithUserAgent("runwaydl-test"))
	req, err := client.NewGetRequest(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "runwaydl-test", req.Header.Get("User-Agent"))
}
