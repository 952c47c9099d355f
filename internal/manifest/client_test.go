package manifest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagnology/embed-go/internal/infrastructure/logging"
)

func testClient(endpoint string) *Client {
	return NewClient(ClientConfig{Endpoint: endpoint}, logging.NewNop())
}

func TestClientFetchSuccess(t *testing.T) {
	var gotBody map[string]string
	var gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, sonic.Unmarshal(data, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"message": "OK",
			"pageInfo": [
				{"folderId": "f1", "embedLocation": "BELOW_BUY_BUTTON", "timestamp": 100},
				{"folderId": "f2", "layout": "FloatingMedia", "floatingMediaPosition": "BottomRight"}
			]
		}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	manifest, err := client.Fetch(context.Background(), "12345", "91APP", "https://shop.example.com/SalePage/12345")

	require.NoError(t, err)
	assert.Equal(t, "OK", manifest.Message)
	require.Len(t, manifest.PageInfo, 2)
	assert.Equal(t, "f1", manifest.PageInfo[0].FolderID)
	require.NotNil(t, manifest.PageInfo[0].Timestamp)
	assert.Equal(t, int64(100), *manifest.PageInfo[0].Timestamp)
	assert.True(t, manifest.PageInfo[1].IsFloatingMedia())

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]string{
		"productId": "12345",
		"platform":  "91APP",
		"page":      "https://shop.example.com/SalePage/12345",
	}, gotBody)
}

func TestClientFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Fetch(context.Background(), "12345", "91APP", "https://shop.example.com/SalePage/12345")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusNotFound, netErr.Status)
}

func TestClientFetchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Fetch(context.Background(), "12345", "91APP", "https://shop.example.com/SalePage/12345")

	var decErr *DecodingError
	assert.ErrorAs(t, err, &decErr)
}

func TestClientFetchMissingFolderID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "OK", "pageInfo": [{"embedLocation": "BELOW_BUY_BUTTON"}]}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Fetch(context.Background(), "12345", "91APP", "https://shop.example.com/SalePage/12345")

	var decErr *DecodingError
	assert.ErrorAs(t, err, &decErr)
}

func TestClientFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	client := testClient(server.URL)
	_, err := client.Fetch(context.Background(), "12345", "91APP", "https://shop.example.com/SalePage/12345")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, 0, netErr.Status)
}

func TestClientFetchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := testClient("http://127.0.0.1:1")
	_, err := client.Fetch(ctx, "12345", "91APP", "https://shop.example.com/SalePage/12345")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.True(t, errors.Is(netErr.Err, context.Canceled))
}
