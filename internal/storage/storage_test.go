package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcart/internal/trip"
)

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.objects[r.URL.Path] = body
	b.types[r.URL.Path] = r.Header.Get("Content-Type")
	b.mu.Unlock()

	w.Header().Set("ETag", `"etag"`)
	w.WriteHeader(http.StatusOK)
}

func TestTripArchiver_PutsJSONUnderUserPrefix(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	bucket := &fakeBucket{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(bucket)
	defer srv.Close()

	r2, err := NewR2Client(context.Background(), R2Config{
		Endpoint:  srv.URL,
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "archive",
	})
	require.NoError(t, err)

	res := &trip.Result{ID: uuid.New(), UserID: "user-1", Status: trip.StatusOK}
	require.NoError(t, NewTripArchiver(r2).Archive(context.Background(), res))

	path := "/archive/trips/user-1/" + res.ID.String() + ".json"
	require.Contains(t, bucket.objects, path)
	assert.Equal(t, "application/json", bucket.types[path])

	var got trip.Result
	require.NoError(t, json.Unmarshal(bucket.objects[path], &got))
	assert.Equal(t, res.ID, got.ID)
	assert.Equal(t, trip.StatusOK, got.Status)
}

func TestArchiveKey_Anonymous(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "trips/anonymous/"+id.String()+".json", archiveKey(&trip.Result{ID: id}))
}
