package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "docseal/pkg/domain-errors"
)

func TestHTTPClientLookupByHash(t *testing.T) {
	record := SealedRecord{
		ArtifactID:  "art-1",
		LoanID:      "L1",
		ContentHash: "1111111111111111111111111111111111111111111111111111111111111111",
		LedgerRef:   "tx-abc",
	}

	t.Run("maps 200 to a record", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/records/hash/"+record.ContentHash.String(), r.URL.Path)
			_ = json.NewEncoder(w).Encode(record)
		}))
		defer srv.Close()

		client := NewHTTPClient(srv.URL, time.Second)
		got, err := client.LookupByHash(context.Background(), record.ContentHash)
		require.NoError(t, err)
		assert.Equal(t, record.ArtifactID, got.ArtifactID)
		assert.Equal(t, record.ContentHash, got.ContentHash)
	})

	t.Run("maps 404 to ErrNotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewHTTPClient(srv.URL, time.Second)
		_, err := client.LookupByHash(context.Background(), record.ContentHash)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("maps 5xx to transport error, not ErrNotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewHTTPClient(srv.URL, time.Second)
		_, err := client.LookupByHash(context.Background(), record.ContentHash)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTransport))
	})

	t.Run("maps unreachable ledger to transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // immediately unreachable

		client := NewHTTPClient(srv.URL, time.Second)
		_, err := client.LookupByHash(context.Background(), record.ContentHash)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("maps cancelled context to timeout code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		client := NewHTTPClient(srv.URL, time.Second)
		_, err := client.LookupByHash(ctx, record.ContentHash)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

func TestHTTPClientBorrowerQuery(t *testing.T) {
	t.Run("posts identity and decodes matches", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/records/borrower-query", r.URL.Path)

			var identity BorrowerIdentity
			require.NoError(t, json.NewDecoder(r.Body).Decode(&identity))
			assert.Equal(t, "ada@example.com", identity.Email)

			_ = json.NewEncoder(w).Encode([]SealedRecord{{ArtifactID: "art-1"}})
		}))
		defer srv.Close()

		client := NewHTTPClient(srv.URL, time.Second)
		records, err := client.LookupByBorrowerIdentity(context.Background(), BorrowerIdentity{Email: "ada@example.com"})
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("empty identity short-circuits without a request", func(t *testing.T) {
		client := NewHTTPClient("http://ledger.invalid", time.Second)
		records, err := client.LookupByBorrowerIdentity(context.Background(), BorrowerIdentity{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
