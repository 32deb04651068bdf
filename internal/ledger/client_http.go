package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"docseal/pkg/domain"
	dErrors "docseal/pkg/domain-errors"
)

// HTTPClient queries the remote ledger service. The wire format is owned by
// the ledger service; this adapter only maps its responses onto the Store
// contract. A 404 is ErrNotFound; everything else that goes wrong is a
// transport error, never silently reinterpreted as "not found".
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient constructs a ledger client against baseURL. The timeout
// bounds every lookup; a deadline hit surfaces as CodeTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) LookupByHash(ctx context.Context, hash domain.Digest) (*SealedRecord, error) {
	var record SealedRecord
	err := c.getJSON(ctx, "/records/hash/"+url.PathEscape(hash.String()), &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *HTTPClient) LookupByIdentifier(ctx context.Context, identifier string) (*SealedRecord, error) {
	var record SealedRecord
	err := c.getJSON(ctx, "/records/id/"+url.PathEscape(identifier), &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *HTTPClient) LookupByBorrowerIdentity(ctx context.Context, identity BorrowerIdentity) ([]SealedRecord, error) {
	if identity.IsZero() {
		return nil, nil
	}
	payload, err := json.Marshal(identity)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "encode borrower identity query", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/records/borrower-query", bytes.NewReader(payload))
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "build borrower identity request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportErr("borrower identity query", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, dErrors.New(dErrors.CodeTransport,
			fmt.Sprintf("borrower identity query: ledger returned %d", resp.StatusCode))
	}

	var records []SealedRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeTransport, "decode borrower identity response", err)
	}
	return records, nil
}

func (c *HTTPClient) FetchLedgerReference(ctx context.Context, artifactID domain.ArtifactID) (string, error) {
	var body struct {
		LedgerRef string `json:"ledger_ref"`
	}
	err := c.getJSON(ctx, "/records/"+url.PathEscape(artifactID.String())+"/reference", &body)
	if err != nil {
		return "", err
	}
	return body.LedgerRef, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "build ledger request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return transportErr("ledger lookup", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return dErrors.Wrap(dErrors.CodeTransport, "decode ledger response", err)
		}
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return dErrors.New(dErrors.CodeTransport,
			fmt.Sprintf("ledger lookup: ledger returned %d", resp.StatusCode))
	}
}

func transportErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dErrors.Wrap(dErrors.CodeTimeout, op+" deadline exceeded", err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return dErrors.Wrap(dErrors.CodeTimeout, op+" timed out", err)
	}
	return dErrors.Wrap(dErrors.CodeTransport, op+" failed", err)
}
