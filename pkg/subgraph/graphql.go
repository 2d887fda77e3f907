package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Request is a GraphQL query with its variables.
type Request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Location points at the offending part of a query.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// GraphQLError is one entry of a response's top level errors list.
type GraphQLError struct {
	Message   string        `json:"message"`
	Locations []Location    `json:"locations,omitempty"`
	Path      []interface{} `json:"path,omitempty"`
}

// Response is the GraphQL response envelope.
// Errors keeps the raw member so that a present but null or empty list still counts.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// HasErrors reports whether the response carries an errors member at all.
func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}

// GraphQLErrors decodes the errors member. A member that is not a list of error objects decodes to nil.
func (r *Response) GraphQLErrors() []GraphQLError {
	var errs []GraphQLError
	if err := json.Unmarshal(r.Errors, &errs); err != nil {
		return nil
	}
	return errs
}

// Client posts GraphQL queries to a subgraph endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Query posts req and decodes the data member of the response into result.
// A non 2xx status returns *StatusError, an errors list returns *QueryError, and a
// body that does not carry data wraps ErrMalformedResponse.
func (c *Client) Query(ctx context.Context, req *Request, result interface{}) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("could not encode query: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("could not post query: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	var envelope Response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if envelope.HasErrors() {
		return &QueryError{StatusCode: resp.StatusCode, Errors: envelope.GraphQLErrors(), Body: body}
	}
	if len(envelope.Data) == 0 || bytes.Equal(envelope.Data, []byte("null")) {
		return fmt.Errorf("%w: no data in response", ErrMalformedResponse)
	}
	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
