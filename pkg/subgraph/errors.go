package subgraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse is returned when a response cannot be trusted as a page of snapshots.
var ErrMalformedResponse = errors.New("malformed subgraph response")

// StatusError is a response with a non success HTTP status.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("query failed with status code %d", e.StatusCode)
}

// QueryError is a response carrying a top level errors list.
type QueryError struct {
	StatusCode int
	Errors     []GraphQLError
	Body       []byte
}

func (e *QueryError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, gqlErr := range e.Errors {
		msgs = append(msgs, gqlErr.Message)
	}
	return fmt.Sprintf("query failed with %d errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// isTruncation reports whether err ends a fetch session early without failing it.
func isTruncation(err error) bool {
	var (
		statusErr *StatusError
		queryErr  *QueryError
	)
	return errors.As(err, &statusErr) || errors.As(err, &queryErr)
}

// responseDetails returns the status code and body carried by a truncation error.
func responseDetails(err error) (int, []byte) {
	var (
		statusErr *StatusError
		queryErr  *QueryError
	)
	switch {
	case errors.As(err, &statusErr):
		return statusErr.StatusCode, statusErr.Body
	case errors.As(err, &queryErr):
		return queryErr.StatusCode, queryErr.Body
	}
	return 0, nil
}
