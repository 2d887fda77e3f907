package subgraph

import (
	"bytes"
	_ "embed"

	minjson "github.com/tdewolff/minify/v2/json"
)

//go:embed queries/snapshots_all.graphql
var snapshotsAllQuery string

// snapshotsBlockQuery restricts every page to a single block number.
//
//go:embed queries/snapshots_block.graphql
var snapshotsBlockQuery string

// compactBody minifies a JSON response body so it fits on one log line.
// Bodies that are not JSON are returned unchanged.
func compactBody(body []byte) string {
	minified := new(bytes.Buffer)
	if err := minjson.Minify(nil, minified, bytes.NewReader(body), nil); err != nil {
		return string(body)
	}
	return minified.String()
}
