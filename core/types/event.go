package types

// Event represents a typed observation emitted during state transitions. The
// attribute map is consumed by off-chain indexers and the query gateway.
type Event struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}
