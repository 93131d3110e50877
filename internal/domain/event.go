package domain

// Event is a discrete, timestamped annotation such as a deployment marker.
// Its JSON form is the document accepted by the Graphite events endpoint.
type Event struct {
	What string   `json:"what"`
	Tags []string `json:"tags"`
	// When is in unix seconds.
	When int64  `json:"when"`
	Data string `json:"data"`
}

// NewEvent builds an event, appending tag to tags when tag is not empty.
// The caller's tags slice is never written to.
func NewEvent(what string, tags []string, when int64, data, tag string) Event {
	out := make([]string, 0, len(tags)+1)
	out = append(out, tags...)
	if tag != "" {
		out = append(out, tag)
	}
	return Event{What: what, Tags: out, When: when, Data: data}
}
