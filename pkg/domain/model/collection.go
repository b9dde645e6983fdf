package model

import "encoding/json"

// Collection represents the subset of a Postman collection (v2.1) this
// service cares about. URL and body values vary wildly between Postman
// exports (plain string vs structured object), so they stay raw.
type Collection struct {
	Info Info   `json:"info"`
	Item []Item `json:"item"`
}

// Info holds collection metadata
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Schema      string `json:"schema,omitempty"`
}

// Item is a single entry of a collection. Folder items carry no request.
type Item struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Request     *Request `json:"request,omitempty"`
}

// Request describes the HTTP request attached to an item
type Request struct {
	Method string          `json:"method"`
	URL    json.RawMessage `json:"url,omitempty"`
	Header []Header        `json:"header,omitempty"`
	Body   json.RawMessage `json:"body,omitempty"`
}

// Header is a single key/value header entry of a Postman request
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Name returns the collection name, falling back to a generic one when
// the export carries no name
func (c *Collection) Name() string {
	if c.Info.Name == "" {
		return "postman-collection"
	}
	return c.Info.Name
}

// ValidateCollection reports whether raw JSON has the minimal shape of a
// Postman collection: an object with an `info` key and an `item` array.
// It never returns an error; anything unparseable is simply not a collection.
func ValidateCollection(raw json.RawMessage) bool {
	var probe struct {
		Info *json.RawMessage `json:"info"`
		Item *json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	if probe.Info == nil || probe.Item == nil {
		return false
	}

	var items []json.RawMessage
	return json.Unmarshal(*probe.Item, &items) == nil
}

// CollectionSummary is the ephemeral projection of a collection that gets
// embedded into the generation prompt
type CollectionSummary struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Requests    []RequestSummary `json:"requests"`
}

// RequestSummary summarizes one request-bearing item
type RequestSummary struct {
	Name        string          `json:"name"`
	Method      string          `json:"method"`
	URL         json.RawMessage `json:"url,omitempty"`
	Headers     []Header        `json:"headers,omitempty"`
	Body        json.RawMessage `json:"body,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Summarize projects a collection into its prompt summary. Folder items
// without a request are skipped; item order is preserved.
func Summarize(col *Collection) *CollectionSummary {
	summary := &CollectionSummary{
		Name:        col.Name(),
		Description: col.Info.Description,
		Requests:    []RequestSummary{},
	}

	for _, item := range col.Item {
		if item.Request == nil {
			continue
		}
		method := item.Request.Method
		if method == "" {
			method = "GET"
		}
		summary.Requests = append(summary.Requests, RequestSummary{
			Name:        item.Name,
			Method:      method,
			URL:         item.Request.URL,
			Headers:     item.Request.Header,
			Body:        item.Request.Body,
			Description: item.Description,
		})
	}

	return summary
}
