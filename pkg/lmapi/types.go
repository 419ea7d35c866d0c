package lmapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Item is one opaque record from a platform collection. The client never
// interprets item contents beyond extracting the nested items sequence;
// typed resource clients decode items into their own structs.
type Item map[string]interface{}

// DecodeItem round-trips an item through JSON into a typed struct.
func DecodeItem(item Item, out interface{}) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encoding item: %w", err)
	}

	err = json.Unmarshal(raw, out)
	if err != nil {
		return fmt.Errorf("decoding item: %w", err)
	}

	return nil
}

// Envelope is the parsed platform response wrapper. Version 1 answers as
// {status, errmsg, data:{items:[...]}}; version 2+ answers as
// {errorCode, errmsg, items:[...]} or as a bare object with no wrapper.
type Envelope struct {
	// Status is the platform-level status (version 1). When the body carries
	// no status field the executor synthesizes it from the HTTP status.
	Status int

	// HasStatus reports whether Status came from the body rather than being
	// synthesized.
	HasStatus bool

	// ErrorCode is the platform error code (version 2+); zero on success.
	ErrorCode int

	// Message is the platform errmsg, when present.
	Message string

	// Data is the version-1 payload wrapper, when present.
	Data json.RawMessage

	// Items is the version-2 top-level items sequence, when present.
	Items json.RawMessage

	// Body is the full response body.
	Body json.RawMessage
}

// envelopeWire mirrors the superset of both wrapper shapes. Pointers
// distinguish absent fields from zero values.
type envelopeWire struct {
	Status       *int            `json:"status"`
	ErrorCode    *int            `json:"errorCode"`
	Errmsg       string          `json:"errmsg"`
	ErrorMessage string          `json:"errorMessage"`
	Data         json.RawMessage `json:"data"`
	Items        json.RawMessage `json:"items"`
}

// ParseEnvelope parses a response body into an Envelope. Bodies that are not
// JSON objects or arrays are rejected; a bare array is legal (version 2+
// endpoints may answer with the sequence itself).
func ParseEnvelope(body []byte) (*Envelope, error) {
	env := &Envelope{Body: append(json.RawMessage(nil), body...)}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return env, nil
	}

	if trimmed[0] == '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("response body is not valid JSON")
		}

		env.Items = append(json.RawMessage(nil), trimmed...)

		return env, nil
	}

	var wire envelopeWire

	err := json.Unmarshal(trimmed, &wire)
	if err != nil {
		return nil, fmt.Errorf("parsing response envelope: %w", err)
	}

	if wire.Status != nil {
		env.Status = *wire.Status
		env.HasStatus = true
	}

	if wire.ErrorCode != nil {
		env.ErrorCode = *wire.ErrorCode
	}

	env.Message = wire.Errmsg
	if env.Message == "" {
		env.Message = wire.ErrorMessage
	}

	env.Data = wire.Data
	env.Items = wire.Items

	return env, nil
}

// Success reports platform-level success for the given protocol version.
// Version 1 signals success through status 200; version 2+ through the
// absence of an error code. Some version-2 endpoints answer a non-2xx
// wrapper with errmsg "OK", which still counts as success.
func (e *Envelope) Success(version int) bool {
	if version <= 1 {
		return e.Status == 200
	}

	return e.ErrorCode == 0 || e.Message == "OK"
}

// ExtractItems normalizes the version-dependent payload shapes into an
// ordered sequence: nested data.items or bare data for version 1, top-level
// items or the bare body for version 2+. A singleton object becomes a
// one-element sequence.
func ExtractItems(version int, e *Envelope) ([]Item, error) {
	var raw json.RawMessage

	if version <= 1 {
		raw = e.Data
		if items := nestedItems(e.Data); items != nil {
			raw = items
		}
	} else {
		raw = e.Items
		if raw == nil {
			raw = e.Body
		}
	}

	return normalizeItems(raw)
}

// nestedItems pulls data.items out of a version-1 data wrapper, or nil when
// data is not an object carrying an items sequence.
func nestedItems(data json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var wrapper struct {
		Items json.RawMessage `json:"items"`
	}

	if json.Unmarshal(trimmed, &wrapper) != nil {
		return nil
	}

	return wrapper.Items
}

// normalizeItems turns a JSON array or singleton object into []Item.
func normalizeItems(raw json.RawMessage) ([]Item, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Item{}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []Item

		err := json.Unmarshal(trimmed, &items)
		if err != nil {
			return nil, fmt.Errorf("parsing items sequence: %w", err)
		}

		return items, nil

	case '{':
		var item Item

		err := json.Unmarshal(trimmed, &item)
		if err != nil {
			return nil, fmt.Errorf("parsing singleton item: %w", err)
		}

		return []Item{item}, nil

	default:
		return nil, fmt.Errorf("payload is neither an object nor a sequence")
	}
}

// ListOptions shape a paged collection fetch.
type ListOptions struct {
	// Filter restricts the collection; nil means unfiltered.
	Filter *Filter

	// Fields limits the attributes returned per item.
	Fields []string

	// Sort is the platform sort expression (e.g. "+id", "-startEpoch").
	Sort string

	// Size caps the total number of items fetched; 0 fetches the entire
	// collection.
	Size int

	// Format overrides the response format when the endpoint supports one.
	Format string

	// Version pins the protocol version; 0 resolves it from the path.
	Version int
}

// DataOptions shape a non-paged time-series window fetch.
type DataOptions struct {
	// Period is the window length in hours counted back from now. Used only
	// when Start and End are both zero.
	Period float64

	// Start and End bound the window explicitly. Converted to millisecond
	// epochs on the wire.
	Start time.Time
	End   time.Time

	// Datapoints restricts which datapoints are returned.
	Datapoints []string

	// Format overrides the response format when the endpoint supports one.
	Format string

	// Version pins the protocol version; 0 resolves it from the path.
	Version int
}
