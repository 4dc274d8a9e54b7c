// Package models contains the data models of the shortener.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// URLMapping is a single short code to original URL record.
type URLMapping struct {
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	ClickCount  int64     `json:"click_count"`
	CreatedTime time.Time `json:"created_time"`
}

// NewMapping creates a mapping with a zero click count stamped with the current time.
func NewMapping(code, originalURL string) *URLMapping {
	return &URLMapping{
		ShortCode:   code,
		OriginalURL: originalURL,
		CreatedTime: time.Now().UTC(),
	}
}

// Mappings is an ordered list of mappings.
//
// It is encoded as a JSON object of code to original URL, keeping
// the order of the slice, which is what the fallback files and the
// stats endpoint exchange.
type Mappings []URLMapping

// Interface implementation guards.
var (
	_ json.Marshaler   = Mappings(nil)
	_ json.Unmarshaler = (*Mappings)(nil)
)

// MarshalJSON writes the mappings as an ordered {"code": "url"} object.
func (ms Mappings) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range ms {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.ShortCode)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.OriginalURL)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a {"code": "url"} object keeping the key order.
// A repeated key keeps its first position and takes the last value.
func (ms *Mappings) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*ms = Mappings{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	out := make(Mappings, 0)
	index := make(map[string]int)
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		code, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", tok)
		}
		var url string
		if err = dec.Decode(&url); err != nil {
			return fmt.Errorf("value of %q: %w", code, err)
		}
		if i, seen := index[code]; seen {
			out[i].OriginalURL = url
			continue
		}
		index[code] = len(out)
		out = append(out, URLMapping{ShortCode: code, OriginalURL: url})
	}

	if _, err = dec.Token(); err != nil {
		return err
	}

	*ms = out
	return nil
}

// Last returns up to n trailing mappings.
func (ms Mappings) Last(n int) Mappings {
	if n <= 0 {
		return Mappings{}
	}
	if len(ms) <= n {
		return append(Mappings{}, ms...)
	}
	return append(Mappings{}, ms[len(ms)-n:]...)
}

// Merge returns primary followed by the entries of secondary whose
// codes primary does not have. Primary wins on conflicting codes.
func Merge(primary, secondary Mappings) Mappings {
	seen := make(map[string]struct{}, len(primary))
	out := make(Mappings, 0, len(primary)+len(secondary))
	for _, m := range primary {
		if _, ok := seen[m.ShortCode]; ok {
			continue
		}
		seen[m.ShortCode] = struct{}{}
		out = append(out, m)
	}
	for _, m := range secondary {
		if _, ok := seen[m.ShortCode]; ok {
			continue
		}
		seen[m.ShortCode] = struct{}{}
		out = append(out, m)
	}
	return out
}

// Stats summarizes the working mapping.
type Stats struct {
	Total  int
	Latest Mappings
}
