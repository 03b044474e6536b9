package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Category is one itemized line of a player's score.
type Category struct {
	Name   string
	Points float64
}

// Breakdown is an ordered set of scoring categories. Zero-point categories
// are never stored, so a Breakdown built with NewBreakdown only lists lines
// that moved the total.
type Breakdown []Category

func NewBreakdown(categories ...Category) Breakdown {
	var b Breakdown
	for _, c := range categories {
		if c.Points != 0 {
			b = append(b, c)
		}
	}
	return b
}

func (b Breakdown) Total() float64 {
	var total float64
	for _, c := range b {
		total += c.Points
	}
	return total
}

func (b Breakdown) Get(name string) (float64, bool) {
	for _, c := range b {
		if c.Name == name {
			return c.Points, true
		}
	}
	return 0, false
}

func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.Points)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (b *Breakdown) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*b = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("breakdown: expected object, got %v", tok)
	}

	var out Breakdown
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("breakdown: expected string key, got %v", keyTok)
		}
		var points float64
		if err := dec.Decode(&points); err != nil {
			return fmt.Errorf("breakdown %q: %w", key, err)
		}
		out = append(out, Category{Name: key, Points: points})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*b = out
	return nil
}
