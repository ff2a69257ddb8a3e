// Package catalog holds the in-memory book model and the pure derivation
// functions over it: filtering, sorting and random sampling. Nothing here
// talks to the network or mutates its inputs; handlers pass in a snapshot
// and render whatever comes back.
package catalog

import (
	"encoding/json"
	"time"

	"github.com/chapterone/storefront-core/internal/fingerprint"
)

// Book is the canonical catalog row. The platform API is loosely typed and
// ships several spellings for the same field (id/_id, genre/category,
// isFree/is_free, createdAt/dateAdded); UnmarshalJSON folds them into one
// shape so the rest of the code never sees the variance.
type Book struct {
	ID          string
	Title       string
	Author      string
	Description string
	Genre       string
	Category    string
	Price       float64
	Free        bool
	Rating      float64
	Tags        []string
	CreatedAt   time.Time
}

type bookWire struct {
	fingerprint.Ref
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	Category    string    `json:"category"`
	Price       *float64  `json:"price"`
	IsFree      *bool     `json:"isFree"`
	IsFreeSnake *bool     `json:"is_free"`
	Rating      float64   `json:"rating"`
	Tags        []string  `json:"tags"`
	CreatedAt   *wireTime `json:"createdAt"`
	DateAdded   *wireTime `json:"dateAdded"`
}

func (b *Book) UnmarshalJSON(data []byte) error {
	var w bookWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	id, _ := w.Resolve()
	b.ID = id
	b.Title = w.Title
	b.Author = w.Author
	b.Description = w.Description
	b.Genre = w.Genre
	b.Category = w.Category
	if w.Price != nil {
		b.Price = *w.Price
	}
	// explicit flag wins; otherwise a missing/zero price means free
	switch {
	case w.IsFree != nil:
		b.Free = *w.IsFree
	case w.IsFreeSnake != nil:
		b.Free = *w.IsFreeSnake
	default:
		b.Free = w.Price == nil || *w.Price == 0
	}
	b.Rating = w.Rating
	b.Tags = w.Tags
	if w.CreatedAt != nil {
		b.CreatedAt = time.Time(*w.CreatedAt)
	} else if w.DateAdded != nil {
		b.CreatedAt = time.Time(*w.DateAdded)
	}
	return nil
}

func (b Book) MarshalJSON() ([]byte, error) {
	type out struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		Author      string    `json:"author"`
		Description string    `json:"description,omitempty"`
		Genre       string    `json:"genre,omitempty"`
		Category    string    `json:"category,omitempty"`
		Price       float64   `json:"price"`
		IsFree      bool      `json:"isFree"`
		Rating      float64   `json:"rating"`
		Tags        []string  `json:"tags,omitempty"`
		CreatedAt   time.Time `json:"createdAt"`
	}
	return json.Marshal(out{
		ID: b.ID, Title: b.Title, Author: b.Author, Description: b.Description,
		Genre: b.Genre, Category: b.Category, Price: b.Price, IsFree: b.Free,
		Rating: b.Rating, Tags: b.Tags, CreatedAt: b.CreatedAt,
	})
}

// wireTime accepts RFC3339 strings, date-only strings and unix epoch numbers.
type wireTime time.Time

func (t *wireTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*t = wireTime(time.Time{})
		return nil
	}
	if b[0] == '"' {
		raw := s[1 : len(s)-1]
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if ts, err := time.Parse(layout, raw); err == nil {
				*t = wireTime(ts)
				return nil
			}
		}
		// unparseable timestamps degrade to the zero value, never an error
		*t = wireTime(time.Time{})
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		*t = wireTime(time.Time{})
		return nil
	}
	if sec, err := n.Int64(); err == nil {
		*t = wireTime(time.Unix(sec, 0).UTC())
	}
	return nil
}
