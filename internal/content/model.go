// Package content loads the guide's chapter and storyboard catalog from the
// content API and keeps the latest snapshot for the chat resolver.
package content

import (
	"encoding/json"
	"fmt"
	"io"
)

// Chapter is a top-level destination or trail group of the guide.
type Chapter struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Storyboards []Storyboard `json:"storyboards"`
}

// Storyboard is a point of interest inside a chapter.
type Storyboard struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// The content API wraps every record as {id, attributes} and every relation
// as {data: ...}.
type chaptersEnvelope struct {
	Data []chapterRecord `json:"data"`
}

type chapterRecord struct {
	ID         int `json:"id"`
	Attributes struct {
		Title           string `json:"title"`
		MainStoryboards *struct {
			Data []storyboardRecord `json:"data"`
		} `json:"mainStoryboards"`
	} `json:"attributes"`
}

type storyboardRecord struct {
	ID         int `json:"id"`
	Attributes struct {
		Title string `json:"title"`
	} `json:"attributes"`
}

// DecodeChapters reads a main-chapters response body.
// A chapter without a mainStoryboards relation has no storyboards.
func DecodeChapters(r io.Reader) ([]Chapter, error) {
	var env chaptersEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode main chapters: %w", err)
	}

	chapters := make([]Chapter, 0, len(env.Data))
	for _, rec := range env.Data {
		ch := Chapter{ID: rec.ID, Title: rec.Attributes.Title}
		if rel := rec.Attributes.MainStoryboards; rel != nil {
			ch.Storyboards = make([]Storyboard, 0, len(rel.Data))
			for _, sb := range rel.Data {
				ch.Storyboards = append(ch.Storyboards, Storyboard{ID: sb.ID, Title: sb.Attributes.Title})
			}
		}
		chapters = append(chapters, ch)
	}
	return chapters, nil
}
