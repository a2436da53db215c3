// Package sample declares the demo list: section titles spanning the full
// row and content cells between them.
package sample

import (
	"fmt"
	"strings"
)

// Item is a row of the demo list. It is implemented by Title and Content.
type Item interface {
	ItemID() int
	sealed()
}

// Title is a section header.
type Title struct {
	ID   int
	Text string
}

func (t Title) ItemID() int { return t.ID }
func (Title) sealed()       {}

// Content is a regular cell.
type Content struct {
	ID   int
	Text string
}

func (c Content) ItemID() int { return c.ID }
func (Content) sealed()       {}

// TitleEvery is the spacing of titles in generated lists.
const TitleEvery = 20

// Build generates the items with ids in [from, to).
func Build(from, to int) []Item {
	items := make([]Item, 0, max(to-from, 0))
	for id := from; id < to; id++ {
		items = append(items, build(id, TitleEvery))
	}
	return items
}

func build(id, every int) Item {
	if id%every == 0 {
		return Title{ID: id, Text: fmt.Sprintf("this is title %d", id)}
	}
	return Content{ID: id, Text: strings.Repeat(fmt.Sprintf("this is content %d, ", id), 3)}
}

// Retitle returns a copy of items with every title renamed for round.
// Content rows are shared with the input.
func Retitle(items []Item, round int) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		if t, ok := it.(Title); ok {
			t.Text = fmt.Sprintf("this is title %d [%d]", t.ID, round)
			it = t
		}
		out[i] = it
	}
	return out
}
