// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the public data structures served by papers-list.
// Paper, PaperDetail and Note are the stable JSON shapes returned by the
// HTTP API; the config types carry the settings wired in by the CLI.
package types

// Paper is the normalized view of one bibliographic item in the collection.
type Paper struct {
	// ID is the upstream item key (e.g. "ABC123").
	ID string `json:"id" yaml:"id"`

	// Title is the item title, "Untitled" when the upstream record has none.
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names in upstream order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the item abstract, empty when absent.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Publication is the venue name (publication title or journal abbreviation).
	Publication string `json:"publication" yaml:"publication"`

	// Date is the free-text publication date as entered upstream.
	Date string `json:"date" yaml:"date"`

	// DOI is nil when the item has no DOI.
	DOI *string `json:"doi" yaml:"doi"`

	// URL is nil when the item has no URL.
	URL *string `json:"url" yaml:"url"`

	// ItemType is the upstream item type (e.g. "journalArticle").
	ItemType string `json:"itemType" yaml:"item_type"`
}

// PaperDetail is a Paper together with its child notes and tags.
type PaperDetail struct {
	Paper `yaml:",inline"`

	// Notes lists child notes in upstream order.
	Notes []Note `json:"notes" yaml:"notes"`

	// Tags lists the item's tags. Order carries no meaning.
	Tags []string `json:"tags" yaml:"tags"`
}

// Note is a child note attached to a paper.
type Note struct {
	// ID is the upstream key of the note item.
	ID string `json:"id" yaml:"id"`

	// Content is the raw note markup, passed through untouched.
	Content string `json:"content" yaml:"content"`
}
