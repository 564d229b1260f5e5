// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package zotero

import (
	"slices"
	"strings"

	"github.com/a10y/papers-list/pkg/types"
)

// UntitledPlaceholder replaces a missing item title.
const UntitledPlaceholder = "Untitled"

// paperTypes is the allow-list of scholarly item types served as papers.
var paperTypes = []string{
	"journalArticle",
	"conferencePaper",
	"preprint",
	"book",
	"bookSection",
	"thesis",
	"report",
	"manuscript",
}

// IsPaperType reports whether itemType is one of the scholarly item types.
func IsPaperType(itemType string) bool {
	return slices.Contains(paperTypes, itemType)
}

// FormatAuthors returns display names for creators of type "author", in
// order. A creator's Name wins; otherwise the non-empty first and last
// names are joined with a space.
func FormatAuthors(creators []Creator) []string {
	authors := make([]string, 0, len(creators))
	for _, c := range creators {
		if c.CreatorType != "author" {
			continue
		}
		if c.Name != "" {
			authors = append(authors, c.Name)
			continue
		}
		var parts []string
		for _, p := range []string{c.FirstName, c.LastName} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		authors = append(authors, strings.Join(parts, " "))
	}
	return authors
}

// ToPaper maps an upstream item to a Paper.
func ToPaper(item RawItem) types.Paper {
	d := item.Data

	title := d.Title
	if title == "" {
		title = UntitledPlaceholder
	}
	publication := d.PublicationTitle
	if publication == "" {
		publication = d.JournalAbbreviation
	}

	return types.Paper{
		ID:          d.Key,
		Title:       title,
		Authors:     FormatAuthors(d.Creators),
		Abstract:    d.AbstractNote,
		Publication: publication,
		Date:        d.Date,
		DOI:         optional(d.DOI),
		URL:         optional(d.URL),
		ItemType:    d.ItemType,
	}
}

// ToNote maps a child note item to a Note.
func ToNote(item RawItem) types.Note {
	return types.Note{
		ID:      item.Data.Key,
		Content: item.Data.Note,
	}
}

// ToPaperDetail maps an item and its already-mapped notes to a PaperDetail.
func ToPaperDetail(item RawItem, notes []types.Note) types.PaperDetail {
	if notes == nil {
		notes = []types.Note{}
	}
	tags := make([]string, 0, len(item.Data.Tags))
	for _, t := range item.Data.Tags {
		tags = append(tags, t.Tag)
	}
	return types.PaperDetail{
		Paper: ToPaper(item),
		Notes: notes,
		Tags:  tags,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
