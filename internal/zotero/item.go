// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package zotero

// Zotero Web API v3 JSON structures. Only the fields papers-list reads are
// declared; optional fields use omitempty so fixtures re-encode cleanly.

// RawItem is one item record as returned by the items endpoints.
type RawItem struct {
	Key     string   `json:"key"`
	Version int      `json:"version"`
	Library Library  `json:"library"`
	Data    ItemData `json:"data"`
}

// Library describes the library that owns an item.
type Library struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemData holds the editable fields of an item. Which fields are present
// depends on ItemType.
type ItemData struct {
	Key                 string    `json:"key"`
	Version             int       `json:"version"`
	ItemType            string    `json:"itemType"`
	Title               string    `json:"title,omitempty"`
	Creators            []Creator `json:"creators,omitempty"`
	AbstractNote        string    `json:"abstractNote,omitempty"`
	PublicationTitle    string    `json:"publicationTitle,omitempty"`
	JournalAbbreviation string    `json:"journalAbbreviation,omitempty"`
	Date                string    `json:"date,omitempty"`
	DOI                 string    `json:"DOI,omitempty"`
	URL                 string    `json:"url,omitempty"`
	Tags                []Tag     `json:"tags,omitempty"`

	// Note and ParentItem are set on note items.
	Note       string `json:"note,omitempty"`
	ParentItem string `json:"parentItem,omitempty"`
}

// Creator is a person or organization credited on an item. Organizations
// use Name; people use FirstName and LastName.
type Creator struct {
	CreatorType string `json:"creatorType"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Name        string `json:"name,omitempty"`
}

// Tag is a single item tag.
type Tag struct {
	Tag  string `json:"tag"`
	Type int    `json:"type,omitempty"`
}
