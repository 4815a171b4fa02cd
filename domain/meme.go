package domain

import "time"

// Meme represents a single meme from the catalog or an upload.
type Meme struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`

	// Set only for user-uploaded memes. Catalog memes are refetched
	// wholesale and never carry these.
	UploadDate time.Time `json:"uploadDate,omitzero"`
	UploadedBy string    `json:"uploadedBy,omitempty"`
	Category   string    `json:"category,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Caption    string    `json:"caption,omitempty"`
}

// IsUpload reports whether the meme came from the local upload set.
func (m Meme) IsUpload() bool {
	return !m.UploadDate.IsZero()
}

// Comment is a single comment on a meme, stored in insertion order.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	AuthorPic string    `json:"authorPic,omitempty"`
	Date      time.Time `json:"date"`
	Likes     int       `json:"likes,omitempty"`
}

// Category names the known catalog slices. The catalog API has no real
// category support, so each category is a deterministic window over the
// full list; anything unrecognized falls back to the trending window.
type Category string

const (
	CategoryTrending Category = "trending"
	CategoryNew      Category = "new"
	CategoryClassic  Category = "classic"
	CategoryRandom   Category = "random"
)

// UploadDraft is the user-supplied input for a new meme upload.
// Validated at the boundary before the store ever sees it.
type UploadDraft struct {
	Title    string   `validate:"required,max=120"`
	URL      string   `validate:"required,url|datauri"`
	Category string   `validate:"max=40"`
	Tags     []string `validate:"max=10,dive,max=30"`
	Caption  string   `validate:"max=280"`
}
