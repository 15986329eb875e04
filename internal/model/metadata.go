package model

import "time"

// Metadata holds series-level descriptive fields embedded into generated
// ebook files. It is supplied by the caller, read-only for the pipeline,
// and copied into each generation task.
type Metadata struct {
	// Title is the series or book title. Required.
	Title string `json:"title" yaml:"title"`

	// Series is an optional series name distinct from the title.
	Series string `json:"series,omitempty" yaml:"series,omitempty"`

	// Authors lists the creators, in credit order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Publisher is the publishing entity.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// Description is a free-form summary.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Tags are general subjects attached to the output.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Language is a BCP 47 tag such as "en" or "ja".
	Language string `json:"language" yaml:"language"`

	// Rights is a copyright or license statement.
	Rights string `json:"rights,omitempty" yaml:"rights,omitempty"`

	// Identifier is an external ID such as an ISBN or database key. EPUB
	// output generates a UUID when this is empty.
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`

	// ReleaseDate is the original publication date. Zero means unknown;
	// CBZ output substitutes the generation time.
	ReleaseDate time.Time `json:"release_date,omitempty" yaml:"release_date,omitempty"`

	// Genre is a specific genre, primarily for ComicInfo.xml.
	Genre string `json:"genre,omitempty" yaml:"genre,omitempty"`

	// Web is a related URL, primarily for ComicInfo.xml.
	Web string `json:"web,omitempty" yaml:"web,omitempty"`

	// CustomFields carries arbitrary key/value pairs. They are embedded in
	// the Notes section of ComicInfo.xml and as generic EPUB metadata.
	CustomFields map[string]string `json:"custom_fields,omitempty" yaml:"custom_fields,omitempty"`
}

// NewMetadata returns a Metadata with the given title and the default
// language "en".
func NewMetadata(title string) Metadata {
	return Metadata{Title: title, Language: "en"}
}
