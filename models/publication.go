package models

import "time"

// Publication is a bibliographic record. Authors holds the free-text author
// list as printed on the publication; explicit person links live in the
// authorship table.
type Publication struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	Title             string     `json:"title" gorm:"type:text"`
	Authors           string     `json:"authors,omitempty" gorm:"type:text"`
	Journal           string     `json:"journal,omitempty"`
	PublicationTypeID int        `json:"publication_type_id"`
	PublicationDate   *time.Time `json:"publication_date,omitempty"`
	PublicationYear   int        `json:"publication_year" gorm:"index"`
	PeerReviewed      bool       `json:"peer_reviewed"`
	Doi               string     `json:"doi,omitempty"`
	IssnIsbn          string     `json:"issn_isbn,omitempty"`
	URL               string     `json:"url,omitempty"`
	Accessed          *time.Time `json:"accessed,omitempty"`
}

// TableName sets the explicit table name for GORM.
func (Publication) TableName() string {
	return "publication"
}

// PublicationFields lists the publication columns visible to the any-field
// filter and returned by the union-branch author queries.
var PublicationFields = []string{
	"id",
	"title",
	"authors",
	"journal",
	"publication_type_id",
	"publication_date",
	"publication_year",
	"peer_reviewed",
	"doi",
	"issn_isbn",
	"url",
	"accessed",
}
