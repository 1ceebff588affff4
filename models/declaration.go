package models

import "time"

// Declaration is a public statement. Signatories holds the denormalized
// free-text signatory list; explicit person links live in the signatory table.
type Declaration struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Type           string     `json:"type"`
	Title          string     `json:"title" gorm:"type:text"`
	Date           *time.Time `json:"date,omitempty" gorm:"index"`
	Country        string     `json:"country,omitempty"`
	URL            string     `json:"url,omitempty"`
	Signatories    string     `json:"signatories,omitempty" gorm:"type:text"`
	SignatoryCount int        `json:"signatory_count"`
}

// TableName sets the explicit table name for GORM.
func (Declaration) TableName() string {
	return "declaration"
}

// DeclarationFields lists the declaration columns visible to the any-field
// filter and returned by the union-branch signatory queries.
var DeclarationFields = []string{
	"id",
	"type",
	"title",
	"date",
	"country",
	"url",
	"signatories",
	"signatory_count",
}
