package models

import "time"

// Quotation is an attributed statement. PersonID is nil while the quotation
// is only attributed to the free-text Author name.
type Quotation struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	PersonID *uint      `json:"person_id,omitempty" gorm:"index"`
	Author   string     `json:"author"`
	Text     string     `json:"text" gorm:"type:text"`
	Date     *time.Time `json:"date,omitempty"`
	Source   string     `json:"source,omitempty"`
	URL      string     `json:"url,omitempty"`
}

// TableName sets the explicit table name for GORM.
func (Quotation) TableName() string {
	return "quotation"
}

// QuotationFields lists the quotation columns visible to the any-field filter
// and returned by the union-branch author queries.
var QuotationFields = []string{
	"id",
	"person_id",
	"author",
	"text",
	"date",
	"source",
	"url",
}
