package models

// Journal maps a full journal title to its standard abbreviation, used to
// shorten publication names in PDF exports.
type Journal struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"uniqueIndex"`
	Abbreviation string `json:"abbreviation"`
}

// TableName sets the explicit table name for GORM.
func (Journal) TableName() string {
	return "journal"
}
