package models

// Person is a biographical record of a climate scientist.
type Person struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Title          string `json:"title,omitempty"`
	FirstName      string `json:"first_name"`
	Nickname       string `json:"nickname,omitempty"`
	Prefix         string `json:"prefix,omitempty"`
	LastName       string `json:"last_name" gorm:"index"`
	Suffix         string `json:"suffix,omitempty"`
	Alias          string `json:"alias,omitempty"`
	Description    string `json:"description,omitempty" gorm:"type:text"`
	Qualifications string `json:"qualifications,omitempty"`
	Country        string `json:"country,omitempty"`
	Rating         int    `json:"rating"`
	Checked        bool   `json:"checked"`
	Published      bool   `json:"published"`
}

// TableName sets the explicit table name for GORM.
func (Person) TableName() string {
	return "person"
}

// PersonFields lists the person columns visible to the any-field filter.
var PersonFields = []string{
	"id",
	"title",
	"first_name",
	"nickname",
	"prefix",
	"last_name",
	"suffix",
	"alias",
	"description",
	"qualifications",
	"country",
	"rating",
	"checked",
	"published",
}
