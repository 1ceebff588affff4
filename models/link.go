package models

// Authorship links a person to a publication they authored.
type Authorship struct {
	PersonID      uint `json:"person_id" gorm:"primaryKey;autoIncrement:false"`
	PublicationID uint `json:"publication_id" gorm:"primaryKey;autoIncrement:false"`
}

// TableName sets the explicit table name for GORM.
func (Authorship) TableName() string {
	return "authorship"
}

// Signatory links a person to a declaration they signed.
type Signatory struct {
	PersonID      uint `json:"person_id" gorm:"primaryKey;autoIncrement:false"`
	DeclarationID uint `json:"declaration_id" gorm:"primaryKey;autoIncrement:false"`
}

// TableName sets the explicit table name for GORM.
func (Signatory) TableName() string {
	return "signatory"
}
