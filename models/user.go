package models

// User is an account allowed to authenticate for write access.
// The table is named "users" because "user" is reserved in Postgres.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;size:64"`
	PasswordHash string `json:"-" gorm:"column:password_hash"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
}

// TableName sets the explicit table name for GORM.
func (User) TableName() string {
	return "users"
}
