package export

import "gorm.io/gorm"

// Abbreviations maps full journal titles to their standard short forms for
// the PDF renderer. It is loaded once at startup and read-only afterwards,
// so sharing it across handlers needs no locking.
type Abbreviations map[string]string

// LoadAbbreviations reads the journal lookup table.
func LoadAbbreviations(db *gorm.DB) (Abbreviations, error) {
	rows, err := db.Raw("SELECT name, abbreviation FROM journal").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	abbreviations := Abbreviations{}
	for rows.Next() {
		var name, abbreviation string
		if err := rows.Scan(&name, &abbreviation); err != nil {
			return nil, err
		}
		abbreviations[name] = abbreviation
	}
	return abbreviations, rows.Err()
}

// Shorten returns the abbreviation for a journal title, or the title itself
// when none is known.
func (a Abbreviations) Shorten(name string) string {
	if short, ok := a[name]; ok && short != "" {
		return short
	}
	return name
}
