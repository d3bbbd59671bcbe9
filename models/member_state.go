package models

// MemberState is a fixed lookup set (aktiv, passiv, ehrenmitglied,
// gesperrt, inaktiv). Seeded at boot, never edited through the API.
type MemberState struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);unique;not null" json:"name"`
}

// SeedMemberStates holds the reference data in seed order.
var SeedMemberStates = []string{"aktiv", "passiv", "ehrenmitglied", "gesperrt", "inaktiv"}
