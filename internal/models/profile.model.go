package models

// Profile is one registered person's astrological/contact entry. Rows are only
// ever created through the public submission form; admins may edit or delete
// them afterwards. SubmitterName and SubmitterMobile may be empty on rows that
// predate submitter tracking.
type Profile struct {
	BaseModel
	Name            string `gorm:"type:varchar(100);not null" json:"name"`
	Relation        string `gorm:"type:varchar(50);not null"  json:"relation"`
	Dob             string `gorm:"type:varchar(64);not null"  json:"dob"`
	Nakshatra       string `gorm:"type:varchar(50);not null"  json:"nakshatra"`
	Rashi           string `gorm:"type:varchar(50);not null"  json:"rashi"`
	ContactNumber   string `gorm:"type:varchar(20)"           json:"contactNumber"`
	Occupation      string `gorm:"type:varchar(100)"          json:"occupation"`
	Address         string `gorm:"type:varchar(500)"          json:"address"`
	SubmitterName   string `gorm:"type:varchar(100);index"    json:"submitterName"`
	SubmitterMobile string `gorm:"type:varchar(20);index"     json:"submitterMobile"`
}

// Submitter is the derived per-submitter aggregate shown on the admin list.
// It is computed from the full record set and never persisted.
type Submitter struct {
	SubmitterName   string `json:"submitterName"`
	SubmitterMobile string `json:"submitterMobile"`
	RecordCount     int    `json:"recordCount"`
}

var Nakshatras = []string{
	"Ashwini",
	"Bharani",
	"Krittika",
	"Rohini",
	"Mrigashira",
	"Ardra",
	"Punarvasu",
	"Pushya",
	"Ashlesha",
	"Magha",
	"Purva Phalguni",
	"Uttara Phalguni",
	"Hasta",
	"Chitra",
	"Swati",
	"Vishakha",
	"Anuradha",
	"Jyeshtha",
	"Moola",
	"Purva Ashadha",
	"Uttara Ashadha",
	"Shravana",
	"Dhanishta",
	"Shatabhisha",
	"Purva Bhadrapada",
	"Uttara Bhadrapada",
	"Revati",
}

var Rashis = []string{
	"Mesh (Aries)",
	"Vrishabh (Taurus)",
	"Mithun (Gemini)",
	"Kark (Cancer)",
	"Singh (Leo)",
	"Kanya (Virgo)",
	"Tula (Libra)",
	"Vrishchik (Scorpio)",
	"Dhanu (Sagittarius)",
	"Makar (Capricorn)",
	"Kumbh (Aquarius)",
	"Meen (Pisces)",
}

func IsValidNakshatra(value string) bool {
	for _, nakshatra := range Nakshatras {
		if value == nakshatra {
			return true
		}
	}
	return false
}

func IsValidRashi(value string) bool {
	for _, rashi := range Rashis {
		if value == rashi {
			return true
		}
	}
	return false
}
