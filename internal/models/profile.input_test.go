package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfileInput() ProfileInput {
	return ProfileInput{
		Name:            "Aarav Sharma",
		Relation:        "Self",
		Dob:             "1990-04-12",
		Nakshatra:       "Rohini",
		Rashi:           "Vrishabh (Taurus)",
		ContactNumber:   "+91 98765 43210",
		Occupation:      "Engineer",
		Address:         "12 Shanti Nagar, Pune, Maharashtra",
		SubmitterName:   "Aarav Sharma",
		SubmitterMobile: "9876543210",
	}
}

func TestProfileInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProfileInput)
		wantErr bool
	}{
		{
			name:    "valid input",
			mutate:  func(in *ProfileInput) {},
			wantErr: false,
		},
		{
			name:    "empty contact number is allowed",
			mutate:  func(in *ProfileInput) { in.ContactNumber = "" },
			wantErr: false,
		},
		{
			name:    "name with digits",
			mutate:  func(in *ProfileInput) { in.Name = "Aarav2" },
			wantErr: true,
		},
		{
			name:    "name too short",
			mutate:  func(in *ProfileInput) { in.Name = "A" },
			wantErr: true,
		},
		{
			name:    "name too long",
			mutate:  func(in *ProfileInput) { in.Name = strings.Repeat("a", 101) },
			wantErr: true,
		},
		{
			name:    "missing relation",
			mutate:  func(in *ProfileInput) { in.Relation = "" },
			wantErr: true,
		},
		{
			name:    "missing dob",
			mutate:  func(in *ProfileInput) { in.Dob = "" },
			wantErr: true,
		},
		{
			name:    "nakshatra outside the closed set",
			mutate:  func(in *ProfileInput) { in.Nakshatra = "Sirius" },
			wantErr: true,
		},
		{
			name:    "rashi outside the closed set",
			mutate:  func(in *ProfileInput) { in.Rashi = "Taurus" },
			wantErr: true,
		},
		{
			name:    "contact number too short",
			mutate:  func(in *ProfileInput) { in.ContactNumber = "12345" },
			wantErr: true,
		},
		{
			name:    "contact number with letters",
			mutate:  func(in *ProfileInput) { in.ContactNumber = "98765abcde" },
			wantErr: true,
		},
		{
			name:    "address too short",
			mutate:  func(in *ProfileInput) { in.Address = "Pune" },
			wantErr: true,
		},
		{
			name:    "missing submitter name",
			mutate:  func(in *ProfileInput) { in.SubmitterName = "" },
			wantErr: true,
		},
		{
			name:    "submitter mobile under ten digits",
			mutate:  func(in *ProfileInput) { in.SubmitterMobile = "987654321" },
			wantErr: true,
		},
		{
			name:    "submitter mobile with formatting still counts digits",
			mutate:  func(in *ProfileInput) { in.SubmitterMobile = "+91 98765 43210" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validProfileInput()
			tt.mutate(&input)

			err := input.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfileInput_ToProfile_Trims(t *testing.T) {
	input := validProfileInput()
	input.Name = "  Aarav Sharma  "
	input.SubmitterMobile = " 9876543210 "

	profile := input.ToProfile()

	assert.Equal(t, "Aarav Sharma", profile.Name)
	assert.Equal(t, "9876543210", profile.SubmitterMobile)
	assert.Equal(t, "Rohini", profile.Nakshatra)
}

func TestProfileUpdateInput_Apply(t *testing.T) {
	profile := Profile{
		BaseModel:       BaseModel{ID: 7},
		Name:            "Old Name",
		SubmitterName:   "Aarav Sharma",
		SubmitterMobile: "9876543210",
	}

	update := ProfileUpdateInput{
		Name:          " New Name ",
		Relation:      "Brother",
		Dob:           "1992-01-15",
		Nakshatra:     "Swati",
		Rashi:         "Tula (Libra)",
		ContactNumber: "9998887776",
		Occupation:    "Doctor",
		Address:       "45 MG Road, Mumbai, Maharashtra",
	}
	require.NoError(t, update.Validate())

	update.Apply(&profile)

	assert.Equal(t, 7, profile.ID)
	assert.Equal(t, "New Name", profile.Name)
	assert.Equal(t, "Swati", profile.Nakshatra)
	assert.Equal(t, "Aarav Sharma", profile.SubmitterName, "submitter identity is immutable on update")
	assert.Equal(t, "9876543210", profile.SubmitterMobile)
}

func TestNakshatraAndRashiSets(t *testing.T) {
	assert.Len(t, Nakshatras, 27)
	assert.Len(t, Rashis, 12)

	assert.True(t, IsValidNakshatra("Ashwini"))
	assert.False(t, IsValidNakshatra("ashwini"), "matching is exact, not case-folded")
	assert.True(t, IsValidRashi("Mesh (Aries)"))
	assert.False(t, IsValidRashi("Mesh"))
}
