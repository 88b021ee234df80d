package models

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ProfileInput carries a form submission before it becomes a Profile row.
// The rules mirror the public form: letters-and-spaces names, closed-set
// nakshatra/rashi values, and a submitter identified by name plus a mobile
// number with at least ten digits.
type ProfileInput struct {
	Name            string `json:"name"            validate:"required,min=2,max=100,alphaspace"`
	Relation        string `json:"relation"        validate:"required,max=50"`
	Dob             string `json:"dob"             validate:"required"`
	Nakshatra       string `json:"nakshatra"       validate:"required,nakshatra"`
	Rashi           string `json:"rashi"           validate:"required,rashi"`
	ContactNumber   string `json:"contactNumber"   validate:"omitempty,min=10,max=15,phonechars"`
	Occupation      string `json:"occupation"      validate:"required,max=100"`
	Address         string `json:"address"         validate:"required,min=10,max=500"`
	SubmitterName   string `json:"submitterName"   validate:"required,max=100"`
	SubmitterMobile string `json:"submitterMobile" validate:"required,mobiledigits"`
}

type ProfileUpdateInput struct {
	Name          string `json:"name"          validate:"required,min=2,max=100,alphaspace"`
	Relation      string `json:"relation"      validate:"required,max=50"`
	Dob           string `json:"dob"           validate:"required"`
	Nakshatra     string `json:"nakshatra"     validate:"required,nakshatra"`
	Rashi         string `json:"rashi"         validate:"required,rashi"`
	ContactNumber string `json:"contactNumber" validate:"omitempty,min=10,max=15,phonechars"`
	Occupation    string `json:"occupation"    validate:"required,max=100"`
	Address       string `json:"address"       validate:"required,min=10,max=500"`
}

var (
	alphaSpacePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneCharsPattern = regexp.MustCompile(`^[\d\s+\-()]+$`)
	digitPattern      = regexp.MustCompile(`\d`)

	validateOnce sync.Once
	validate     *validator.Validate
)

func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
			return alphaSpacePattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("phonechars", func(fl validator.FieldLevel) bool {
			return phoneCharsPattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("nakshatra", func(fl validator.FieldLevel) bool {
			return IsValidNakshatra(fl.Field().String())
		})
		_ = validate.RegisterValidation("rashi", func(fl validator.FieldLevel) bool {
			return IsValidRashi(fl.Field().String())
		})
		_ = validate.RegisterValidation("mobiledigits", func(fl validator.FieldLevel) bool {
			return len(digitPattern.FindAllString(fl.Field().String(), -1)) >= 10
		})
	})
	return validate
}

func (p *ProfileInput) Validate() error {
	return Validator().Struct(p)
}

func (p *ProfileInput) ToProfile() Profile {
	return Profile{
		Name:            strings.TrimSpace(p.Name),
		Relation:        strings.TrimSpace(p.Relation),
		Dob:             strings.TrimSpace(p.Dob),
		Nakshatra:       p.Nakshatra,
		Rashi:           p.Rashi,
		ContactNumber:   strings.TrimSpace(p.ContactNumber),
		Occupation:      strings.TrimSpace(p.Occupation),
		Address:         strings.TrimSpace(p.Address),
		SubmitterName:   strings.TrimSpace(p.SubmitterName),
		SubmitterMobile: strings.TrimSpace(p.SubmitterMobile),
	}
}

func (p *ProfileUpdateInput) Validate() error {
	return Validator().Struct(p)
}

func (p *ProfileUpdateInput) Apply(profile *Profile) {
	profile.Name = strings.TrimSpace(p.Name)
	profile.Relation = strings.TrimSpace(p.Relation)
	profile.Dob = strings.TrimSpace(p.Dob)
	profile.Nakshatra = p.Nakshatra
	profile.Rashi = p.Rashi
	profile.ContactNumber = strings.TrimSpace(p.ContactNumber)
	profile.Occupation = strings.TrimSpace(p.Occupation)
	profile.Address = strings.TrimSpace(p.Address)
}
