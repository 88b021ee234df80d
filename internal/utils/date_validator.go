package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatISO8601     DateFormat = "2006-01-02T15:04:05Z07:00"
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatUSDate      DateFormat = "01/02/2006"
	FormatDashDate    DateFormat = "02-01-2006"
	FormatDotDate     DateFormat = "02.01.2006"
	FormatMonthDay    DateFormat = "January 2, 2006"
	FormatShortMonth  DateFormat = "Jan 2, 2006"
)

// DateValidator checks birth-date strings coming off the submission form and
// normalizes them to a single storage format.
type DateValidator struct {
	supportedFormats []DateFormat
	standardFormat   DateFormat
}

type ValidationResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
	StandardFormat string
	OriginalValue  string
}

func NewDateValidator() *DateValidator {
	return &DateValidator{
		supportedFormats: []DateFormat{
			FormatISO8601,
			FormatISO8601Date,
			FormatUSDate,
			FormatDashDate,
			FormatDotDate,
			FormatMonthDay,
			FormatShortMonth,
		},
		standardFormat: FormatISO8601Date,
	}
}

func (dv *DateValidator) SetStandardFormat(format DateFormat) {
	dv.standardFormat = format
}

func (dv *DateValidator) ValidateAndConvert(input string) ValidationResult {
	result := ValidationResult{
		IsValid:       false,
		OriginalValue: input,
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}

	for _, format := range dv.supportedFormats {
		if parsedTime, err := time.Parse(string(format), input); err == nil {
			if dv.isValidForFormat(input, format) {
				result.IsValid = true
				result.DetectedFormat = format
				result.ParsedTime = parsedTime
				result.StandardFormat = parsedTime.Format(string(dv.standardFormat))
				return result
			}
		}
	}

	if parsedTime, format := dv.tryFlexibleParsing(input); !parsedTime.IsZero() {
		result.IsValid = true
		result.DetectedFormat = format
		result.ParsedTime = parsedTime
		result.StandardFormat = parsedTime.Format(string(dv.standardFormat))
		return result
	}

	return result
}

func (dv *DateValidator) isValidForFormat(input string, format DateFormat) bool {
	switch format {
	case FormatUSDate:
		// MM/DD/YYYY - month should be 1-12, day should be 1-31
		pattern := regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})`)
		matches := pattern.FindStringSubmatch(input)
		if len(matches) < 4 {
			return false
		}

		month, _ := strconv.Atoi(matches[1])
		day, _ := strconv.Atoi(matches[2])

		return month >= 1 && month <= 12 && day >= 1 && day <= 31
	default:
		return true
	}
}

func (dv *DateValidator) tryFlexibleParsing(input string) (time.Time, DateFormat) {
	flexibleFormats := []string{
		"2006-01-02 15:04:05",
		"2006/01/02",
		"01-02-2006",
		"Jan 02, 2006",
		"January 02, 2006",
		"2006-01-02T15:04:05",
	}

	for _, format := range flexibleFormats {
		if parsedTime, err := time.Parse(format, input); err == nil {
			return parsedTime, DateFormat(format)
		}
	}

	return time.Time{}, ""
}

func (dv *DateValidator) GetSupportedFormats() []DateFormat {
	return dv.supportedFormats
}
