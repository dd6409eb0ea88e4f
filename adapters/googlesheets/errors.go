package googlesheets

import "errors"

var (
	// ErrMissingDocumentID is returned when the spreadsheet ID is not specified
	ErrMissingDocumentID = errors.New("document ID is required")

	// ErrMissingListName is returned when the worksheet name is not specified
	ErrMissingListName = errors.New("list name is required")

	// ErrNoCredentials is returned when profiles are requested without a credentials file
	ErrNoCredentials = errors.New("no credentials file")
)
