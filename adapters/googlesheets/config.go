package googlesheets

import "strings"

// Config represents configuration specific to the Google Sheets backend
type Config struct {
	CredentialsFile string // service account or OAuth client JSON; blank disables writes
	DocumentID      string // spreadsheet ID, visible in the document URL
	ListName        string // worksheet name
	AppName         string // sent as the API user agent
}

// Validate checks if the configuration is valid. A missing credentials file is
// not an error, and without one the document ID is not needed either.
func (c *Config) Validate() error {
	if c.DocumentID == "" && strings.TrimSpace(c.CredentialsFile) != "" {
		return ErrMissingDocumentID
	}
	if c.ListName == "" {
		return ErrMissingListName
	}
	return nil
}
