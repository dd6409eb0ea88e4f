package googlesheets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sedrickcz/cityvizor"
	"google.golang.org/api/sheets/v4"
)

// Name identifies this backend in errors and logs
const Name = "googlesheets"

const (
	// the API appends after the last row of the table anchored here
	appendCells = "A2:E2"

	valueInputOption = "USER_ENTERED"
	insertDataOption = "INSERT_ROWS"
)

// Store implements cityvizor.Store by appending one row per request to a
// Google Sheets worksheet
type Store struct {
	*client
}

var _ cityvizor.Store = (*Store)(nil)

// New creates a Google Sheets request store
func New(config Config, opts ...Option) (*Store, error) {
	c, err := newClient(config, opts)
	if err != nil {
		return nil, err
	}
	return &Store{client: c}, nil
}

// Range returns the append range, "<list>!A2:E2"
func (s *Store) Range() string {
	return fmt.Sprintf("%s!%s", s.config.ListName, appendCells)
}

// Insert appends the request as a new row. Without a usable credentials file
// it logs a warning and returns OutcomeSkipped.
func (s *Store) Insert(ctx context.Context, request *cityvizor.CityRequest) (cityvizor.Outcome, error) {
	path := strings.TrimSpace(s.config.CredentialsFile)
	if path == "" {
		s.logger.Warn().Msg("No credentials file, city request not stored. Set GOOGLE_CREDENTIALS=/path/to/file.json")
		return cityvizor.OutcomeSkipped, nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn().Str("credentials", path).Msg("Credentials file doesn't exist, city request not stored")
		return cityvizor.OutcomeSkipped, nil
	} else if err != nil {
		// unreadable parent directories and the like count as missing
		s.logger.Warn().Err(err).Str("credentials", path).Msg("Credentials file is not accessible, city request not stored")
		return cityvizor.OutcomeSkipped, nil
	}

	if err := s.append(ctx, request); err != nil {
		s.logger.Error().Err(err).Interface("request", request).Msg("Unable to create new city request")
		return cityvizor.OutcomeFailed, &cityvizor.StoreError{Store: Name, Err: err}
	}

	s.logger.Debug().Str("city", request.City).Msg("City request stored")
	return cityvizor.OutcomeWritten, nil
}

func (s *Store) append(ctx context.Context, request *cityvizor.CityRequest) error {
	if request == nil {
		return cityvizor.ErrNilRequest
	}

	service, err := s.service(ctx)
	if err != nil {
		return err
	}

	vr := &sheets.ValueRange{
		Values: [][]interface{}{request.Row()},
	}

	_, err = service.Spreadsheets.Values.Append(s.config.DocumentID, s.Range(), vr).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append values: %w", err)
	}

	return nil
}
