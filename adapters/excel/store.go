package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sedrickcz/cityvizor"
	"github.com/xuri/excelize/v2"
)

// Name identifies this backend in errors and logs
const Name = "excel"

// Option customises a Store
type Option func(*Store)

// WithLogger sets the logger (default: the global zerolog logger)
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Store implements cityvizor.Store on a local Excel workbook. Row 1 is left
// for a header; requests are written from row 2 on.
type Store struct {
	config *Config
	logger zerolog.Logger
	mu     sync.Mutex
}

var _ cityvizor.Store = (*Store)(nil)

// New creates a new Excel request store with the given configuration
func New(config *Config, opts ...Option) (*Store, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create a copy of config to avoid external modifications
	configCopy := *config

	s := &Store{
		config: &configCopy,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().
		Str("backend", Name).
		Str("file", configCopy.FilePath).
		Str("sheet", configCopy.SheetName).
		Logger()

	return s, nil
}

// Insert appends the request below the last used row of the sheet
func (s *Store) Insert(ctx context.Context, request *cityvizor.CityRequest) (cityvizor.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.append(ctx, request); err != nil {
		s.logger.Error().Err(err).Interface("request", request).Msg("Unable to create new city request")
		return cityvizor.OutcomeFailed, &cityvizor.StoreError{Store: Name, Err: err}
	}

	return cityvizor.OutcomeWritten, nil
}

func (s *Store) append(ctx context.Context, request *cityvizor.CityRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if request == nil {
		return cityvizor.ErrNilRequest
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(s.config.FilePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var f *excelize.File
	created := false
	if _, err := os.Stat(s.config.FilePath); err == nil {
		f, err = excelize.OpenFile(s.config.FilePath)
		if err != nil {
			return fmt.Errorf("failed to open Excel file: %w", err)
		}
	} else {
		f = excelize.NewFile()
		created = true
	}
	defer f.Close()

	if err := ensureSheet(f, s.config.SheetName, created); err != nil {
		return err
	}

	rows, err := f.GetRows(s.config.SheetName)
	if err != nil {
		return fmt.Errorf("failed to get rows: %w", err)
	}

	next := len(rows) + 1
	if next < 2 {
		next = 2
	}

	cell, err := excelize.CoordinatesToCellName(1, next)
	if err != nil {
		return err
	}

	row := request.Row()
	if err := f.SetSheetRow(s.config.SheetName, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", next, err)
	}

	if err := f.SaveAs(s.config.FilePath); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// ensureSheet creates the sheet if needed. In a freshly created workbook the
// default sheet is replaced.
func ensureSheet(f *excelize.File, name string, created bool) error {
	index, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("failed to get sheet index: %w", err)
	}
	if index != -1 {
		return nil
	}

	index, err = f.NewSheet(name)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if created {
		if defaultSheet := f.GetSheetName(0); defaultSheet != name {
			_ = f.DeleteSheet(defaultSheet)
		}
	}

	return nil
}
