package excel

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sedrickcz/cityvizor"
	"github.com/xuri/excelize/v2"
)

// ProfileSource implements cityvizor.ProfileSource on an Excel sheet whose
// first row names the profile columns
type ProfileSource struct {
	config *Config
}

var _ cityvizor.ProfileSource = (*ProfileSource)(nil)

// NewProfileSource creates a profile source reading from an Excel workbook
func NewProfileSource(config *Config) (*ProfileSource, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	configCopy := *config
	return &ProfileSource{config: &configCopy}, nil
}

// LoadProfiles reads and decodes every profile row. A missing workbook or
// sheet yields no profiles.
func (p *ProfileSource) LoadProfiles(ctx context.Context) ([]*cityvizor.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(p.config.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*cityvizor.Profile{}, nil
		}
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	index, err := f.GetSheetIndex(p.config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet index: %w", err)
	}
	if index == -1 {
		return []*cityvizor.Profile{}, nil
	}

	rows, err := f.GetRows(p.config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return []*cityvizor.Profile{}, nil
	}

	header := rows[0]
	profiles := make([]*cityvizor.Profile, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}

		// cells stay text; DecodeProfile converts per column so codes like
		// ICO keep their leading zeros
		record := &cityvizor.Record{
			Key:    i + 1,
			Values: make(map[string]interface{}),
		}
		for j, value := range row {
			if j < len(header) && strings.TrimSpace(header[j]) != "" && value != "" {
				record.Values[strings.TrimSpace(header[j])] = value
			}
		}

		profile, err := cityvizor.DecodeProfile(record)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}
