package googlesheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/sedrickcz/cityvizor"
)

// ProfileSource implements cityvizor.ProfileSource. The worksheet named by
// Config.ListName holds a header row of profile column names followed by one
// profile per row.
type ProfileSource struct {
	*client
}

var _ cityvizor.ProfileSource = (*ProfileSource)(nil)

// NewProfileSource creates a profile source reading from Google Sheets
func NewProfileSource(config Config, opts ...Option) (*ProfileSource, error) {
	c, err := newClient(config, opts)
	if err != nil {
		return nil, err
	}
	return &ProfileSource{client: c}, nil
}

// LoadProfiles reads and decodes every profile row
func (p *ProfileSource) LoadProfiles(ctx context.Context) ([]*cityvizor.Profile, error) {
	if strings.TrimSpace(p.config.CredentialsFile) == "" {
		return nil, ErrNoCredentials
	}

	service, err := p.service(ctx)
	if err != nil {
		return nil, err
	}

	readRange := fmt.Sprintf("%s!A:ZZ", p.config.ListName)
	resp, err := service.Spreadsheets.Values.Get(p.config.DocumentID, readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet data: %w", err)
	}

	records := toRecords(resp.Values)
	profiles := make([]*cityvizor.Profile, 0, len(records))
	for _, record := range records {
		profile, err := cityvizor.DecodeProfile(record)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	p.logger.Info().Int("profiles", len(profiles)).Msg("Profiles loaded")
	return profiles, nil
}

// toRecords maps rows onto the header in the first row; empty rows are skipped
func toRecords(values [][]interface{}) []*cityvizor.Record {
	if len(values) == 0 {
		return []*cityvizor.Record{}
	}

	header := make([]string, len(values[0]))
	for i, v := range values[0] {
		if s, ok := v.(string); ok {
			header[i] = strings.TrimSpace(s)
		}
	}

	records := make([]*cityvizor.Record, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		row := values[i]
		if len(row) == 0 {
			continue
		}

		record := &cityvizor.Record{
			Key:    i + 1,
			Values: make(map[string]interface{}),
		}
		for j := 0; j < len(row) && j < len(header); j++ {
			if header[j] != "" && row[j] != nil {
				record.Values[header[j]] = convertCellValue(row[j])
			}
		}
		records = append(records, record)
	}

	return records
}

// convertCellValue normalises unformatted cell values: JSON numbers arrive as
// float64 and whole numbers are turned into int64
func convertCellValue(v interface{}) interface{} {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return int64(f)
	}
	return v
}
