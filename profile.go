package cityvizor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the visibility of a profile
type Status string

const (
	StatusVisible Status = "visible"
	StatusHidden  Status = "hidden"
	StatusPending Status = "pending"
	StatusPreview Status = "preview"
)

// ParseStatus converts s into a Status, rejecting anything outside the four
// known values
func ParseStatus(s string) (Status, error) {
	status := Status(strings.TrimSpace(s))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusVisible, StatusHidden, StatusPending, StatusPreview:
		return true
	}
	return false
}

func (s *Status) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Profile describes a municipality (or another entity of interest) for display
type Profile struct {
	ID             int64   `json:"id"`
	Status         Status  `json:"status"`
	Main           bool    `json:"main"`
	URL            string  `json:"url"`
	Name           string  `json:"name"`
	Entity         any     `json:"entity"`
	GPSX           float64 `json:"gpsX"`
	GPSY           float64 `json:"gpsY"`
	Ico            string  `json:"ico"`
	Edesky         int64   `json:"edesky"`
	MapaSamospravy int64   `json:"mapasamospravy"`
	AvatarType     string  `json:"avatarType"`
	AvatarURL      string  `json:"avatarUrl"`
}

// Profile column names, shared by spreadsheet headers and query conditions
const (
	ColumnID             = "id"
	ColumnStatus         = "status"
	ColumnMain           = "main"
	ColumnURL            = "url"
	ColumnName           = "name"
	ColumnEntity         = "entity"
	ColumnGPSX           = "gpsX"
	ColumnGPSY           = "gpsY"
	ColumnIco            = "ico"
	ColumnEdesky         = "edesky"
	ColumnMapaSamospravy = "mapasamospravy"
	ColumnAvatarType     = "avatarType"
	ColumnAvatarURL      = "avatarUrl"
)

// ProfileColumns lists the profile columns in their conventional sheet order
var ProfileColumns = []string{
	ColumnID, ColumnStatus, ColumnMain, ColumnURL, ColumnName, ColumnEntity,
	ColumnGPSX, ColumnGPSY, ColumnIco, ColumnEdesky, ColumnMapaSamospravy,
	ColumnAvatarType, ColumnAvatarURL,
}

// Record projects the profile onto a column map so it can be matched against
// a Query
func (p *Profile) Record() *Record {
	r := &Record{Key: int(p.ID)}
	r.SetInt64(ColumnID, p.ID)
	r.SetString(ColumnStatus, string(p.Status))
	r.SetBool(ColumnMain, p.Main)
	r.SetString(ColumnURL, p.URL)
	r.SetString(ColumnName, p.Name)
	if p.Entity != nil {
		r.set(ColumnEntity, p.Entity)
	}
	r.SetFloat64(ColumnGPSX, p.GPSX)
	r.SetFloat64(ColumnGPSY, p.GPSY)
	r.SetString(ColumnIco, p.Ico)
	r.SetInt64(ColumnEdesky, p.Edesky)
	r.SetInt64(ColumnMapaSamospravy, p.MapaSamospravy)
	r.SetString(ColumnAvatarType, p.AvatarType)
	r.SetString(ColumnAvatarURL, p.AvatarURL)
	return r
}

// DecodeProfile builds a profile from a spreadsheet row. A missing status
// defaults to hidden; an unknown one is an error.
func DecodeProfile(r *Record) (*Profile, error) {
	status := StatusHidden
	if s := r.GetAsString(ColumnStatus, ""); s != "" {
		parsed, err := ParseStatus(s)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r.Key, err)
		}
		status = parsed
	}

	return &Profile{
		ID:             r.GetAsInt64(ColumnID, 0),
		Status:         status,
		Main:           r.GetAsBool(ColumnMain, false),
		URL:            r.GetAsString(ColumnURL, ""),
		Name:           r.GetAsString(ColumnName, ""),
		Entity:         decodeEntity(r.Values[ColumnEntity]),
		GPSX:           r.GetAsFloat64(ColumnGPSX, 0),
		GPSY:           r.GetAsFloat64(ColumnGPSY, 0),
		Ico:            r.GetAsString(ColumnIco, ""),
		Edesky:         r.GetAsInt64(ColumnEdesky, 0),
		MapaSamospravy: r.GetAsInt64(ColumnMapaSamospravy, 0),
		AvatarType:     r.GetAsString(ColumnAvatarType, ""),
		AvatarURL:      r.GetAsString(ColumnAvatarURL, ""),
	}, nil
}

// decodeEntity expands JSON stored in a cell; anything else is kept verbatim
func decodeEntity(v interface{}) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		var payload any
		if err := json.Unmarshal([]byte(s), &payload); err == nil {
			return payload
		}
	}
	return s
}
