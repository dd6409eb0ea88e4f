package cityvizor

import "time"

// TimeLayout is the layout used for the request time column (dd.MM.yyyy HH:mm)
const TimeLayout = "02.01.2006 15:04"

// CityRequest is a contact/subscription form submission for a city
type CityRequest struct {
	Time      time.Time `json:"time"` // zero value means the time is unknown
	City      string    `json:"city"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Subscribe bool      `json:"subscribe"`
	GDPR      bool      `json:"gdpr"`
	IP        string    `json:"ip"`
}

// FormattedTime returns the request time in TimeLayout or an empty string
// when the time is unknown
func (r *CityRequest) FormattedTime() string {
	if r.Time.IsZero() {
		return ""
	}
	return r.Time.Format(TimeLayout)
}

// Row projects the request into the stored column order:
// time, city, email, name, subscribe, gdpr, ip
func (r *CityRequest) Row() []interface{} {
	return []interface{}{
		r.FormattedTime(),
		r.City,
		r.Email,
		r.Name,
		r.Subscribe,
		r.GDPR,
		r.IP,
	}
}
