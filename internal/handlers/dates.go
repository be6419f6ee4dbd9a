package handlers

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// parseDate accepts the wire format "2006-01-02" (RFC 3339 tolerated) and
// returns nil for an absent value.
func parseDate(value *string) (*datatypes.Date, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, *value)
		if err != nil {
			return nil, errors.New("invalid date, expected YYYY-MM-DD")
		}
	}

	d := datatypes.Date(t)
	return &d, nil
}

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}

	s := time.Time(*d).Format(dateLayout)
	return &s
}
