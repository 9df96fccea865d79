package models

import (
	"fmt"
	"time"
)

type Restaurant struct {
	ID                         uint      `gorm:"primaryKey" json:"id"`
	Name                       string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Address                    string    `gorm:"type:varchar(255)" json:"address"`
	City                       string    `gorm:"type:varchar(100)" json:"city"`
	PhoneNumber                string    `gorm:"type:varchar(30)" json:"phone_number"`
	Email                      string    `gorm:"type:varchar(255)" json:"email"`
	CuisineType                string    `gorm:"type:varchar(100)" json:"cuisine_type"`
	Description                string    `gorm:"type:text" json:"description,omitempty"`
	OpeningTime                string    `gorm:"type:varchar(5);not null" json:"opening_time"`
	ClosingTime                string    `gorm:"type:varchar(5);not null" json:"closing_time"`
	ReservationDurationMinutes int       `gorm:"not null;default:120" json:"reservation_duration_minutes"`
	BufferTimeMinutes          int       `gorm:"not null;default:15" json:"buffer_time_minutes"`
	Active                     bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`

	Tables []Table `gorm:"foreignKey:RestaurantID" json:"tables,omitempty"`
}

// WithinOperatingHours reports whether the [start, end) window falls inside
// the restaurant's daily opening hours. Both endpoints are compared by their
// time-of-day component; a window ending exactly at closing time is allowed.
// When the restaurant closes past midnight only the start is checked.
func (r *Restaurant) WithinOperatingHours(start, end time.Time) (bool, error) {
	open, err := minutesOfDay(r.OpeningTime)
	if err != nil {
		return false, fmt.Errorf("opening time %q: %w", r.OpeningTime, err)
	}
	closing, err := minutesOfDay(r.ClosingTime)
	if err != nil {
		return false, fmt.Errorf("closing time %q: %w", r.ClosingTime, err)
	}

	startM := start.Hour()*60 + start.Minute()

	if closing <= open {
		// Overnight window, e.g. 18:00-02:00.
		return startM >= open || startM <= closing, nil
	}

	if startM < open || startM > closing {
		return false, nil
	}

	// The window must not cross midnight and must end by closing time.
	endM := end.Hour()*60 + end.Minute()
	if !end.After(start) {
		return false, nil
	}
	if end.YearDay() != start.YearDay() && endM != 0 {
		return false, nil
	}
	if endM == 0 && end.YearDay() != start.YearDay() {
		endM = 24 * 60
	}
	return endM <= closing, nil
}

func minutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
