package chrono

import (
	"time"
	_ "time/tzdata"
)

// Kyiv is the timezone the schedule site publishes its timetable in.
const Kyiv = "Europe/Kyiv"

type API interface {
	Now() time.Time
	Location() *time.Location
}

type StandardImpl struct {
	location *time.Location
}

func NewStandardImpl() (StandardImpl, error) {
	location, err := time.LoadLocation(Kyiv)
	if err != nil {
		return StandardImpl{}, err
	}
	return StandardImpl{location: location}, nil
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

// FixedImpl always reports the same instant, it is used in tests.
type FixedImpl struct {
	At time.Time
}

func (f FixedImpl) Now() time.Time {
	return f.At
}

func (f FixedImpl) Location() *time.Location {
	return f.At.Location()
}
