package services

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/westosha-tf/team-portal/internal/models"
)

const (
	calendarProductID = "-//team-portal//schedule//EN"
	calendarName      = "Team Schedule"

	practiceLength = 2 * time.Hour
	meetLength     = 6 * time.Hour
)

// CalendarService publishes the schedule as an iCalendar feed that phones
// and desktop calendars can subscribe to.
type CalendarService struct {
	schedule *ScheduleService
	loc      *time.Location
}

// NewCalendarService creates a new CalendarService. Start times are wall
// clock times in loc.
func NewCalendarService(schedule *ScheduleService, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{
		schedule: schedule,
		loc:      loc,
	}
}

// Feed renders every schedule event. Events without a start time become
// all-day entries.
func (s *CalendarService) Feed(ctx context.Context) (string, error) {
	events, err := s.schedule.List(ctx)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName(calendarName)
	cal.SetXWRTimezone(s.loc.String())

	for _, e := range events {
		vevent := cal.AddEvent(fmt.Sprintf("%s@team-portal", e.ID))
		vevent.SetDtStampTime(e.UpdatedAt)
		vevent.SetSummary(summary(e))
		if e.Location != nil {
			vevent.SetLocation(*e.Location)
		}
		if e.Notes != nil {
			vevent.SetDescription(*e.Notes)
		}

		y, m, d := e.Date.UTC().Date()
		if e.StartTime == nil {
			day := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
			vevent.SetAllDayStartAt(day)
			vevent.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}

		start := time.Date(y, m, d, 0, 0, 0, 0, s.loc).Add(time.Duration(*e.StartTime))
		length := practiceLength
		if e.Type == models.EventTypeMeet {
			length = meetLength
		}
		vevent.SetStartAt(start)
		vevent.SetEndAt(start.Add(length))
	}

	return cal.Serialize(), nil
}

func summary(e models.ScheduleEvent) string {
	if e.Type == models.EventTypeMeet {
		return "MEET: " + e.Title
	}
	return e.Title
}
