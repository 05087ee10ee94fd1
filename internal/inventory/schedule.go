package inventory

import (
	"fmt"
	"time"

	"cloud.google.com/go/compute/apiv1/computepb"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	scheduleTimeLayout = "15:04"
	displayTimeLayout  = "03:04 PM"
)

// Schedule is a snapshot schedule. At most one of the cycles is set.
type Schedule struct {
	Weekly *WeeklyCycle `json:"weekly_schedule,omitempty"`
	Daily  *DailyCycle  `json:"daily_schedule,omitempty"`
	Hourly *HourlyCycle `json:"hourly_schedule,omitempty"`
}

type WeeklyCycle struct {
	DayOfWeeks []DayOfWeek `json:"day_of_weeks"`
}

type DayOfWeek struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	Duration  string `json:"duration,omitempty"`
}

type DailyCycle struct {
	DaysInCycle int32  `json:"days_in_cycle"`
	StartTime   string `json:"start_time"`
	Duration    string `json:"duration,omitempty"`
}

type HourlyCycle struct {
	HoursInCycle int32  `json:"hours_in_cycle"`
	StartTime    string `json:"start_time"`
	Duration     string `json:"duration,omitempty"`
}

func convertSchedule(s *computepb.ResourcePolicySnapshotSchedulePolicySchedule) Schedule {
	var out Schedule
	switch {
	case s.GetWeeklySchedule() != nil:
		w := &WeeklyCycle{}
		for _, d := range s.GetWeeklySchedule().GetDayOfWeeks() {
			w.DayOfWeeks = append(w.DayOfWeeks, DayOfWeek{
				Day:       d.GetDay(),
				StartTime: d.GetStartTime(),
				Duration:  d.GetDuration(),
			})
		}
		out.Weekly = w
	case s.GetDailySchedule() != nil:
		d := s.GetDailySchedule()
		out.Daily = &DailyCycle{
			DaysInCycle: d.GetDaysInCycle(),
			StartTime:   d.GetStartTime(),
			Duration:    d.GetDuration(),
		}
	case s.GetHourlySchedule() != nil:
		h := s.GetHourlySchedule()
		out.Hourly = &HourlyCycle{
			HoursInCycle: h.GetHoursInCycle(),
			StartTime:    h.GetStartTime(),
			Duration:     h.GetDuration(),
		}
	}
	return out
}

// ScheduleDisplay renders a schedule as one line per run window. A schedule
// with no cycle renders as an empty list.
func ScheduleDisplay(s Schedule) ([]string, error) {
	display := []string{}
	switch {
	case s.Weekly != nil:
		title := cases.Title(language.English)
		for _, d := range s.Weekly.DayOfWeeks {
			start, end, err := TimeWindow(d.StartTime)
			if err != nil {
				return nil, err
			}
			display = append(display, fmt.Sprintf("%s between %s and %s", title.String(d.Day), start, end))
		}
	case s.Daily != nil:
		start, end, err := TimeWindow(s.Daily.StartTime)
		if err != nil {
			return nil, err
		}
		display = append(display, fmt.Sprintf("Every day between %s and %s", start, end))
	case s.Hourly != nil:
		display = append(display, fmt.Sprintf("Every %d hours", s.Hourly.HoursInCycle))
	}
	return display, nil
}

// TimeWindow returns the 12-hour start and end of a one hour window opening
// at startTime ("HH:MM", 24-hour clock). A window opening at 23:xx closes at
// 12:xx AM.
func TimeWindow(startTime string) (string, string, error) {
	start, err := time.Parse(scheduleTimeLayout, startTime)
	if err != nil {
		return "", "", &MalformedError{Resource: "schedule", Field: "startTime", Reason: err.Error()}
	}
	end := start.Add(time.Hour)
	return start.Format(displayTimeLayout), end.Format(displayTimeLayout), nil
}
