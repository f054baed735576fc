package domain

import "time"

type ScheduledGame struct {
	ID           string
	StartTimeUTC time.Time
	HomeTeam     string
	AwayTeam     string
}

type ScheduleDay struct {
	Date  string
	Games []ScheduledGame
}

type Schedule struct {
	Days      []ScheduleDay
	QueriedAt time.Time
}

// NextGame is the first game in the schedule involving a team
type NextGame struct {
	Team         string
	Opponent     string
	IsHome       bool
	IsToday      bool
	StartTimeUTC time.Time
}
