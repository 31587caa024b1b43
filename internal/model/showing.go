package model

import "time"

// Showing 某部電影在某影城某廳的一個場次
type Showing struct {
	ShowingTimeID int       `json:"showingTimeId" db:"id"`
	MovieName     string    `json:"movieName" db:"movie_name"`
	CinemaName    string    `json:"cinemaName" db:"cinema_name"`
	RoomName      string    `json:"roomName" db:"room_name"`
	StartsAt      time.Time `json:"startsAt" db:"starts_at"`
}

// DisplayTime 顯示用的開演時間
func (s Showing) DisplayTime() string {
	return s.StartsAt.Format("15:04 02/01/2006")
}
