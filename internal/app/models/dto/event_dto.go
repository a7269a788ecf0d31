package dto

import "time"

// EventRequest is the create/update payload for events
type EventRequest struct {
	IconType string    `json:"iconType" binding:"required"`
	Title    string    `json:"title" binding:"required"`
	DateTime time.Time `json:"dateTime" binding:"required"`
	Students []int64   `json:"students"`
	Teacher  *int64    `json:"teacher"`
	Level    *int64    `json:"level"`
}

// EventView is an event with its references expanded for display
type EventView struct {
	ID       int64       `json:"id"`
	IconType string      `json:"iconType"`
	Title    string      `json:"title"`
	DateTime time.Time   `json:"dateTime"`
	Students []PersonRef `json:"students"`
	Teacher  *PersonRef  `json:"teacher,omitempty"`
	Level    *LevelRef   `json:"level,omitempty"`
}
