package model

import "time"

// BreakWindow is a pause inside a business day, e.g. lunch. Breaks must fall
// strictly within [OpenTime, CloseTime) and must not overlap each other.
type BreakWindow struct {
	Start string `json:"start" bson:"start" validate:"required,wallclock"`
	End   string `json:"end" bson:"end" validate:"required,wallclock"`
}

// BusinessHours describes one weekday of a business's operating calendar.
// One document per business per day-of-week.
type BusinessHours struct {
	ID         string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BusinessID string        `json:"business_id" bson:"business_id" validate:"required,mongodb"`
	Weekday    string        `json:"weekday" bson:"weekday" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	IsOpen     bool          `json:"is_open" bson:"is_open"`
	OpenTime   string        `json:"open_time,omitempty" bson:"open_time,omitempty" validate:"required_if=IsOpen true,omitempty,wallclock"`
	CloseTime  string        `json:"close_time,omitempty" bson:"close_time,omitempty" validate:"required_if=IsOpen true,omitempty,wallclock"`
	Breaks     []BreakWindow `json:"breaks,omitempty" bson:"breaks,omitempty" validate:"omitempty,max=10,dive"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" bson:"updated_at"`
}
