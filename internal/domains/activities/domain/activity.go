package domain

import "time"

// Activity is one entry in the storefront activity feed.
type Activity struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	City     string    `json:"city"`
	Date     time.Time `json:"date"`
}
