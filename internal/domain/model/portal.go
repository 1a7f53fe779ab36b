//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// Announcement is a portal-wide notice shown to signed-in parents.
type Announcement struct {
	ID        string    `json:"id"         db:"id"`
	Title     string    `json:"title"      db:"title"`
	Body      string    `json:"body"       db:"body"`
	Pinned    bool      `json:"pinned"     db:"pinned"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MealPlan is a single day's menu.
type MealPlan struct {
	ID        string    `json:"id"         db:"id"`
	Day       time.Time `json:"day"        db:"day"`
	Breakfast string    `json:"breakfast"  db:"breakfast"`
	Lunch     string    `json:"lunch"      db:"lunch"`
	Snack     string    `json:"snack"      db:"snack"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ClassNews is a post from a class teacher visible to that class's parents.
type ClassNews struct {
	ID        string    `json:"id"         db:"id"`
	ClassName string    `json:"class_name" db:"class_name"`
	Title     string    `json:"title"      db:"title"`
	Body      string    `json:"body"       db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ClassNewsListOptions controls paging and filtering for class news.
type ClassNewsListOptions struct {
	Limit     int
	Offset    int
	ClassName *string // exact match when set
}
