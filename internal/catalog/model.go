package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by shop dates and last-seen dates.
const DateLayout = "2006-01-02"

// newLabel marks an item that has no prior shop appearance.
const newLabel = "NEW!"

// Recency describes how long ago an item was last offered.
type Recency struct {
	New  bool `json:"new"`
	Days int  `json:"days"`
}

// Label returns the text printed on the item card.
func (r Recency) Label() string {
	if r.New {
		return newLabel
	}
	unit := "days"
	if r.Days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("LAST SEEN: %d %s ago", r.Days, unit)
}

// Item is one shop entry ready to be rendered onto a card.
type Item struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Price   int     `json:"price"`
	Recency Recency `json:"recency"`
	Image   string  `json:"image"`
	Bundle  bool    `json:"bundle"`
}

// Entry is the raw manifest form of an item, as read from CSV or JSON.
type Entry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	LastSeen string `json:"last_seen"`
	Image    string `json:"image"`
	Bundle   bool   `json:"bundle"`
}

// Item converts the entry into an Item, deriving recency against shopDate.
// An empty or "NEW!" last-seen value marks the item as new. A last-seen date on
// or after the shop date counts as one day.
func (e Entry) Item(shopDate time.Time) (Item, error) {
	id := strings.TrimSpace(e.ID)
	if id == "" {
		return Item{}, fmt.Errorf("entry %q: missing id", e.Name)
	}
	if strings.TrimSpace(e.Image) == "" {
		return Item{}, fmt.Errorf("entry %s: missing image", id)
	}
	rec, err := ParseRecency(e.LastSeen, shopDate)
	if err != nil {
		return Item{}, fmt.Errorf("entry %s: %w", id, err)
	}
	return Item{
		ID:      id,
		Name:    strings.TrimSpace(e.Name),
		Price:   e.Price,
		Recency: rec,
		Image:   strings.TrimSpace(e.Image),
		Bundle:  e.Bundle,
	}, nil
}

// ParseRecency derives a Recency from a last-seen value. The value may be a
// date (only the first ten characters are considered), a plain day count, or
// empty/"NEW!" for new items.
func ParseRecency(lastSeen string, shopDate time.Time) (Recency, error) {
	v := strings.TrimSpace(lastSeen)
	if v == "" || strings.EqualFold(v, newLabel) {
		return Recency{New: true}, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return Recency{Days: max(n, 1)}, nil
	}
	if len(v) > len(DateLayout) {
		v = v[:len(DateLayout)]
	}
	seen, err := time.Parse(DateLayout, v)
	if err != nil {
		return Recency{}, fmt.Errorf("parse last seen %q: %w", lastSeen, err)
	}
	days := int(truncateDay(shopDate).Sub(seen).Hours() / 24)
	return Recency{Days: max(days, 1)}, nil
}

// ParseShopDate parses a shop date, accepting full timestamps by keeping the
// calendar part. An empty value yields the current day in UTC.
func ParseShopDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return truncateDay(time.Now().UTC()), nil
	}
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse shop date %q: %w", s, err)
	}
	return t, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
