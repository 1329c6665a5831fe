package core

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Palette holds the colors offered for new categories.
var Palette = []string{
	"#F44336", "#E91E63", "#9C27B0", "#673AB7",
	"#3F51B5", "#2196F3", "#03A9F4", "#00BCD4",
	"#009688", "#4CAF50", "#8BC34A", "#CDDC39",
	"#FFEB3B", "#FFC107", "#FF9800", "#FF5722",
}

// NewID returns a new unique entity id.
func NewID() string {
	return uuid.NewString()
}

// RandomColor picks a palette color.
func RandomColor() string {
	return Palette[rand.IntN(len(Palette))]
}

// Timestamp formats t as an ISO-8601 UTC timestamp with milliseconds,
// e.g. "2024-01-02T15:04:05.000Z".
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000") + "Z"
}
