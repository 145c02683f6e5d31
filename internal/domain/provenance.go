package domain

// Source records whether a value came from a live external service or from a
// local fallback.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Location is a resolved project site.
type Location struct {
	Point  Coordinates
	Source Source
}

// Distance is the truck distance from the supply port to the project site.
type Distance struct {
	Kilometers float64
	Source     Source
}
