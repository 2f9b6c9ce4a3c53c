package domain

// City reference lookup, seeded out-of-band
type City struct {
	ID   int64
	Name string
}
