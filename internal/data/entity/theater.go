package entity

// DefaultTheaterCapacity is used when a theater is created implicitly by a showtime.
const DefaultTheaterCapacity = 100

type Theater struct {
	Base
	Name     string `db:"name"`
	Capacity int    `db:"capacity"`
}
