package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

// ShowtimeResponse refers to its movie by id and to its theater by name.
type ShowtimeResponse struct {
	ID        int64     `json:"id"`
	Price     float64   `json:"price"`
	MovieID   int64     `json:"movieId"`
	Theater   string    `json:"theater"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

func ShowtimeToResponse(showtime *entity.Showtime, theaterName string) ShowtimeResponse {
	return ShowtimeResponse{
		ID:        showtime.ID,
		Price:     showtime.Price,
		MovieID:   showtime.MovieID,
		Theater:   theaterName,
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
	}
}
