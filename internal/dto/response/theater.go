package response

import "movie-booking/internal/data/entity"

type TheaterResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func TheaterToResponse(theater *entity.Theater) TheaterResponse {
	return TheaterResponse{
		ID:       theater.ID,
		Name:     theater.Name,
		Capacity: theater.Capacity,
	}
}

func TheatersToResponse(theaters []*entity.Theater) []TheaterResponse {
	out := make([]TheaterResponse, len(theaters))
	for i, theater := range theaters {
		out[i] = TheaterToResponse(theater)
	}
	return out
}
