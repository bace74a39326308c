package request

type MovieRequest struct {
	Title       string   `json:"title" validate:"required"`
	Genre       string   `json:"genre" validate:"required"`
	Duration    *int     `json:"duration" validate:"required,min=1"`
	Rating      *float64 `json:"rating" validate:"required,gte=0,lte=10"`
	ReleaseYear *int     `json:"releaseYear" validate:"required,min=1000,max=9999"`
}
