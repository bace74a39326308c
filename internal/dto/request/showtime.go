package request

type ShowtimeRequest struct {
	MovieID   *int64    `json:"movieId" validate:"required,min=1"`
	Theater   string    `json:"theater" validate:"required,max=100"`
	Price     *float64  `json:"price" validate:"required,gt=0"`
	StartTime *DateTime `json:"startTime" validate:"required"`
	EndTime   *DateTime `json:"endTime" validate:"required"`
}
