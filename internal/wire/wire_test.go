package wire

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"movie-booking/internal/data/repository/memory"
	"movie-booking/internal/event"
	"movie-booking/pkg/middleware"
	"movie-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newServer(t *testing.T, mode string, limiter middleware.Limiter) *httptest.Server {
	t.Helper()
	config := &utils.Config{App: utils.AppConfig{ErrorStatusMode: mode}}
	app := Wiring(memory.New().Repository(), event.NoopPublisher{}, limiter, config, zaptest.NewLogger(t))

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, body string) (int, envelope) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

const movieBody = `{"title":"test movie","genre":"Action","duration":120,"rating":8.7,"releaseYear":2025}`

func TestBookingFlowOverHTTP(t *testing.T) {
	srv := newServer(t, utils.ErrorStatusLegacy, nil)

	status, env := call(t, srv, http.MethodPost, "/movies", movieBody)
	require.Equal(t, http.StatusOK, status, env.Message)
	var movie struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &movie))
	assert.Equal(t, "Test Movie", movie.Title)

	status, _ = call(t, srv, http.MethodPost, "/theaters", `{"name":"overlap theater","capacity":100}`)
	require.Equal(t, http.StatusOK, status)

	status, env = call(t, srv, http.MethodPost, "/showtimes",
		`{"movieId":1,"theater":"overlap theater","price":20.2,"startTime":"2025-02-14T10:00:00Z","endTime":"2025-02-14T12:00:00Z"}`)
	require.Equal(t, http.StatusOK, status, env.Message)
	var showtime struct {
		ID      int64  `json:"id"`
		MovieID int64  `json:"movieId"`
		Theater string `json:"theater"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &showtime))
	assert.Equal(t, "Overlap Theater", showtime.Theater)
	assert.Equal(t, movie.ID, showtime.MovieID)

	status, env = call(t, srv, http.MethodPost, "/showtimes",
		`{"movieId":1,"theater":"overlap theater","price":20.2,"startTime":"2025-02-14T11:00:00","endTime":"2025-02-14T13:00:00"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, env.Message, "overlaps")

	status, env = call(t, srv, http.MethodPost, "/bookings",
		`{"showtimeId":1,"seatNumber":10,"userId":"84438967-f68f-4fa0-b620-0f08217e76af"}`)
	require.Equal(t, http.StatusOK, status, env.Message)
	var booking struct {
		BookingID string `json:"bookingId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.NotEmpty(t, booking.BookingID)

	status, env = call(t, srv, http.MethodPost, "/bookings",
		`{"showtimeId":1,"seatNumber":10,"userId":"84438967-f68f-4fa0-b620-0f08217e76af"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Seat number 10 is already booked for this showtime.", env.Message)

	status, _ = call(t, srv, http.MethodGet, "/bookings/"+booking.BookingID, "")
	assert.Equal(t, http.StatusOK, status)

	status, env = call(t, srv, http.MethodDelete, "/movies/"+url.PathEscape("test movie"), "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Cannot delete movie because it is used by showtimes with IDs: 1", env.Message)

	status, env = call(t, srv, http.MethodGet, "/movies/all", "")
	assert.Equal(t, http.StatusOK, status)
	var movies []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &movies))
	assert.Len(t, movies, 1)
}

func TestMovieTitlesInPath(t *testing.T) {
	srv := newServer(t, utils.ErrorStatusLegacy, nil)

	for _, title := range []string{"A%41b", "Ac/dc", "Amélie"} {
		body := fmt.Sprintf(`{"title":%q,"genre":"Drama","duration":90,"rating":7.5,"releaseYear":2001}`, title)
		status, env := call(t, srv, http.MethodPost, "/movies", body)
		require.Equal(t, http.StatusOK, status, env.Message)

		status, env = call(t, srv, http.MethodGet, "/movies/"+url.PathEscape(title), "")
		require.Equal(t, http.StatusOK, status, "title %q: %s", title, env.Message)
		var movie struct {
			Title string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &movie))
		assert.Equal(t, title, movie.Title)

		status, env = call(t, srv, http.MethodDelete, "/movies/"+url.PathEscape(title), "")
		assert.Equal(t, http.StatusOK, status, "title %q: %s", title, env.Message)
	}
}

func TestConflictStatusMode(t *testing.T) {
	srv := newServer(t, utils.ErrorStatusConflict, nil)

	status, _ := call(t, srv, http.MethodPost, "/movies", movieBody)
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, srv, http.MethodPost, "/movies", movieBody)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, srv, http.MethodPost, "/showtimes",
		`{"movieId":1,"theater":"hall","price":10,"startTime":"2025-02-14T12:00:00Z","endTime":"2025-02-14T10:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRequestValidation(t *testing.T) {
	srv := newServer(t, utils.ErrorStatusLegacy, nil)

	status, env := call(t, srv, http.MethodPost, "/movies", `{"title":"x","genre":"y","duration":0,"rating":11,"releaseYear":2025}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(env.Errors), "Duration")
	assert.Contains(t, string(env.Errors), "Rating")

	status, _ = call(t, srv, http.MethodPost, "/movies", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, srv, http.MethodPost, "/movies", `{"title":"   ","genre":"y","duration":1,"rating":1,"releaseYear":2025}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, srv, http.MethodGet, "/theaters/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, srv, http.MethodGet, "/theaters/7", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, srv, http.MethodPost, "/bookings", `{"showtimeId":1,"seatNumber":1,"userId":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealth(t *testing.T) {
	srv := newServer(t, utils.ErrorStatusLegacy, nil)

	status, env := call(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Status)
}

func TestRateLimitedRoutes(t *testing.T) {
	limiter := middleware.NewLocalLimiter(0.001, 2)
	srv := newServer(t, utils.ErrorStatusLegacy, limiter)

	for i := 0; i < 2; i++ {
		status, _ := call(t, srv, http.MethodGet, "/movies/all", "")
		assert.Equal(t, http.StatusOK, status)
	}

	status, env := call(t, srv, http.MethodGet, "/movies/all", "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.False(t, env.Status)

	// health stays outside the limited group
	status, _ = call(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
}
