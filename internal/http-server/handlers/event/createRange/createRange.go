package createRange

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"eventRegistrar/internal/lib/api/response"
	"eventRegistrar/internal/lib/logger/sl"
	"eventRegistrar/internal/models"
	"eventRegistrar/internal/registry"
)

type RangeRequest struct {
	Name               string     `json:"name" validate:"required"`
	Category           string     `json:"category,omitempty"`
	Start              *time.Time `json:"start,omitempty"`
	End                *time.Time `json:"end,omitempty"`
	Capacity           *int       `json:"capacity,omitempty"`
	FullCapacity       *int       `json:"full_capacity,omitempty"`
	Price              int        `json:"price"`
	Deposit            int        `json:"deposit"`
	Relative           bool       `json:"relative"`
	RequiredRangeID    *int64     `json:"required_range_id,omitempty"`
	SuperEventRequired bool       `json:"super_event_required"`
}

type RangeResponse struct {
	response.Response
	RangeId int64 `json:"range_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RangeCreator
type RangeCreator interface {
	CreateRange(params registry.CreateRangeParams) (int64, error)
}

func New(log *slog.Logger, ranges RangeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createRange.New"

		log = log.With(slog.String("op", op))

		eventIdStr := chi.URLParam(r, "id")
		if eventIdStr == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		eventID, err := strconv.ParseInt(eventIdStr, 10, 64)
		if err != nil {
			log.Error("invalid event id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		var req RangeRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		rangeId, err := ranges.CreateRange(registry.CreateRangeParams{
			EventID:            eventID,
			Name:               req.Name,
			Category:           req.Category,
			Dates:              models.Interval(req.Start, req.End),
			Capacity:           models.Capacity(req.Capacity, req.FullCapacity),
			Pricing:            models.Price(req.Price, req.Deposit),
			Relative:           req.Relative,
			RequiredRangeID:    req.RequiredRangeID,
			SuperEventRequired: req.SuperEventRequired,
		})
		if err != nil {
			log.Error("failed to add range", sl.Err(err))

			switch {
			case errors.Is(err, registry.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, registry.ErrRangeNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("required range not found"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to add range"))
			}
			return
		}

		log.Info("range added", slog.Int64("id", rangeId))

		render.JSON(w, r, RangeResponse{
			Response: response.OK(),
			RangeId:  rangeId,
		})
	}
}
