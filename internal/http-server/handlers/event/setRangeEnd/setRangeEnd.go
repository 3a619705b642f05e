package setRangeEnd

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
	"eventRegistrar/internal/registry"
)

type EndRequest struct {
	End   time.Time `json:"end" validate:"required"`
	Force bool      `json:"force"`
}

type EndResponse struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EndSetter
type EndSetter interface {
	SetRangeEnd(id int64, end time.Time, force bool) error
}

func New(log *slog.Logger, ranges EndSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.setRangeEnd.New"

		log = log.With(slog.String("op", op))

		rangeIdStr := chi.URLParam(r, "rangeID")
		if rangeIdStr == "" {
			log.Error("range id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("range id is required"))
			return
		}

		rangeID, err := strconv.ParseInt(rangeIdStr, 10, 64)
		if err != nil {
			log.Error("invalid range id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid range id format"))
			return
		}

		log = log.With(slog.Int64("range_id", rangeID))

		var req EndRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		err = ranges.SetRangeEnd(rangeID, req.End, req.Force)
		if err != nil {
			log.Error("failed to set range end", sl.Err(err))

			if errors.Is(err, registry.ErrRangeNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("range not found"))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to set range end"))
			return
		}

		log.Info("range end updated", slog.Bool("force", req.Force))

		render.JSON(w, r, EndResponse{Response: response.OK()})
	}
}
