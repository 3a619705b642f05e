package cancelRegistration

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"eventRegistrar/internal/lib/api/response"
	"eventRegistrar/internal/lib/logger/sl"
	"eventRegistrar/internal/models"
	"eventRegistrar/internal/registry"
)

type CancelResponse struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Canceller
type Canceller interface {
	CancelParticipant(id int64) error
}

func New(log *slog.Logger, canceller Canceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registration.cancelRegistration.New"

		log = log.With(slog.String("op", op))

		participantIdStr := chi.URLParam(r, "id")
		if participantIdStr == "" {
			log.Error("participant id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("participant id is required"))
			return
		}

		participantID, err := strconv.ParseInt(participantIdStr, 10, 64)
		if err != nil {
			log.Error("invalid participant id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid participant id format"))
			return
		}

		log = log.With(slog.Int64("participant_id", participantID))

		err = canceller.CancelParticipant(participantID)
		if err != nil {
			log.Error("failed to cancel registration", sl.Err(err))

			switch {
			case errors.Is(err, registry.ErrParticipantNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("participant not found"))
			case errors.Is(err, models.ErrMultipleBindings):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error(err.Error()))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to cancel registration"))
			}
			return
		}

		log.Info("registration cancelled")

		render.JSON(w, r, CancelResponse{Response: response.OK()})
	}
}
