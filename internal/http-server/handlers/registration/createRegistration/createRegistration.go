package createRegistration

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"eventRegistrar/internal/lib/api/response"
	"eventRegistrar/internal/lib/logger/sl"
	"eventRegistrar/internal/models"
	"eventRegistrar/internal/registry"
)

type FlagChoice struct {
	OfferID   int64  `json:"offer_id" validate:"required"`
	TextValue string `json:"text_value,omitempty"`
}

type RegistrationRequest struct {
	ContactID     int64                  `json:"contact_id" validate:"required"`
	Category      string                 `json:"category,omitempty"`
	Flags         map[int64][]FlagChoice `json:"flags,omitempty"`
	Admin         bool                   `json:"admin"`
	AllowOverflow bool                   `json:"allow_overflow"`
}

type RegistrationResponse struct {
	response.Response
	Result registry.RegistrationResult `json:"result"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Registrar
type Registrar interface {
	RegisterParticipant(req registry.RegistrationRequest) (registry.RegistrationResult, error)
}

func New(log *slog.Logger, registrar Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registration.createRegistration.New"

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

		var req RegistrationRequest

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
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		result, err := registrar.RegisterParticipant(toEngineRequest(rangeID, req))
		if err != nil {
			log.Error("failed to register participant", sl.Err(err))
			writeEngineError(w, r, err)
			return
		}

		log.Info("participant registered",
			slog.Int64("participant_id", result.ParticipantID),
			slog.String("variable_symbol", result.VariableSymbol),
		)

		render.JSON(w, r, RegistrationResponse{
			Response: response.OK(),
			Result:   result,
		})
	}
}

func toEngineRequest(rangeID int64, req RegistrationRequest) registry.RegistrationRequest {
	engineReq := registry.RegistrationRequest{
		ContactID:     req.ContactID,
		RangeID:       rangeID,
		Category:      req.Category,
		Admin:         req.Admin,
		AllowOverflow: req.AllowOverflow,
	}
	if len(req.Flags) > 0 {
		engineReq.Flags = make(map[int64][]registry.FlagSelection, len(req.Flags))
		for groupID, choices := range req.Flags {
			for _, choice := range choices {
				engineReq.Flags[groupID] = append(engineReq.Flags[groupID], registry.FlagSelection{
					OfferID:   choice.OfferID,
					TextValue: choice.TextValue,
				})
			}
		}
	}
	return engineReq
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrCapacityExceeded):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, models.ErrOutOfRange), errors.Is(err, models.ErrPriceInvalid):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, models.ErrInvalidType):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, models.ErrNotImplemented):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, registry.ErrSuperEventRequired):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, registry.ErrRangeNotFound),
		errors.Is(err, registry.ErrContactNotFound),
		errors.Is(err, registry.ErrParticipantNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(err.Error()))
	default:
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register participant"))
	}
}
