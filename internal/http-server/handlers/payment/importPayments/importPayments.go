package importPayments

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"eventRegistrar/internal/lib/api/response"
	"eventRegistrar/internal/lib/logger/sl"
	"eventRegistrar/internal/registry"
)

type PaymentRecord struct {
	Amount    int       `json:"amount" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Reference string    `json:"reference" validate:"required"`
}

type ImportRequest struct {
	Records []PaymentRecord `json:"records" validate:"required,min=1,dive"`
}

type ImportResponse struct {
	response.Response
	Result registry.ImportResult `json:"result"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentImporter
type PaymentImporter interface {
	ApplyPayments(records []registry.PaymentRecord) (registry.ImportResult, error)
}

func New(log *slog.Logger, importer PaymentImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.importPayments.New"

		log = log.With(slog.String("op", op))

		var req ImportRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Int("records", len(req.Records)))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		records := make([]registry.PaymentRecord, 0, len(req.Records))
		for _, record := range req.Records {
			records = append(records, registry.PaymentRecord{
				Amount:    record.Amount,
				Date:      record.Date,
				Reference: record.Reference,
			})
		}

		result, err := importer.ApplyPayments(records)
		if err != nil {
			log.Error("failed to import payments", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to import payments"))
			return
		}

		log.Info("payments imported",
			slog.Int("applied", result.Applied),
			slog.Int("unmatched", result.Unmatched),
			slog.Int("failed", result.Failed),
		)

		render.JSON(w, r, ImportResponse{
			Response: response.OK(),
			Result:   result,
		})
	}
}
