package registry

import (
	"strings"
	"time"

	"eventRegistrar/internal/models"
)

// PaymentRecord is one already-parsed line of an external payment ledger.
type PaymentRecord struct {
	Amount    int       `json:"amount"`
	Date      time.Time `json:"date"`
	Reference string    `json:"reference"`
}

// ImportResult aggregates a bulk payment import. Per-record problems never
// abort the batch.
type ImportResult struct {
	Applied   int `json:"applied"`
	Unmatched int `json:"unmatched"`
	Failed    int `json:"failed"`
}

// ApplyPayments matches records against participant variable symbols and
// applies the amounts. Negative amounts are refunds.
func (reg *Registry) ApplyPayments(records []PaymentRecord) (ImportResult, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	bySymbol := make(map[string]*models.Participant)
	for _, participant := range reg.participants {
		if participant.Active() {
			bySymbol[normalizeReference(participant.VariableSymbol())] = participant
		}
	}

	var result ImportResult
	for _, record := range records {
		participant, ok := bySymbol[normalizeReference(record.Reference)]
		if !ok {
			result.Unmatched++
			continue
		}

		participant.Payments = append(participant.Payments, models.Payment{
			Amount:    record.Amount,
			Date:      record.Date,
			Reference: record.Reference,
		})
		if reg.store != nil {
			if err := reg.store.SaveParticipant(participant); err != nil {
				participant.Payments = participant.Payments[:len(participant.Payments)-1]
				result.Failed++
				continue
			}
		}
		result.Applied++
		reg.notify("payment", participant)
	}
	return result, nil
}

// normalizeReference reduces a payment reference to its digits without
// leading zeros, the form variable symbols are compared in.
func normalizeReference(ref string) string {
	var b strings.Builder
	for _, r := range ref {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return strings.TrimLeft(b.String(), "0")
}
