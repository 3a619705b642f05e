package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"eventRegistrar/internal/config"
	"eventRegistrar/internal/models"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) SaveEvent(e *models.Event) error {
	query := `
		INSERT INTO events (id, name, start_at, end_at, parent_id, price_recursive)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    start_at = EXCLUDED.start_at,
		    end_at = EXCLUDED.end_at,
		    parent_id = EXCLUDED.parent_id,
		    price_recursive = EXCLUDED.price_recursive`

	_, err := s.DB.Exec(query, e.ID, e.Name, e.Dates.Start, e.Dates.End, e.ParentID, e.PriceRecursiveFromParent)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	return nil
}

func (s *Storage) SaveRange(r *models.RegistrationRange) error {
	query := `
		INSERT INTO ranges (id, event_id, name, category, start_at, end_at,
			capacity, full_capacity, usage, full_usage, price, deposit,
			relative, required_range_id, super_event_required)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    category = EXCLUDED.category,
		    start_at = EXCLUDED.start_at,
		    end_at = EXCLUDED.end_at,
		    capacity = EXCLUDED.capacity,
		    full_capacity = EXCLUDED.full_capacity,
		    price = EXCLUDED.price,
		    deposit = EXCLUDED.deposit,
		    relative = EXCLUDED.relative,
		    required_range_id = EXCLUDED.required_range_id,
		    super_event_required = EXCLUDED.super_event_required`

	_, err := s.DB.Exec(query,
		r.ID, r.EventID, r.Name, nullString(r.Category), r.Dates.Start, r.Dates.End,
		nullInt(r.Capacity.Base), nullInt(r.Capacity.Full), r.Usage.Base, r.Usage.Full,
		r.Pricing.Price, r.Pricing.Deposit, r.Relative, r.RequiredRangeID, r.SuperEventRequired,
	)
	if err != nil {
		return fmt.Errorf("failed to save range: %w", err)
	}

	return nil
}

func (s *Storage) SaveFlagOffer(o *models.FlagOffer) error {
	query := `
		INSERT INTO flag_offers (id, group_offer_id, name, price, deposit,
			capacity, full_capacity, usage, full_usage, min_count, max_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    price = EXCLUDED.price,
		    deposit = EXCLUDED.deposit,
		    capacity = EXCLUDED.capacity,
		    full_capacity = EXCLUDED.full_capacity,
		    min_count = EXCLUDED.min_count,
		    max_count = EXCLUDED.max_count`

	_, err := s.DB.Exec(query,
		o.ID, o.GroupID, o.Name, o.Pricing.Price, o.Pricing.Deposit,
		nullInt(o.Capacity.Base), nullInt(o.Capacity.Full), o.Usage.Base, o.Usage.Full,
		o.Min, o.Max,
	)
	if err != nil {
		return fmt.Errorf("failed to save flag offer: %w", err)
	}

	return nil
}

// SaveParticipant writes a participant with its bindings, flag selections and
// payments in one transaction. For every live binding the range row is locked
// FOR UPDATE, the active binding count is re-checked against the full
// capacity, and the usage counters are rewritten before COMMIT, so two
// concurrent submissions can never both slip past the last seat.
func (s *Storage) SaveParticipant(p *models.Participant) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO participants (id, contact_id, category, token, created_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET category = EXCLUDED.category,
		    deleted_at = EXCLUDED.deleted_at`

	_, err = tx.Exec(query, p.ID, p.ContactID, nullString(p.Category), p.Token.String(), p.CreatedAt, p.DeletedAt)
	if err != nil {
		return fmt.Errorf("failed to save participant: %w", err)
	}

	for _, b := range p.Bindings {
		query = `
			INSERT INTO participant_bindings (participant_id, range_id, created_at, deleted_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (participant_id, range_id, created_at) DO UPDATE
			SET deleted_at = EXCLUDED.deleted_at`

		_, err = tx.Exec(query, p.ID, b.RangeID, b.CreatedAt, b.DeletedAt)
		if err != nil {
			return fmt.Errorf("failed to save binding: %w", err)
		}

		if b.Active() {
			if err = s.guardAndRecount(tx, b.RangeID); err != nil {
				return err
			}
		}
	}

	for _, g := range p.Groups {
		for _, sel := range g.Selections {
			query = `
				INSERT INTO flag_selections (id, participant_id, group_offer_id, flag_offer_id, activated, deleted_at, text_value)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (id) DO UPDATE
				SET activated = EXCLUDED.activated,
				    deleted_at = EXCLUDED.deleted_at,
				    text_value = EXCLUDED.text_value`

			_, err = tx.Exec(query, sel.ID, p.ID, g.GroupOfferID, sel.FlagOfferID, sel.Activated, sel.DeletedAt, nullString(sel.TextValue))
			if err != nil {
				return fmt.Errorf("failed to save flag selection: %w", err)
			}
		}
	}

	query = `DELETE FROM payments WHERE participant_id = $1`
	if _, err = tx.Exec(query, p.ID); err != nil {
		return fmt.Errorf("failed to rewrite payments: %w", err)
	}
	for _, payment := range p.Payments {
		query = `
			INSERT INTO payments (participant_id, amount, paid_at, reference)
			VALUES ($1, $2, $3, $4)`

		_, err = tx.Exec(query, p.ID, payment.Amount, payment.Date, nullString(payment.Reference))
		if err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
	}

	return tx.Commit()
}

// guardAndRecount locks the range row, recounts live bindings and rejects
// when the administrative hard limit is exceeded. The base limit is the
// engine's business; the database only defends the full one.
func (s *Storage) guardAndRecount(tx *sql.Tx, rangeID int64) error {
	var fullCapacity sql.NullInt64
	query := `
		SELECT full_capacity
		FROM ranges
		WHERE id = $1
		FOR UPDATE`

	if err := tx.QueryRow(query, rangeID).Scan(&fullCapacity); err != nil {
		return fmt.Errorf("failed to lock range: %w", err)
	}

	var active int
	query = `
		SELECT COUNT(*)
		FROM participant_bindings b
		JOIN participants p ON p.id = b.participant_id
		WHERE b.range_id = $1 AND b.deleted_at IS NULL AND p.deleted_at IS NULL`

	if err := tx.QueryRow(query, rangeID).Scan(&active); err != nil {
		return fmt.Errorf("failed to count bindings: %w", err)
	}

	if fullCapacity.Valid && int64(active) > fullCapacity.Int64 {
		return &models.CapacityExceededError{Subject: fmt.Sprintf("range %d", rangeID)}
	}

	query = `
		UPDATE ranges
		SET usage = $2, full_usage = $2
		WHERE id = $1`

	if _, err := tx.Exec(query, rangeID, active); err != nil {
		return fmt.Errorf("failed to update usage: %w", err)
	}

	return nil
}

func (s *Storage) SaveUsage(rangeID int64, usage models.UsagePair, offerUsage map[int64]models.UsagePair) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE ranges
		SET usage = $2, full_usage = $3
		WHERE id = $1`

	if _, err = tx.Exec(query, rangeID, usage.Base, usage.Full); err != nil {
		return fmt.Errorf("failed to save range usage: %w", err)
	}

	for offerID, u := range offerUsage {
		query = `
			UPDATE flag_offers
			SET usage = $2, full_usage = $3
			WHERE id = $1`

		if _, err = tx.Exec(query, offerID, u.Base, u.Full); err != nil {
			return fmt.Errorf("failed to save flag offer usage: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Storage) GetRange(id int64) (*models.RegistrationRange, error) {
	query := `
		SELECT id, event_id, name, category, start_at, end_at,
		       capacity, full_capacity, usage, full_usage, price, deposit,
		       relative, required_range_id, super_event_required
		FROM ranges
		WHERE id = $1`

	var (
		r                 models.RegistrationRange
		category          sql.NullString
		startAt, endAt    sql.NullTime
		capacity, fullCap sql.NullInt64
		requiredID        sql.NullInt64
	)
	err := s.DB.QueryRow(query, id).Scan(
		&r.ID, &r.EventID, &r.Name, &category, &startAt, &endAt,
		&capacity, &fullCap, &r.Usage.Base, &r.Usage.Full,
		&r.Pricing.Price, &r.Pricing.Deposit,
		&r.Relative, &requiredID, &r.SuperEventRequired,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("range not found")
		}
		return nil, fmt.Errorf("failed to get range: %w", err)
	}

	r.Category = category.String
	r.Dates = models.DateInterval{Start: nullableTime(startAt), End: nullableTime(endAt)}
	r.Capacity = models.CapacityPair{Base: nullableInt(capacity), Full: nullableInt(fullCap)}
	if requiredID.Valid {
		r.RequiredRangeID = &requiredID.Int64
	}

	return &r, nil
}

// CountActiveBindings counts a range's bindings; includeDeleted switches to
// the full audit history.
func (s *Storage) CountActiveBindings(rangeID int64, includeDeleted bool) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM participant_bindings b
		JOIN participants p ON p.id = b.participant_id
		WHERE b.range_id = $1`
	if !includeDeleted {
		query += ` AND b.deleted_at IS NULL AND p.deleted_at IS NULL`
	}

	var count int
	if err := s.DB.QueryRow(query, rangeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bindings: %w", err)
	}

	return count, nil
}

// CountActiveSelections counts the live selections of one flag offer.
func (s *Storage) CountActiveSelections(flagOfferID int64, includeDeleted bool) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM flag_selections s
		JOIN participants p ON p.id = s.participant_id
		WHERE s.flag_offer_id = $1 AND s.activated = true`
	if !includeDeleted {
		query += ` AND s.deleted_at IS NULL AND p.deleted_at IS NULL`
	}

	var count int
	if err := s.DB.QueryRow(query, flagOfferID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count flag selections: %w", err)
	}

	return count, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
