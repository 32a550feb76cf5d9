package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"legends-bot/internal/domain"
	"legends-bot/pkg/database"
	apperrors "legends-bot/pkg/errors"
)

type PostgresSlotRepository struct {
	db *database.PostgresDB
}

func NewPostgresSlotRepository(db *database.PostgresDB) *PostgresSlotRepository {
	return &PostgresSlotRepository{db: db}
}

// GetAll retrieves every slot with its reservations
func (r *PostgresSlotRepository) GetAll(ctx context.Context) ([]*domain.Slot, error) {
	return r.fetchSlots(ctx, `SELECT id, start_time, site, capacity FROM slots ORDER BY start_time`)
}

// GetByStart retrieves the slots beginning at the given time
func (r *PostgresSlotRepository) GetByStart(ctx context.Context, start time.Time) ([]*domain.Slot, error) {
	return r.fetchSlots(ctx,
		`SELECT id, start_time, site, capacity FROM slots WHERE start_time = $1 ORDER BY id`, start)
}

// GetByID retrieves one slot
func (r *PostgresSlotRepository) GetByID(ctx context.Context, id domain.SlotID) (*domain.Slot, error) {
	slots, err := r.fetchSlots(ctx,
		`SELECT id, start_time, site, capacity FROM slots WHERE id = $1`, string(id))
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("slot %s not found", id))
	}
	return slots[0], nil
}

func (r *PostgresSlotRepository) fetchSlots(ctx context.Context, query string, args ...interface{}) ([]*domain.Slot, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get slots: %w", err)
	}
	defer rows.Close()

	type slotRow struct {
		id       string
		start    time.Time
		site     string
		capacity int
	}
	var slotRows []slotRow
	for rows.Next() {
		var sr slotRow
		if err := rows.Scan(&sr.id, &sr.start, &sr.site, &sr.capacity); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slotRows = append(slotRows, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slots := make([]*domain.Slot, 0, len(slotRows))
	for _, sr := range slotRows {
		reservations, err := r.fetchReservations(ctx, sr.id)
		if err != nil {
			return nil, err
		}
		slots = append(slots, domain.RestoreSlot(
			domain.SlotID(sr.id),
			sr.start,
			domain.Site(sr.site),
			domain.Places(sr.capacity),
			reservations,
		))
	}
	return slots, nil
}

func (r *PostgresSlotRepository) fetchReservations(ctx context.Context, slotID string) ([]domain.Reservation, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT team_id, places FROM reservations WHERE slot_id = $1`, slotID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var (
			teamID string
			places int
		)
		if err := rows.Scan(&teamID, &places); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, domain.Reservation{
			TeamID: domain.TeamID(teamID),
			Places: domain.Places(places),
		})
	}
	return reservations, rows.Err()
}

// Save rewrites the slot and its reservations in one transaction
func (r *PostgresSlotRepository) Save(ctx context.Context, slot *domain.Slot) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := saveSlotTx(ctx, tx, slot); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit slot save: %w", err)
	}
	return nil
}

// saveSlotTx rewrites a slot aggregate inside the given transaction.
// Shared with the cross-aggregate unit of work.
func saveSlotTx(ctx context.Context, tx pgx.Tx, slot *domain.Slot) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO slots (id, start_time, site, capacity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET start_time = EXCLUDED.start_time,
		    site = EXCLUDED.site,
		    capacity = EXCLUDED.capacity
	`, string(slot.ID()), slot.Start(), string(slot.Site()), int(slot.Capacity()))
	if err != nil {
		return fmt.Errorf("failed to save slot: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM reservations WHERE slot_id = $1`, string(slot.ID())); err != nil {
		return fmt.Errorf("failed to clear reservations: %w", err)
	}
	for _, res := range slot.Reservations() {
		_, err := tx.Exec(ctx,
			`INSERT INTO reservations (slot_id, team_id, places) VALUES ($1, $2, $3)`,
			string(slot.ID()), string(res.TeamID), int(res.Places))
		if err != nil {
			return fmt.Errorf("failed to save reservation: %w", err)
		}
	}
	return nil
}
