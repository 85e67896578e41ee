package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/models"
)

var referralColumns = []string{
	"id", "referrer_id", "company", "position", "application_date",
	"interview_date", "status", "notes", "created_at", "updated_at",
}

const referralReturning = `RETURNING id, referrer_id, company, position, application_date, interview_date, status, notes, created_at, updated_at`

// referralRepository is the SQL-backed implementation of [ReferralRepository]
// over the "referrals" table.
type referralRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewReferralRepository constructs a [ReferralRepository] backed by the
// provided database connection and logger.
func NewReferralRepository(db *DB, logger *logger.Logger) ReferralRepository {
	logger.Debug().Msg("creating referral repository")
	return &referralRepository{
		db:     db,
		logger: logger,
	}
}

func scanReferral(s rowScanner) (models.Referral, error) {
	var ref models.Referral
	var applicationDate sql.Null[models.Date]
	var interviewDate sql.Null[models.Date]
	var updatedAt sql.NullTime

	err := s.Scan(
		&ref.ID, &ref.ReferrerID, &ref.Company, &ref.Position, &applicationDate,
		&interviewDate, &ref.Status, &ref.Notes, &ref.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.Referral{}, err
	}

	if applicationDate.Valid {
		d := applicationDate.V
		ref.ApplicationDate = &d
	}
	if interviewDate.Valid {
		d := interviewDate.V
		ref.InterviewDate = &d
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		ref.UpdatedAt = &t
	}

	return ref, nil
}

// Create persists a new referral. A foreign key violation on the referrer
// maps to [ErrPersonReferenceMissing].
func (r *referralRepository) Create(ctx context.Context, ref models.Referral) (models.Referral, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(ref.TableName()).
		Columns("referrer_id", "company", "position", "application_date",
			"interview_date", "status", "notes").
		Values(ref.ReferrerID, ref.Company, ref.Position, ref.ApplicationDate,
			ref.InterviewDate, ref.Status, ref.Notes).
		Suffix(referralReturning).
		ToSql()
	if err != nil {
		return models.Referral{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanReferral(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*referralRepository.Create").Msg("error creating referral")

		switch constraintCode(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Referral{}, ErrPersonReferenceMissing
		case "":
			return models.Referral{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		default:
			return models.Referral{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// GetByID retrieves a referral by its identifier.
func (r *referralRepository) GetByID(ctx context.Context, id int64) (models.Referral, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(referralColumns...).
		From("referrals").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return models.Referral{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	found, err := scanReferral(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Referral{}, ErrReferralNotFound
		}
		log.Err(err).Str("func", "*referralRepository.GetByID").Msg("error scanning referral")
		return models.Referral{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// ListByReferrer returns a page of referrals made by the given person.
func (r *referralRepository) ListByReferrer(ctx context.Context, referrerID int64, limit, offset uint64) ([]models.Referral, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(referralColumns...).
		From("referrals").
		Where("referrer_id = ?", referrerID).
		OrderBy("id").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*referralRepository.ListByReferrer").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	referrals := make([]models.Referral, 0, limit)
	for rows.Next() {
		ref, err := scanReferral(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		referrals = append(referrals, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return referrals, nil
}

// Update applies only the fields set on patch and bumps updated_at.
func (r *referralRepository) Update(ctx context.Context, id int64, patch models.ReferralPatch) (models.Referral, error) {
	log := logger.FromContext(ctx)

	if patch.IsEmpty() {
		return models.Referral{}, ErrEmptyPatch
	}

	update := r.db.builder.Update("referrals").Set("updated_at", time.Now())
	if patch.Company != nil {
		update = update.Set("company", *patch.Company)
	}
	if patch.Position != nil {
		update = update.Set("position", *patch.Position)
	}
	if patch.ApplicationDate != nil {
		update = update.Set("application_date", *patch.ApplicationDate)
	}
	if patch.InterviewDate != nil {
		update = update.Set("interview_date", *patch.InterviewDate)
	}
	if patch.Status != nil {
		update = update.Set("status", *patch.Status)
	}
	if patch.Notes != nil {
		update = update.Set("notes", *patch.Notes)
	}

	query, args, err := update.Where("id = ?", id).Suffix(referralReturning).ToSql()
	if err != nil {
		return models.Referral{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanReferral(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Referral{}, ErrReferralNotFound
		}
		log.Err(err).Str("func", "*referralRepository.Update").Msg("error updating referral")
		return models.Referral{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// Delete removes a referral.
func (r *referralRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("referrals").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*referralRepository.Delete").Msg("error deleting referral")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrReferralNotFound
	}

	return nil
}
