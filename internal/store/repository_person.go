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

// personColumns is the canonical column order used by every query that scans
// a full person record. Keep in sync with scanPerson.
var personColumns = []string{
	"id", "first_name", "last_name", "company", "sector", "is_account",
	"email", "phone", "linkedin_url", "how_i_know_them", "when_i_met_them",
	"notes", "username", "password_hash", "created_at", "updated_at",
}

const personReturning = `RETURNING id, first_name, last_name, company, sector, is_account, email, phone, linkedin_url, how_i_know_them, when_i_met_them, notes, username, password_hash, created_at, updated_at`

// personRepository is the SQL-backed implementation of [PersonRepository].
// It handles contact and account records against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type personRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPersonRepository constructs a [PersonRepository] backed by the provided
// database connection and logger.
func NewPersonRepository(db *DB, logger *logger.Logger) PersonRepository {
	logger.Debug().Msg("creating person repository")
	return &personRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(s rowScanner) (models.Person, error) {
	var p models.Person
	var whenMet sql.Null[models.Date]
	var updatedAt sql.NullTime

	err := s.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Company, &p.Sector, &p.IsAccount,
		&p.Email, &p.Phone, &p.LinkedInURL, &p.HowIKnowThem, &whenMet,
		&p.Notes, &p.Username, &p.PasswordHash, &p.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.Person{}, err
	}

	if whenMet.Valid {
		d := whenMet.V
		p.WhenIMetThem = &d
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		p.UpdatedAt = &t
	}

	return p, nil
}

// Create persists a new person record and returns the fully populated
// [models.Person] with server-assigned fields (ID, CreatedAt).
//
// Error handling:
//   - unique_violation on the username index → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *personRepository) Create(ctx context.Context, person models.Person) (models.Person, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(person.TableName()).
		Columns("first_name", "last_name", "company", "sector", "is_account",
			"email", "phone", "linkedin_url", "how_i_know_them",
			"when_i_met_them", "notes", "username", "password_hash").
		Values(person.FirstName, person.LastName, person.Company, person.Sector,
			person.IsAccount, person.Email, person.Phone, person.LinkedInURL,
			person.HowIKnowThem, person.WhenIMetThem, person.Notes,
			person.Username, person.PasswordHash).
		Suffix(personReturning).
		ToSql()
	if err != nil {
		return models.Person{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanPerson(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*personRepository.Create").Msg("error creating person")

		switch constraintCode(err) {
		case pgerrcode.UniqueViolation:
			return models.Person{}, ErrUsernameAlreadyExists
		case "":
			return models.Person{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		default:
			return models.Person{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// GetByID retrieves a person record by its identifier.
func (r *personRepository) GetByID(ctx context.Context, id int64) (models.Person, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(personColumns...).
		From("users").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return models.Person{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	found, err := scanPerson(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Person{}, ErrPersonNotFound
		}
		log.Err(err).Str("func", "*personRepository.GetByID").Msg("error scanning person")
		return models.Person{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// GetByUsername retrieves the account record whose username matches.
// Used by the login path; the caller must treat [ErrPersonNotFound]
// identically to a failed password check.
func (r *personRepository) GetByUsername(ctx context.Context, username string) (models.Person, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(personColumns...).
		From("users").
		Where("username = ?", username).
		ToSql()
	if err != nil {
		return models.Person{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	found, err := scanPerson(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Person{}, ErrPersonNotFound
		}
		log.Err(err).Str("func", "*personRepository.GetByUsername").Msg("error scanning person")
		return models.Person{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// List returns a page of person records ordered by id.
func (r *personRepository) List(ctx context.Context, limit, offset uint64) ([]models.Person, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(personColumns...).
		From("users").
		OrderBy("id").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*personRepository.List").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	people := make([]models.Person, 0, limit)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return people, nil
}

// Update applies only the fields set on patch and bumps updated_at.
func (r *personRepository) Update(ctx context.Context, id int64, patch models.PersonPatch) (models.Person, error) {
	log := logger.FromContext(ctx)

	if patch.IsEmpty() {
		return models.Person{}, ErrEmptyPatch
	}

	update := r.db.builder.Update("users").Set("updated_at", time.Now())
	if patch.FirstName != nil {
		update = update.Set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		update = update.Set("last_name", *patch.LastName)
	}
	if patch.Company != nil {
		update = update.Set("company", *patch.Company)
	}
	if patch.Sector != nil {
		update = update.Set("sector", *patch.Sector)
	}
	if patch.Username != nil {
		update = update.Set("username", *patch.Username)
	}
	if patch.Email != nil {
		update = update.Set("email", *patch.Email)
	}
	if patch.Phone != nil {
		update = update.Set("phone", *patch.Phone)
	}
	if patch.LinkedInURL != nil {
		update = update.Set("linkedin_url", *patch.LinkedInURL)
	}
	if patch.HowIKnowThem != nil {
		update = update.Set("how_i_know_them", *patch.HowIKnowThem)
	}
	if patch.WhenIMetThem != nil {
		update = update.Set("when_i_met_them", *patch.WhenIMetThem)
	}
	if patch.Notes != nil {
		update = update.Set("notes", *patch.Notes)
	}

	query, args, err := update.Where("id = ?", id).Suffix(personReturning).ToSql()
	if err != nil {
		return models.Person{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanPerson(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Person{}, ErrPersonNotFound
		}
		log.Err(err).Str("func", "*personRepository.Update").Msg("error updating person")

		switch constraintCode(err) {
		case pgerrcode.UniqueViolation:
			return models.Person{}, ErrUsernameAlreadyExists
		default:
			return models.Person{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return updated, nil
}

// UpdatePasswordHash replaces the stored credential hash in a single atomic
// row update. Zero affected rows means the account no longer exists.
func (r *personRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update("users").
		Set("password_hash", passwordHash).
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*personRepository.UpdatePasswordHash").Msg("error updating password hash")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrPersonNotFound
	}

	return nil
}

// Delete removes a person record.
func (r *personRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("users").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*personRepository.Delete").Msg("error deleting person")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrPersonNotFound
	}

	return nil
}

// Count returns the total number of person records.
func (r *personRepository) Count(ctx context.Context) (int, error) {
	query, args, err := r.db.builder.
		Select("COUNT(*)").
		From("users").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// FilterOptions returns the distinct non-null company and sector values.
func (r *personRepository) FilterOptions(ctx context.Context) (models.FilterOptions, error) {
	options := models.FilterOptions{
		Companies: make([]string, 0),
		Sectors:   make([]string, 0),
	}

	companies, err := r.distinctColumn(ctx, "company")
	if err != nil {
		return models.FilterOptions{}, err
	}
	options.Companies = companies

	sectors, err := r.distinctColumn(ctx, "sector")
	if err != nil {
		return models.FilterOptions{}, err
	}
	options.Sectors = sectors

	return options, nil
}

func (r *personRepository) distinctColumn(ctx context.Context, column string) ([]string, error) {
	query, args, err := r.db.builder.
		Select("DISTINCT " + column).
		From("users").
		Where(column + " IS NOT NULL").
		OrderBy(column).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return values, nil
}
