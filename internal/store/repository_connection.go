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

var connectionColumns = []string{
	"id", "person1_id", "person2_id", "relationship", "strength",
	"context", "last_interaction", "notes", "created_at", "updated_at",
}

const connectionReturning = `RETURNING id, person1_id, person2_id, relationship, strength, context, last_interaction, notes, created_at, updated_at`

// connectionRepository is the SQL-backed implementation of
// [ConnectionRepository] over the "connections" table.
type connectionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewConnectionRepository constructs a [ConnectionRepository] backed by the
// provided database connection and logger.
func NewConnectionRepository(db *DB, logger *logger.Logger) ConnectionRepository {
	logger.Debug().Msg("creating connection repository")
	return &connectionRepository{
		db:     db,
		logger: logger,
	}
}

func scanConnection(s rowScanner) (models.Connection, error) {
	var c models.Connection
	var lastInteraction sql.NullTime
	var updatedAt sql.NullTime

	err := s.Scan(
		&c.ID, &c.Person1ID, &c.Person2ID, &c.Relationship, &c.Strength,
		&c.Context, &lastInteraction, &c.Notes, &c.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.Connection{}, err
	}

	if lastInteraction.Valid {
		t := lastInteraction.Time
		c.LastInteraction = &t
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		c.UpdatedAt = &t
	}

	return c, nil
}

// Create persists a new network edge. A foreign key violation on either
// endpoint maps to [ErrPersonReferenceMissing].
func (r *connectionRepository) Create(ctx context.Context, conn models.Connection) (models.Connection, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(conn.TableName()).
		Columns("person1_id", "person2_id", "relationship", "strength",
			"context", "last_interaction", "notes").
		Values(conn.Person1ID, conn.Person2ID, conn.Relationship, conn.Strength,
			conn.Context, conn.LastInteraction, conn.Notes).
		Suffix(connectionReturning).
		ToSql()
	if err != nil {
		return models.Connection{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanConnection(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*connectionRepository.Create").Msg("error creating connection")

		switch constraintCode(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Connection{}, ErrPersonReferenceMissing
		case "":
			return models.Connection{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		default:
			return models.Connection{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// GetByID retrieves a network edge by its identifier.
func (r *connectionRepository) GetByID(ctx context.Context, id int64) (models.Connection, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(connectionColumns...).
		From("connections").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return models.Connection{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	found, err := scanConnection(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Connection{}, ErrConnectionNotFound
		}
		log.Err(err).Str("func", "*connectionRepository.GetByID").Msg("error scanning connection")
		return models.Connection{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// ListAll returns every edge in the network ordered by id.
func (r *connectionRepository) ListAll(ctx context.Context) ([]models.Connection, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(connectionColumns...).
		From("connections").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*connectionRepository.ListAll").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	connections := make([]models.Connection, 0)
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		connections = append(connections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return connections, nil
}

// Update applies only the fields set on patch and bumps updated_at.
func (r *connectionRepository) Update(ctx context.Context, id int64, patch models.ConnectionPatch) (models.Connection, error) {
	log := logger.FromContext(ctx)

	if patch.IsEmpty() {
		return models.Connection{}, ErrEmptyPatch
	}

	update := r.db.builder.Update("connections").Set("updated_at", time.Now())
	if patch.Relationship != nil {
		update = update.Set("relationship", *patch.Relationship)
	}
	if patch.Strength != nil {
		update = update.Set("strength", *patch.Strength)
	}
	if patch.Context != nil {
		update = update.Set("context", *patch.Context)
	}
	if patch.LastInteraction != nil {
		update = update.Set("last_interaction", *patch.LastInteraction)
	}
	if patch.Notes != nil {
		update = update.Set("notes", *patch.Notes)
	}

	query, args, err := update.Where("id = ?", id).Suffix(connectionReturning).ToSql()
	if err != nil {
		return models.Connection{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanConnection(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Connection{}, ErrConnectionNotFound
		}
		log.Err(err).Str("func", "*connectionRepository.Update").Msg("error updating connection")
		return models.Connection{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// Delete removes a network edge.
func (r *connectionRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("connections").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*connectionRepository.Delete").Msg("error deleting connection")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrConnectionNotFound
	}

	return nil
}
