package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/memorialize/memorial-backend/internal/model"
	"github.com/pkg/errors"
)

const memorialColumns = `id, name, bio, brief_info, passport_photo_url, birth_date, death_date,
	status, qr_code_url, created_at, updated_at`

// MemorialRepository persists memorials in the memorials table.
//
// Lookups that match nothing return an error wrapping pgx.ErrNoRows.
type MemorialRepository struct {
	pool *pgxpool.Pool
}

func NewMemorialRepository(pool *pgxpool.Pool) *MemorialRepository {
	return &MemorialRepository{pool: pool}
}

type memorialRow struct {
	ID               int64
	Name             string
	Bio              string
	BriefInfo        *string
	PassportPhotoURL string
	BirthDate        pgtype.Date
	DeathDate        pgtype.Date
	Status           string
	QRCodeURL        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r *memorialRow) fields() []any {
	return []any{
		&r.ID, &r.Name, &r.Bio, &r.BriefInfo, &r.PassportPhotoURL, &r.BirthDate, &r.DeathDate,
		&r.Status, &r.QRCodeURL, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *memorialRow) toModel() *model.Memorial {
	return &model.Memorial{
		ID:               r.ID,
		Name:             r.Name,
		Bio:              r.Bio,
		BriefInfo:        r.BriefInfo,
		PassportPhotoURL: r.PassportPhotoURL,
		BirthDate:        fromDate(r.BirthDate),
		DeathDate:        fromDate(r.DeathDate),
		Status:           model.Status(r.Status),
		QRCodeURL:        r.QRCodeURL,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// toDate turns a normalized YYYY-MM-DD string into a DATE parameter.
// nil and unparsable values become NULL so the column constraint decides.
func toDate(value *string) pgtype.Date {
	if value == nil {
		return pgtype.Date{}
	}
	t, err := time.Parse(model.DateLayout, *value)
	if err != nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: t, Valid: true}
}

func fromDate(d pgtype.Date) *string {
	if !d.Valid {
		return nil
	}
	s := d.Time.Format(model.DateLayout)
	return &s
}

func (r *MemorialRepository) scanOne(row pgx.Row, op string) (*model.Memorial, error) {
	var m memorialRow
	if err := row.Scan(m.fields()...); err != nil {
		return nil, errors.Wrapf(err, "table:memorials: %s", op)
	}
	return m.toModel(), nil
}

// CreateMemorial inserts a pending memorial and returns its id.
func (r *MemorialRepository) CreateMemorial(ctx context.Context, params model.CreateMemorialParams) (int64, error) {
	stmt := `
		INSERT INTO memorials (name, bio, brief_info, passport_photo_url, birth_date, death_date)
		VALUES (@name, @bio, @brief_info, @passport_photo_url, @birth_date, @death_date)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, stmt, pgx.NamedArgs{
		"name":               params.Name,
		"bio":                params.Bio,
		"brief_info":         params.BriefInfo,
		"passport_photo_url": params.PassportPhotoURL,
		"birth_date":         toDate(params.BirthDate),
		"death_date":         toDate(params.DeathDate),
	}).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert memorial")
	}

	return id, nil
}

// SetQRCodeURL stores the canonical profile URL of memorial id.
func (r *MemorialRepository) SetQRCodeURL(ctx context.Context, id int64, url string) error {
	stmt := `UPDATE memorials SET qr_code_url = @url WHERE id = @id`

	tag, err := r.pool.Exec(ctx, stmt, pgx.NamedArgs{"id": id, "url": url})
	if err != nil {
		return errors.Wrapf(err, "failed to set qr_code_url of memorial %d", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(pgx.ErrNoRows, "table:memorials: set qr_code_url of %d", id)
	}

	return nil
}

func (r *MemorialRepository) GetMemorialByID(ctx context.Context, id int64) (*model.Memorial, error) {
	stmt := `SELECT ` + memorialColumns + ` FROM memorials WHERE id = @id`

	return r.scanOne(r.pool.QueryRow(ctx, stmt, pgx.NamedArgs{"id": id}), "get memorial by id")
}

// SearchMemorial finds memorials by case-insensitive name and exact death
// date (YYYY-MM-DD). It returns the lowest-id match and the total number of
// matches.
func (r *MemorialRepository) SearchMemorial(ctx context.Context, name, deathDate string) (*model.Memorial, int, error) {
	stmt := `
		SELECT ` + memorialColumns + `, count(*) OVER () AS matches
		FROM memorials
		WHERE lower(name) = lower(@name) AND death_date = @death_date
		ORDER BY id
		LIMIT 1
	`

	var m memorialRow
	var matches int
	err := r.pool.QueryRow(ctx, stmt, pgx.NamedArgs{
		"name":       name,
		"death_date": toDate(&deathDate),
	}).Scan(append(m.fields(), &matches)...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "table:memorials: search memorial")
	}

	return m.toModel(), matches, nil
}

// ListMemorials returns every memorial, newest id first.
func (r *MemorialRepository) ListMemorials(ctx context.Context) ([]model.Memorial, error) {
	stmt := `SELECT ` + memorialColumns + ` FROM memorials ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, stmt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list memorials")
	}

	memorials, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Memorial, error) {
		var m memorialRow
		if err := row.Scan(m.fields()...); err != nil {
			return model.Memorial{}, err
		}
		return *m.toModel(), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect memorials")
	}

	return memorials, nil
}

// UpdateMemorial replaces the editable fields and the QR URL of a memorial.
// A nil BriefInfo keeps the stored value.
func (r *MemorialRepository) UpdateMemorial(ctx context.Context, id int64, params model.UpdateMemorialParams) (*model.Memorial, error) {
	stmt := `
		UPDATE memorials
		SET
			name = @name,
			bio = @bio,
			brief_info = COALESCE(@brief_info, brief_info),
			passport_photo_url = @passport_photo_url,
			birth_date = @birth_date,
			death_date = @death_date,
			qr_code_url = @qr_code_url,
			updated_at = now()
		WHERE id = @id
		RETURNING ` + memorialColumns

	row := r.pool.QueryRow(ctx, stmt, pgx.NamedArgs{
		"id":                 id,
		"name":               params.Name,
		"bio":                params.Bio,
		"brief_info":         params.BriefInfo,
		"passport_photo_url": params.PassportPhotoURL,
		"birth_date":         toDate(params.BirthDate),
		"death_date":         toDate(params.DeathDate),
		"qr_code_url":        params.QRCodeURL,
	})

	return r.scanOne(row, "update memorial")
}

// SetMemorialStatus moves a memorial to status. Setting the current status
// again succeeds.
func (r *MemorialRepository) SetMemorialStatus(ctx context.Context, id int64, status model.Status) (*model.Memorial, error) {
	stmt := `
		UPDATE memorials
		SET status = @status, updated_at = now()
		WHERE id = @id
		RETURNING ` + memorialColumns

	row := r.pool.QueryRow(ctx, stmt, pgx.NamedArgs{"id": id, "status": string(status)})

	return r.scanOne(row, "set memorial status")
}

func (r *MemorialRepository) DeleteMemorial(ctx context.Context, id int64) error {
	stmt := `DELETE FROM memorials WHERE id = @id`

	tag, err := r.pool.Exec(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return errors.Wrapf(err, "failed to delete memorial %d", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(pgx.ErrNoRows, "table:memorials: delete memorial %d", id)
	}

	return nil
}
