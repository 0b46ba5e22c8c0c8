package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/memorialize/memorial-backend/internal/errs"
	"github.com/memorialize/memorial-backend/internal/lib/qrcode"
	"github.com/memorialize/memorial-backend/internal/model"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// MemorialStore is the persistence the memorial service needs.
// *repository.MemorialRepository satisfies it.
type MemorialStore interface {
	CreateMemorial(ctx context.Context, params model.CreateMemorialParams) (int64, error)
	SetQRCodeURL(ctx context.Context, id int64, url string) error
	GetMemorialByID(ctx context.Context, id int64) (*model.Memorial, error)
	SearchMemorial(ctx context.Context, name, deathDate string) (*model.Memorial, int, error)
	ListMemorials(ctx context.Context) ([]model.Memorial, error)
	UpdateMemorial(ctx context.Context, id int64, params model.UpdateMemorialParams) (*model.Memorial, error)
	SetMemorialStatus(ctx context.Context, id int64, status model.Status) (*model.Memorial, error)
	DeleteMemorial(ctx context.Context, id int64) error
}

// QRRenderer renders QR code images. *qrcode.Generator satisfies it.
type QRRenderer interface {
	PNG(ctx context.Context, content string) ([]byte, error)
	DataURL(ctx context.Context, content string) (string, error)
}

var (
	codeMemorialNotFound = "MEMORIAL_NOT_FOUND"
	codeProfileNotFound  = "PROFILE_NOT_FOUND"
	codeNoMemorials      = "NO_MEMORIALS_FOUND"
)

func memorialNotFound() error {
	return errs.NewNotFoundError("Memorial not found", true, &codeMemorialNotFound)
}

type MemorialService struct {
	store  MemorialStore
	qr     QRRenderer
	logger *zerolog.Logger
}

func NewMemorialService(store MemorialStore, qr QRRenderer, logger *zerolog.Logger) *MemorialService {
	return &MemorialService{
		store:  store,
		qr:     qr,
		logger: logger,
	}
}

// Create inserts a pending memorial, then stores its profile URL in a
// second statement. The writes are not atomic: if the second fails the
// record stays with a null qr_code_url, which QRCodePNG repairs.
//
// Dates that cannot be parsed are stored as null and rejected by the
// column's NOT NULL constraint.
func (s *MemorialService) Create(ctx context.Context, payload *model.CreateMemorialPayload, origin string) (*model.CreateMemorialResponse, error) {
	id, err := s.store.CreateMemorial(ctx, model.CreateMemorialParams{
		Name:             payload.Name,
		Bio:              payload.Bio,
		BriefInfo:        payload.BriefInfo,
		PassportPhotoURL: payload.PassportPhotoURL,
		BirthDate:        model.NormalizeDate(payload.BirthDate),
		DeathDate:        model.NormalizeDate(payload.DeathDate),
	})
	if err != nil {
		return nil, err
	}

	profileURL := qrcode.ProfileURL(origin, id)

	if err := s.store.SetQRCodeURL(ctx, id, profileURL); err != nil {
		s.logger.Error().Err(err).Int64("memorial_id", id).Msg("memorial created without qr_code_url")
		return nil, err
	}

	dataURL, err := s.qr.DataURL(ctx, profileURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render qrcode for memorial %d", id)
	}

	s.logger.Info().Int64("memorial_id", id).Msg("memorial created")

	return &model.CreateMemorialResponse{
		Success:   true,
		ID:        id,
		QRCodeURL: dataURL,
	}, nil
}

func (s *MemorialService) GetByID(ctx context.Context, id int64) (*model.Memorial, error) {
	memorial, err := s.store.GetMemorialByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, memorialNotFound()
		}
		return nil, err
	}
	return memorial, nil
}

// Search returns the memorial matching name (case-insensitive) and death
// date. When several match, the one with the lowest id wins.
func (s *MemorialService) Search(ctx context.Context, query *model.SearchMemorialQuery) (*model.Memorial, error) {
	deathDate := model.NormalizeDate(query.DeathDate)
	if deathDate == nil {
		return nil, errs.NewInvalidFormatError([]errs.FieldError{
			{Field: "death_date", Error: "must be a date"},
		})
	}

	memorial, matches, err := s.store.SearchMemorial(ctx, query.Name, *deathDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("Profile not found", true, &codeProfileNotFound)
		}
		return nil, err
	}

	if matches > 1 {
		s.logger.Warn().
			Int("matches", matches).
			Int64("memorial_id", memorial.ID).
			Msg("search matched several memorials, returning the lowest id")
	}

	return memorial, nil
}

// List returns every memorial, newest first. An empty table is reported
// as not found.
func (s *MemorialService) List(ctx context.Context) ([]model.Memorial, error) {
	memorials, err := s.store.ListMemorials(ctx)
	if err != nil {
		return nil, err
	}
	if len(memorials) == 0 {
		return nil, errs.NewNotFoundError("No memorials found", true, &codeNoMemorials)
	}
	return memorials, nil
}

// Update replaces the editable fields and recomputes the profile URL.
func (s *MemorialService) Update(ctx context.Context, payload *model.UpdateMemorialPayload, origin string) (*model.Memorial, error) {
	memorial, err := s.store.UpdateMemorial(ctx, payload.ID, model.UpdateMemorialParams{
		Name:             payload.Name,
		Bio:              payload.Bio,
		BriefInfo:        payload.BriefInfo,
		PassportPhotoURL: payload.PassportPhotoURL,
		BirthDate:        model.NormalizeDate(payload.BirthDate),
		DeathDate:        model.NormalizeDate(payload.DeathDate),
		QRCodeURL:        qrcode.ProfileURL(origin, payload.ID),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, memorialNotFound()
		}
		return nil, err
	}
	return memorial, nil
}

func (s *MemorialService) Approve(ctx context.Context, id int64) (*model.Memorial, error) {
	return s.setStatus(ctx, id, model.StatusApproved)
}

func (s *MemorialService) Disapprove(ctx context.Context, id int64) (*model.Memorial, error) {
	return s.setStatus(ctx, id, model.StatusPending)
}

func (s *MemorialService) setStatus(ctx context.Context, id int64, status model.Status) (*model.Memorial, error) {
	memorial, err := s.store.SetMemorialStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, memorialNotFound()
		}
		return nil, err
	}

	s.logger.Info().
		Int64("memorial_id", id).
		Str("status", string(status)).
		Msg("memorial status changed")

	return memorial, nil
}

func (s *MemorialService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteMemorial(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return memorialNotFound()
		}
		return err
	}

	s.logger.Info().Int64("memorial_id", id).Msg("memorial deleted")
	return nil
}

// GenerateQRCodeURL returns the profile URL a QR code for id would encode.
// The store is not consulted, so the memorial need not exist.
func (s *MemorialService) GenerateQRCodeURL(_ context.Context, id int64, origin string) (string, error) {
	return qrcode.ProfileURL(origin, id), nil
}

// QRCodePNG renders the stored profile URL of a memorial. A memorial left
// without one by an interrupted create gets it derived and persisted here.
func (s *MemorialService) QRCodePNG(ctx context.Context, id int64, origin string) ([]byte, error) {
	memorial, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var profileURL string
	if memorial.QRCodeURL != nil && *memorial.QRCodeURL != "" {
		profileURL = *memorial.QRCodeURL
	} else {
		profileURL = qrcode.ProfileURL(origin, id)
		if err := s.store.SetQRCodeURL(ctx, id, profileURL); err != nil {
			return nil, err
		}
		s.logger.Info().Int64("memorial_id", id).Msg("repaired missing qr_code_url")
	}

	png, err := s.qr.PNG(ctx, profileURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render qrcode for memorial %d", id)
	}
	return png, nil
}
