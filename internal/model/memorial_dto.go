package model

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their wire name (json, query or param tag)
// so field errors read "passport_photo_url" rather than "PassportPhotoURL".
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	return v
}

// ------------------------------------------------------------

type CreateMemorialPayload struct {
	Name             string  `json:"name" validate:"required"`
	Bio              string  `json:"bio" validate:"required"`
	BriefInfo        *string `json:"brief_info"`
	PassportPhotoURL string  `json:"passport_photo_url" validate:"required"`
	BirthDate        string  `json:"birth_date" validate:"required"`
	DeathDate        string  `json:"death_date" validate:"required"`
}

func (p *CreateMemorialPayload) Validate() error {
	return validate.Struct(p)
}

type CreateMemorialResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
	// QRCodeURL is an embeddable data:image/png;base64 payload.
	QRCodeURL string `json:"qr_code_url"`
}

// ------------------------------------------------------------

// MemorialIDParam binds the :id path segment.
type MemorialIDParam struct {
	ID int64 `param:"id" json:"-"`
}

func (p *MemorialIDParam) Validate() error {
	return validate.Struct(p)
}

type GetMemorialResponse struct {
	Success  bool      `json:"success"`
	Memorial *Memorial `json:"memorial"`
}

// ------------------------------------------------------------

type SearchMemorialQuery struct {
	Name      string `query:"name" validate:"required"`
	DeathDate string `query:"death_date" validate:"required"`
}

func (q *SearchMemorialQuery) Validate() error {
	return validate.Struct(q)
}

type SearchMemorialResponse struct {
	Success bool      `json:"success"`
	Profile *Memorial `json:"profile"`
}

// ------------------------------------------------------------

type ListMemorialsRequest struct{}

func (r *ListMemorialsRequest) Validate() error {
	return nil
}

type ListMemorialsResponse struct {
	Success   bool       `json:"success"`
	Memorials []Memorial `json:"memorials"`
}

// ------------------------------------------------------------

// UpdateMemorialPayload replaces the editable fields of a memorial.
// BriefInfo is left untouched when omitted.
type UpdateMemorialPayload struct {
	ID               int64   `param:"id" json:"-"`
	Name             string  `json:"name" validate:"required"`
	Bio              string  `json:"bio" validate:"required"`
	BriefInfo        *string `json:"brief_info"`
	PassportPhotoURL string  `json:"passport_photo_url" validate:"required"`
	BirthDate        string  `json:"birth_date" validate:"required"`
	DeathDate        string  `json:"death_date" validate:"required"`
}

func (p *UpdateMemorialPayload) Validate() error {
	return validate.Struct(p)
}

// ------------------------------------------------------------

type DeleteMemorialResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type GenerateQRCodeResponse struct {
	QRCodeURL string `json:"qrCodeUrl"`
}

// ------------------------------------------------------------

// CreateMemorialParams is the normalized input the repository persists.
// Dates are YYYY-MM-DD or nil when the caller's value could not be parsed.
type CreateMemorialParams struct {
	Name             string
	Bio              string
	BriefInfo        *string
	PassportPhotoURL string
	BirthDate        *string
	DeathDate        *string
}

type UpdateMemorialParams struct {
	Name             string
	Bio              string
	BriefInfo        *string
	PassportPhotoURL string
	BirthDate        *string
	DeathDate        *string
	QRCodeURL        string
}
