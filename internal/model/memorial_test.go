package model

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1950-01-01", "1950-01-01"},
		{"2020-05-05T10:30:00Z", "2020-05-05"},
		{"2020-05-05T23:30:00-05:00", "2020-05-06"},
		{"2020-05-05T10:30:00.123Z", "2020-05-05"},
		{"2020-05-05T10:30:00", "2020-05-05"},
		{"2020/05/05", "2020-05-05"},
		{"05/31/2020", "2020-05-31"},
		{"May 5, 2020", "2020-05-05"},
		{"January 15, 1931", "1931-01-15"},
		{"  1950-01-01  ", "1950-01-01"},
	}

	for _, tc := range cases {
		got := NormalizeDate(tc.in)
		require.NotNil(t, got, tc.in)
		assert.Equal(t, tc.want, *got, tc.in)
	}
}

func TestNormalizeDate_Unparsable(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2020-13-01", "2020-02-30", "31/05/2020"} {
		assert.Nil(t, NormalizeDate(in), in)
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusApproved.Valid())
	assert.False(t, Status("archived").Valid())
}

func TestCreateMemorialPayload_Validate(t *testing.T) {
	payload := &CreateMemorialPayload{
		Name:             "Jane Doe",
		Bio:              "Teacher and gardener.",
		PassportPhotoURL: "http://x/y.jpg",
		BirthDate:        "1950-01-01",
		DeathDate:        "2020-05-05",
	}
	require.NoError(t, payload.Validate())

	payload.PassportPhotoURL = ""
	payload.Bio = ""
	err := payload.Validate()
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"bio", "passport_photo_url"}, fields)
}

func TestSearchMemorialQuery_Validate(t *testing.T) {
	err := (&SearchMemorialQuery{Name: "Jane Doe"}).Validate()

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	require.Len(t, validationErrors, 1)
	assert.Equal(t, "death_date", validationErrors[0].Field())
}

func TestMemorialIDParam_Validate(t *testing.T) {
	assert.NoError(t, (&MemorialIDParam{ID: 7}).Validate())
}
