package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/memorialize/memorial-backend/internal/config"
	"github.com/memorialize/memorial-backend/internal/errs"
	"github.com/memorialize/memorial-backend/internal/lib/qrcode"
	"github.com/memorialize/memorial-backend/internal/model"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateMemorial(ctx context.Context, params model.CreateMemorialParams) (int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) SetQRCodeURL(ctx context.Context, id int64, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

func (m *mockStore) GetMemorialByID(ctx context.Context, id int64) (*model.Memorial, error) {
	args := m.Called(ctx, id)
	memorial, _ := args.Get(0).(*model.Memorial)
	return memorial, args.Error(1)
}

func (m *mockStore) SearchMemorial(ctx context.Context, name, deathDate string) (*model.Memorial, int, error) {
	args := m.Called(ctx, name, deathDate)
	memorial, _ := args.Get(0).(*model.Memorial)
	return memorial, args.Int(1), args.Error(2)
}

func (m *mockStore) ListMemorials(ctx context.Context) ([]model.Memorial, error) {
	args := m.Called(ctx)
	memorials, _ := args.Get(0).([]model.Memorial)
	return memorials, args.Error(1)
}

func (m *mockStore) UpdateMemorial(ctx context.Context, id int64, params model.UpdateMemorialParams) (*model.Memorial, error) {
	args := m.Called(ctx, id, params)
	memorial, _ := args.Get(0).(*model.Memorial)
	return memorial, args.Error(1)
}

func (m *mockStore) SetMemorialStatus(ctx context.Context, id int64, status model.Status) (*model.Memorial, error) {
	args := m.Called(ctx, id, status)
	memorial, _ := args.Get(0).(*model.Memorial)
	return memorial, args.Error(1)
}

func (m *mockStore) DeleteMemorial(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

const origin = "http://localhost:8080"

func strPtr(s string) *string { return &s }

func newTestService(store MemorialStore) *MemorialService {
	logger := zerolog.Nop()
	gen := qrcode.NewGenerator(config.DefaultQRCodeConfig(), nil, &logger)
	return NewMemorialService(store, gen, &logger)
}

func notFound(err error) bool {
	var httpErr *errs.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound
}

func TestMemorialService_Create(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)

	store.On("CreateMemorial", ctx, model.CreateMemorialParams{
		Name:             "Jane Doe",
		Bio:              "Teacher.",
		PassportPhotoURL: "http://x/y.jpg",
		BirthDate:        strPtr("1950-01-01"),
		DeathDate:        strPtr("2020-05-05"),
	}).Return(int64(12), nil)
	store.On("SetQRCodeURL", ctx, int64(12), origin+"/memorial/12").Return(nil)

	res, err := newTestService(store).Create(ctx, &model.CreateMemorialPayload{
		Name:             "Jane Doe",
		Bio:              "Teacher.",
		PassportPhotoURL: "http://x/y.jpg",
		BirthDate:        "1950-01-01",
		DeathDate:        "2020-05-05T10:00:00Z",
	}, origin)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(12), res.ID)
	assert.True(t, strings.HasPrefix(res.QRCodeURL, qrcode.DataURLPrefix))
	store.AssertExpectations(t)
}

func TestMemorialService_Create_UnparsableDateReachesStoreAsNull(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	storeErr := errors.New("not null violation")

	store.On("CreateMemorial", ctx, mock.MatchedBy(func(p model.CreateMemorialParams) bool {
		return p.DeathDate == nil && p.BirthDate != nil
	})).Return(int64(0), storeErr)

	_, err := newTestService(store).Create(ctx, &model.CreateMemorialPayload{
		Name:             "Jane Doe",
		Bio:              "Teacher.",
		PassportPhotoURL: "http://x/y.jpg",
		BirthDate:        "1950-01-01",
		DeathDate:        "yesterday",
	}, origin)

	assert.ErrorIs(t, err, storeErr)
	store.AssertNotCalled(t, "SetQRCodeURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestMemorialService_Create_SecondWriteFails(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	writeErr := errors.New("connection reset")

	store.On("CreateMemorial", ctx, mock.Anything).Return(int64(3), nil)
	store.On("SetQRCodeURL", ctx, int64(3), origin+"/memorial/3").Return(writeErr)

	_, err := newTestService(store).Create(ctx, &model.CreateMemorialPayload{
		Name: "A", Bio: "B", PassportPhotoURL: "C", BirthDate: "1950-01-01", DeathDate: "2020-01-01",
	}, origin)

	assert.ErrorIs(t, err, writeErr)
}

func TestMemorialService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("GetMemorialByID", ctx, int64(9)).Return(nil, errors.Wrap(pgx.ErrNoRows, "table:memorials: get"))

	_, err := newTestService(store).GetByID(ctx, 9)

	assert.True(t, notFound(err))
}

func TestMemorialService_Search(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	want := &model.Memorial{ID: 4, Name: "Jane Doe"}
	store.On("SearchMemorial", ctx, "jane doe", "2020-05-05").Return(want, 2, nil)

	got, err := newTestService(store).Search(ctx, &model.SearchMemorialQuery{
		Name:      "jane doe",
		DeathDate: "May 5, 2020",
	})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMemorialService_Search_InvalidDate(t *testing.T) {
	store := new(mockStore)

	_, err := newTestService(store).Search(context.Background(), &model.SearchMemorialQuery{
		Name:      "Jane Doe",
		DeathDate: "not a date",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, errs.CodeInvalidDataFormat, httpErr.Code)
	store.AssertNotCalled(t, "SearchMemorial", mock.Anything, mock.Anything, mock.Anything)
}

func TestMemorialService_Search_NotFound(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("SearchMemorial", ctx, "nobody", "2020-05-05").Return(nil, 0, pgx.ErrNoRows)

	_, err := newTestService(store).Search(ctx, &model.SearchMemorialQuery{Name: "nobody", DeathDate: "2020-05-05"})

	assert.True(t, notFound(err))
}

func TestMemorialService_List(t *testing.T) {
	ctx := context.Background()

	store := new(mockStore)
	store.On("ListMemorials", ctx).Return([]model.Memorial{{ID: 2}, {ID: 1}}, nil)
	memorials, err := newTestService(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, memorials, 2)

	empty := new(mockStore)
	empty.On("ListMemorials", ctx).Return([]model.Memorial{}, nil)
	_, err = newTestService(empty).List(ctx)
	assert.True(t, notFound(err))
}

func TestMemorialService_Update(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	updated := &model.Memorial{ID: 5, Name: "New"}

	store.On("UpdateMemorial", ctx, int64(5), mock.MatchedBy(func(p model.UpdateMemorialParams) bool {
		return p.QRCodeURL == origin+"/memorial/5" && p.BriefInfo == nil && *p.BirthDate == "1950-01-01"
	})).Return(updated, nil)
	store.On("UpdateMemorial", ctx, int64(6), mock.Anything).Return(nil, pgx.ErrNoRows)

	svc := newTestService(store)
	payload := model.UpdateMemorialPayload{
		ID: 5, Name: "New", Bio: "Bio", PassportPhotoURL: "P", BirthDate: "1950-01-01", DeathDate: "2020-01-01",
	}

	got, err := svc.Update(ctx, &payload, origin)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	payload.ID = 6
	_, err = svc.Update(ctx, &payload, origin)
	assert.True(t, notFound(err))
}

func TestMemorialService_ApproveDisapprove(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("SetMemorialStatus", ctx, int64(1), model.StatusApproved).Return(&model.Memorial{ID: 1, Status: model.StatusApproved}, nil)
	store.On("SetMemorialStatus", ctx, int64(1), model.StatusPending).Return(&model.Memorial{ID: 1, Status: model.StatusPending}, nil)
	store.On("SetMemorialStatus", ctx, int64(2), mock.Anything).Return(nil, pgx.ErrNoRows)

	svc := newTestService(store)

	m, err := svc.Approve(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, m.Status)

	m, err = svc.Disapprove(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, m.Status)

	_, err = svc.Approve(ctx, 2)
	assert.True(t, notFound(err))
}

func TestMemorialService_Delete(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("DeleteMemorial", ctx, int64(1)).Return(nil)
	store.On("DeleteMemorial", ctx, int64(2)).Return(errors.Wrap(pgx.ErrNoRows, "table:memorials: delete"))

	svc := newTestService(store)
	assert.NoError(t, svc.Delete(ctx, 1))
	assert.True(t, notFound(svc.Delete(ctx, 2)))
}

func TestMemorialService_GenerateQRCodeURL(t *testing.T) {
	store := new(mockStore)

	url, err := newTestService(store).GenerateQRCodeURL(context.Background(), 77, origin)

	require.NoError(t, err)
	assert.Equal(t, origin+"/memorial/77", url)
	store.AssertNotCalled(t, "GetMemorialByID", mock.Anything, mock.Anything)
}

func TestMemorialService_QRCodePNG_RepairsMissingURL(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("GetMemorialByID", ctx, int64(8)).Return(&model.Memorial{ID: 8}, nil)
	store.On("SetQRCodeURL", ctx, int64(8), origin+"/memorial/8").Return(nil)

	png, err := newTestService(store).QRCodePNG(ctx, 8, origin)

	require.NoError(t, err)
	assert.NotEmpty(t, png)
	store.AssertExpectations(t)
}

func TestMemorialService_QRCodePNG_UsesStoredURL(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	stored := "https://memorials.example.org/memorial/8"
	store.On("GetMemorialByID", ctx, int64(8)).Return(&model.Memorial{ID: 8, QRCodeURL: &stored}, nil)

	_, err := newTestService(store).QRCodePNG(ctx, 8, origin)

	require.NoError(t, err)
	store.AssertNotCalled(t, "SetQRCodeURL", mock.Anything, mock.Anything, mock.Anything)
}
