package service

import (
	"context"
	"errors"
	"testing"

	"kisan_backend/internal/directory/repository"
	"kisan_backend/internal/mandi/scraper"
	"kisan_backend/internal/mandi/transport"
	"kisan_backend/platform/apperr"
	"kisan_backend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[string]repository.User
	crops []repository.Crop
}

func (f fakeUsers) GetUser(_ context.Context, id string) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, apperr.NotFound("User not found")
	}
	return u, nil
}

func (f fakeUsers) ListCropsByUser(_ context.Context, userID string) ([]repository.Crop, error) {
	var out []repository.Crop
	for _, c := range f.crops {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeIDs struct {
	ids   scraper.Identifiers
	err   error
	calls int
}

func (f *fakeIDs) ResolveIdentifiers(context.Context) (scraper.Identifiers, error) {
	f.calls++
	return f.ids, f.err
}

type cropCall struct {
	name, id, target string
}

type fakePrices struct {
	calls    []cropCall
	query    transport.PriceQuery
	rows     []transport.PriceRow
	tableErr error
}

func (f *fakePrices) FetchCropPrices(_ context.Context, cropName, cropID, target string, _ scraper.IDMap) transport.PriceSummary {
	f.calls = append(f.calls, cropCall{cropName, cropID, target})
	price := 100
	return transport.PriceSummary{Crop: cropName, HighestPrice: &price, LowestPrice: &price}
}

func (f *fakePrices) FetchPriceTable(_ context.Context, q transport.PriceQuery) ([]transport.PriceRow, error) {
	f.query = q
	return f.rows, f.tableErr
}

func (f *fakePrices) DateFormat() string { return "02-Jan-2006" }

func identifiers() scraper.Identifiers {
	return scraper.Identifiers{
		Crops:   scraper.NewIDMap(scraper.Entry{Name: "onion", ID: "23"}, scraper.Entry{Name: "wheat", ID: "1"}),
		Regions: scraper.NewIDMap(scraper.Entry{Name: "maharashtra", ID: "MH"}, scraper.Entry{Name: "punjab", ID: "PB"}),
	}
}

func newService(users fakeUsers, ids *fakeIDs, prices *fakePrices) *Service {
	return New(users, ids, prices, logger.Discard())
}

func TestUserCropPrices(t *testing.T) {
	users := fakeUsers{
		users: map[string]repository.User{"u1": {ID: "u1", Region: " Maharashtra "}},
		crops: []repository.Crop{
			{UserID: "u1", Name: "Onion", Region: "Maharashtra"},
			{UserID: "u1", Name: "Dragonfruit", Region: "Maharashtra"},
			{UserID: "u1", Name: "Wheat", Region: ""},
			{UserID: "u1", Name: " WHEAT ", Region: "Punjab"},
			{UserID: "u2", Name: "Onion", Region: "Punjab"},
		},
	}
	ids := &fakeIDs{ids: identifiers()}
	prices := &fakePrices{}

	results, err := newService(users, ids, prices).UserCropPrices(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "onion", results[0].Crop)
	assert.Equal(t, "wheat", results[1].Crop)
	assert.Equal(t, []cropCall{{"onion", "23", "maharashtra"}, {"wheat", "1", "maharashtra"}}, prices.calls)
	assert.Equal(t, 1, ids.calls)
}

func TestUserCropPricesUserNotFound(t *testing.T) {
	_, err := newService(fakeUsers{}, &fakeIDs{}, &fakePrices{}).UserCropPrices(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "User not found", err.Error())
}

func TestUserCropPricesStateMissing(t *testing.T) {
	users := fakeUsers{users: map[string]repository.User{"u1": {ID: "u1", Region: "   "}}}

	_, err := newService(users, &fakeIDs{}, &fakePrices{}).UserCropPrices(context.Background(), "u1")

	domainErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, domainErr.HTTPStatus())
	assert.Equal(t, "User state missing", domainErr.Message)
}

func TestUserCropPricesNoUsableCrops(t *testing.T) {
	users := fakeUsers{
		users: map[string]repository.User{"u1": {ID: "u1", Region: "Punjab"}},
		crops: []repository.Crop{{UserID: "u1", Name: "Wheat"}},
	}
	ids := &fakeIDs{}

	_, err := newService(users, ids, &fakePrices{}).UserCropPrices(context.Background(), "u1")

	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "No crops found for user", err.Error())
	assert.Zero(t, ids.calls)
}

func TestUserCropPricesUnknownUserState(t *testing.T) {
	users := fakeUsers{
		users: map[string]repository.User{"u1": {ID: "u1", Region: "Atlantis"}},
		crops: []repository.Crop{{UserID: "u1", Name: "Onion", Region: "Atlantis"}},
	}

	_, err := newService(users, &fakeIDs{ids: identifiers()}, &fakePrices{}).UserCropPrices(context.Background(), "u1")

	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
	assert.Equal(t, "User state 'atlantis' not found in Agmarknet", err.Error())
}

func TestUserCropPricesIdentifierFailure(t *testing.T) {
	users := fakeUsers{
		users: map[string]repository.User{"u1": {ID: "u1", Region: "Punjab"}},
		crops: []repository.Crop{{UserID: "u1", Name: "Wheat", Region: "Punjab"}},
	}

	_, err := newService(users, &fakeIDs{err: errors.New("timeout")}, &fakePrices{}).UserCropPrices(context.Background(), "u1")

	assert.True(t, apperr.Is(err, apperr.KindUpstreamUnavailable))
}

func TestMandiPrices(t *testing.T) {
	prices := &fakePrices{rows: []transport.PriceRow{{Market: "Lasalgaon", ModalPrice: "1500"}}}

	rows, err := newService(fakeUsers{}, &fakeIDs{ids: identifiers()}, prices).MandiPrices(context.Background(), transport.MandiPricesRequest{
		Crop: " Onion ", State: "MAHARASHTRA", FromDate: "2024-01-01", ToDate: "07-jan-2024",
	})
	require.NoError(t, err)

	assert.Equal(t, prices.rows, rows)
	assert.Equal(t, transport.PriceQuery{
		CropName: "Onion", CropID: "23", RegionName: "MAHARASHTRA", RegionID: "MH",
		DateFrom: "01-Jan-2024", DateTo: "07-Jan-2024",
	}, prices.query)
}

func TestMandiPricesErrors(t *testing.T) {
	valid := transport.MandiPricesRequest{Crop: "onion", State: "punjab", FromDate: "01-Jan-2024", ToDate: "07-Jan-2024"}

	tests := []struct {
		name    string
		mutate  func(r *transport.MandiPricesRequest)
		prices  *fakePrices
		kind    apperr.Kind
		message string
	}{
		{
			name:    "bad date",
			mutate:  func(r *transport.MandiPricesRequest) { r.FromDate = "01/01/2024" },
			prices:  &fakePrices{},
			kind:    apperr.KindBadRequest,
			message: "Invalid date format",
		},
		{
			name:    "unknown crop",
			mutate:  func(r *transport.MandiPricesRequest) { r.Crop = "kiwi" },
			prices:  &fakePrices{},
			kind:    apperr.KindBadRequest,
			message: "Invalid crop or state name",
		},
		{
			name:    "unknown state",
			mutate:  func(r *transport.MandiPricesRequest) { r.State = "goa" },
			prices:  &fakePrices{},
			kind:    apperr.KindBadRequest,
			message: "Invalid crop or state name",
		},
		{
			name:    "no table",
			mutate:  func(*transport.MandiPricesRequest) {},
			prices:  &fakePrices{tableErr: scraper.ErrNoPriceTable},
			kind:    apperr.KindNotFound,
			message: "No price data found",
		},
		{
			name:    "fetch failure",
			mutate:  func(*transport.MandiPricesRequest) {},
			prices:  &fakePrices{tableErr: errors.New("connection reset")},
			kind:    apperr.KindUpstreamUnavailable,
			message: "Failed to fetch price data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			_, err := newService(fakeUsers{}, &fakeIDs{ids: identifiers()}, tt.prices).MandiPrices(context.Background(), req)

			domainErr, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, domainErr.Kind)
			assert.Equal(t, tt.message, domainErr.Message)
		})
	}
}
