// Package service provides the market price use cases: a user's crop price
// summaries and ad-hoc price tables.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kisan_backend/internal/directory/repository"
	"kisan_backend/internal/mandi/scraper"
	"kisan_backend/internal/mandi/transport"
	"kisan_backend/platform/apperr"
	"kisan_backend/platform/logger"
)

const (
	msgUserStateMissing  = "User state missing"
	msgNoCrops           = "No crops found for user"
	msgIdentifiersFailed = "Failed to fetch Agmarknet identifiers"
	msgInvalidCropState  = "Invalid crop or state name"
	msgInvalidDate       = "Invalid date format"
	msgNoPriceData       = "No price data found"
	msgPriceFetchFailed  = "Failed to fetch price data"
)

// inputDateLayouts are the accepted query date formats.
var inputDateLayouts = []string{"02-Jan-2006", "2006-01-02"}

// PriceScraper reads prices from the market site.
type PriceScraper interface {
	FetchCropPrices(ctx context.Context, cropName, cropID, targetRegion string, regions scraper.IDMap) transport.PriceSummary
	FetchPriceTable(ctx context.Context, query transport.PriceQuery) ([]transport.PriceRow, error)
	DateFormat() string
}

// Service implements the price endpoints.
type Service struct {
	users  repository.UserReader
	ids    IdentifierSource
	prices PriceScraper
	log    *logger.Logger
}

// New creates a price service.
func New(users repository.UserReader, ids IdentifierSource, prices PriceScraper, log *logger.Logger) *Service {
	return &Service{users: users, ids: ids, prices: prices, log: log}
}

type userCrop struct {
	name   string
	region string
}

// UserCropPrices summarizes the prices of every crop the user grows, with the
// user's own region as the current price target.
func (s *Service) UserCropPrices(ctx context.Context, userID string) ([]transport.PriceSummary, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	userRegion := normalize(user.Region)
	if userRegion == "" {
		return nil, apperr.BadRequest(msgUserStateMissing)
	}

	crops, err := s.userCrops(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids, err := s.ids.ResolveIdentifiers(ctx)
	if err != nil {
		return nil, apperr.Upstream(msgIdentifiersFailed, err)
	}

	if _, ok := ids.Regions.Get(userRegion); !ok {
		return nil, apperr.BadRequest(fmt.Sprintf("User state '%s' not found in Agmarknet", userRegion))
	}

	results := []transport.PriceSummary{}
	for _, crop := range crops {
		cropID, ok := ids.Crops.Get(crop.name)
		if !ok {
			s.log.WithContext(ctx).Debug("crop not listed on agmarknet", "crop", crop.name)
			continue
		}
		results = append(results, s.prices.FetchCropPrices(ctx, crop.name, cropID, userRegion, ids.Regions))
	}
	return results, nil
}

func (s *Service) userCrops(ctx context.Context, userID string) ([]userCrop, error) {
	records, err := s.users.ListCropsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list crops: %w", err)
	}

	crops := make([]userCrop, 0, len(records))
	for _, r := range records {
		name, region := normalize(r.Name), normalize(r.Region)
		if name == "" || region == "" {
			continue
		}
		crops = append(crops, userCrop{name: name, region: region})
	}
	if len(crops) == 0 {
		return nil, apperr.NotFound(msgNoCrops)
	}
	return crops, nil
}

// MandiPrices returns the price table of one crop in one region over the
// requested date range.
func (s *Service) MandiPrices(ctx context.Context, req transport.MandiPricesRequest) ([]transport.PriceRow, error) {
	from, err := s.siteDate(req.FromDate)
	if err != nil {
		return nil, err
	}
	to, err := s.siteDate(req.ToDate)
	if err != nil {
		return nil, err
	}

	ids, err := s.ids.ResolveIdentifiers(ctx)
	if err != nil {
		return nil, apperr.Upstream(msgIdentifiersFailed, err)
	}

	crop, region := normalize(req.Crop), normalize(req.State)
	cropID, cropOK := ids.Crops.Get(crop)
	regionID, regionOK := ids.Regions.Get(region)
	if !cropOK || !regionOK {
		return nil, apperr.BadRequest(msgInvalidCropState)
	}

	rows, err := s.prices.FetchPriceTable(ctx, transport.PriceQuery{
		CropName:   strings.TrimSpace(req.Crop),
		CropID:     cropID,
		RegionName: strings.TrimSpace(req.State),
		RegionID:   regionID,
		DateFrom:   from,
		DateTo:     to,
	})
	if err != nil {
		if errors.Is(err, scraper.ErrNoPriceTable) {
			return nil, apperr.NotFound(msgNoPriceData)
		}
		return nil, apperr.Upstream(msgPriceFetchFailed, err)
	}
	return rows, nil
}

// siteDate parses an accepted query date and formats it the way the site
// expects.
func (s *Service) siteDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(s.prices.DateFormat()), nil
		}
	}
	return "", apperr.BadRequest(msgInvalidDate).WithDetails(fmt.Sprintf("expected DD-Mon-YYYY or YYYY-MM-DD, got %q", value))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
