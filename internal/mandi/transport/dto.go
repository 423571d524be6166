package transport

// PriceRow is one market's entry in the Agmarknet price table.
type PriceRow struct {
	District   string `json:"district"`
	Market     string `json:"market"`
	Commodity  string `json:"commodity"`
	Variety    string `json:"variety"`
	Grade      string `json:"grade"`
	MinPrice   string `json:"min_price"`
	MaxPrice   string `json:"max_price"`
	ModalPrice string `json:"modal_price"`
	Date       string `json:"date"`
}

// PriceSummary aggregates modal prices for one crop over every region.
// Nil fields serialize as null when nothing could be parsed.
type PriceSummary struct {
	Crop                    string `json:"crop"`
	HighestPrice            *int   `json:"highest_price"`
	LowestPrice             *int   `json:"lowest_price"`
	CurrentPriceInUserState *int   `json:"current_price_in_user_state"`
}

// PriceQuery selects a single crop/region price table over a date range.
type PriceQuery struct {
	CropName   string
	CropID     string
	RegionName string
	RegionID   string
	DateFrom   string
	DateTo     string
}

// MandiPricesRequest is the query string of GET /mandi-prices.
type MandiPricesRequest struct {
	Crop     string `form:"crop" validate:"required,notblank"`
	State    string `form:"state" validate:"required,notblank"`
	FromDate string `form:"from_date" validate:"required,notblank"`
	ToDate   string `form:"to_date" validate:"required,notblank"`
}
