package models

// ProductFields are the eight free-form content fields of a seed inventory
// record. Values are opaque strings; nothing checks that dates or ratios
// parse. JSON and CSV names are the ones the service has always exposed.
type ProductFields struct {
	RepDate     string `json:"Seed_RepDate" db:"rep_date"`
	Year        string `json:"Seed_Year" db:"year"`
	YearWeek    string `json:"Seeds_YearWeek" db:"year_week"`
	Variety     string `json:"Seed_Varity" db:"variety"`
	RDCSD       string `json:"Seed_RDCSD" db:"rdcsd"`
	StockToSale string `json:"Seed_Stock2Sale" db:"stock_to_sale"`
	Season      string `json:"Seed_Season" db:"season"`
	CropYear    string `json:"Seed_Crop_Year" db:"crop_year"`
}

// Product is a stored inventory record. ID is immutable once assigned.
type Product struct {
	ID string `json:"_id" db:"id"`
	ProductFields
}
