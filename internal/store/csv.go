package store

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"stock-advisor/internal/models"
)

// csvDateLayout is the day-granularity date format used in CSV files.
const csvDateLayout = "2006-01-02"

// tradeRow is the CSV projection of a trade record.
type tradeRow struct {
	Date        string  `csv:"date"`
	Action      string  `csv:"action"`
	Price       float64 `csv:"price"`
	Shares      int     `csv:"shares"`
	Commission  float64 `csv:"commission"`
	Description string  `csv:"description"`
}

// priceRow is the CSV projection of a price history sample.
type priceRow struct {
	Date   string  `csv:"date"`
	Price  float64 `csv:"price"`
	Volume int64   `csv:"volume"`
}

// ExportTradesCSV writes a ledger's trades as CSV, preserving all fields.
func ExportTradesCSV(w io.Writer, trades []models.Trade) error {
	rows := make([]tradeRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, tradeRow{
			Date:        t.Date.Format(csvDateLayout),
			Action:      string(t.Action),
			Price:       t.Price,
			Shares:      t.Shares,
			Commission:  t.Commission,
			Description: t.Description,
		})
	}
	return gocsv.Marshal(&rows, w)
}

// ImportTradesCSV reads trade records from CSV. Dates must be YYYY-MM-DD;
// anything malformed is a boundary error, the core never sees it.
func ImportTradesCSV(r io.Reader) ([]models.Trade, error) {
	var rows []tradeRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse trades CSV: %w", err)
	}

	trades := make([]models.Trade, 0, len(rows))
	for i, row := range rows {
		date, err := time.Parse(csvDateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date %q: %w", i+1, row.Date, err)
		}
		trades = append(trades, models.Trade{
			Date:        date,
			Action:      models.Action(row.Action),
			Price:       row.Price,
			Shares:      row.Shares,
			Commission:  row.Commission,
			Description: row.Description,
		})
	}
	return trades, nil
}

// ImportPricesCSV reads price history samples from CSV.
func ImportPricesCSV(r io.Reader) ([]models.PricePoint, error) {
	var rows []priceRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse prices CSV: %w", err)
	}

	points := make([]models.PricePoint, 0, len(rows))
	for i, row := range rows {
		date, err := time.Parse(csvDateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date %q: %w", i+1, row.Date, err)
		}
		points = append(points, models.PricePoint{
			Date:   date,
			Price:  row.Price,
			Volume: row.Volume,
		})
	}
	return points, nil
}
