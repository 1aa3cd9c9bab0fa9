package store

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"stock-advisor/internal/models"
)

func TestTradesCSVRoundTrip(t *testing.T) {
	trades := []models.Trade{
		{Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), Action: models.ActionBuy, Price: 20.00, Shares: 500, Commission: 5, Description: "opening"},
		{Date: time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC), Action: models.ActionSell, Price: 19.88, Shares: 500, Commission: 5},
	}

	var buf bytes.Buffer
	if err := ExportTradesCSV(&buf, trades); err != nil {
		t.Fatalf("ExportTradesCSV failed: %v", err)
	}

	loaded, err := ImportTradesCSV(&buf)
	if err != nil {
		t.Fatalf("ImportTradesCSV failed: %v", err)
	}
	if len(loaded) != len(trades) {
		t.Fatalf("loaded %d trades, want %d", len(loaded), len(trades))
	}
	for i, tr := range loaded {
		if !tr.Date.Equal(trades[i].Date) {
			t.Errorf("trade %d date = %v, want %v", i, tr.Date, trades[i].Date)
		}
		if tr.Action != trades[i].Action || tr.Price != trades[i].Price || tr.Shares != trades[i].Shares {
			t.Errorf("trade %d = %+v, want %+v", i, tr, trades[i])
		}
	}
	if loaded[0].Description != "opening" {
		t.Errorf("description = %q, want %q", loaded[0].Description, "opening")
	}
}

func TestImportTradesCSVBadDate(t *testing.T) {
	csv := "date,action,price,shares,commission,description\n" +
		"not-a-date,buy,20.00,500,5,\n"

	_, err := ImportTradesCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("ImportTradesCSV accepted a malformed date")
	}
}

func TestImportPricesCSV(t *testing.T) {
	csv := "date,price,volume\n" +
		"2026-08-10,20.00,1000\n" +
		"2026-08-11,19.88,1500\n"

	points, err := ImportPricesCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportPricesCSV failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("loaded %d points, want 2", len(points))
	}
	if points[0].Price != 20.00 || points[0].Volume != 1000 {
		t.Errorf("points[0] = %+v, want price 20.00 volume 1000", points[0])
	}
	if points[1].Date.Day() != 11 {
		t.Errorf("points[1] date = %v, want day 11", points[1].Date)
	}
}
