package server

import (
	"encoding/json"
	"net/http"
	"time"

	"stock-advisor/internal/errors"
	"stock-advisor/internal/logging"
	"stock-advisor/internal/models"
)

// dateLayout is the day-granularity date format accepted by the API.
const dateLayout = "2006-01-02"

type tradeRequest struct {
	Code        string  `json:"code"`
	Date        string  `json:"date"`
	Action      string  `json:"action"`
	Price       float64 `json:"price"`
	Shares      int     `json:"shares"`
	Commission  float64 `json:"commission"`
	Description string  `json:"description"`
}

type profitLossRequest struct {
	Code         string  `json:"code"`
	CurrentPrice float64 `json:"current_price"`
}

type summaryRequest struct {
	CurrentPrices map[string]float64 `json:"current_prices"`
}

type analyzeRequest struct {
	Code         string         `json:"code"`
	CurrentPrice float64        `json:"current_price"`
	PriceHistory []pricePointIn `json:"price_history"`
}

type pricePointIn struct {
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

type positionResponse struct {
	Position models.PositionSummary `json:"position"`
	History  []models.HistoryEntry  `json:"history"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAddTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	trade := models.Trade{
		Date:        date,
		Action:      models.Action(req.Action),
		Price:       req.Price,
		Shares:      req.Shares,
		Commission:  req.Commission,
		Description: req.Description,
	}

	if err := s.portfolio.Append(req.Code, trade); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.store != nil {
		if err := s.store.SaveTrade(r.Context(), req.Code, trade); err != nil {
			s.logger.Error().Err(err).Str("code", req.Code).Msg("Failed to persist trade")
		}
	}

	s.metrics.TradesRecorded.Inc()
	logging.LogTrade(s.logger, req.Code, req.Action, req.Shares, req.Price)

	l, _ := s.portfolio.Get(req.Code)
	summary := l.Summary()
	if summary.CurrentShares < 0 {
		s.logger.Warn().Str("code", req.Code).Int("shares", summary.CurrentShares).Msg("Position is short after sell")
	}
	writeJSON(w, http.StatusCreated, summary)
}

func (s *Server) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	l, err := s.portfolio.Get(code)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, positionResponse{
		Position: l.Summary(),
		History:  l.History(),
	})
}

func (s *Server) handleProfitLoss(w http.ResponseWriter, r *http.Request) {
	var req profitLossRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	l, err := s.portfolio.Get(req.Code)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, l.ProfitLoss(req.CurrentPrice))
}

func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	writeJSON(w, http.StatusOK, s.portfolio.Summary(req.CurrentPrices))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	l, err := s.portfolio.Get(req.Code)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	prices, err := s.resolvePrices(r, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	adv := s.advisor.Advise(l.Summary(), l.ProfitLoss(req.CurrentPrice), prices)

	s.metrics.AdvisoriesTotal.Inc()
	logging.LogAdvice(s.logger, req.Code, string(adv.RiskLevel), len(adv.Items))

	writeJSON(w, http.StatusOK, adv)
}

// resolvePrices picks the analysis price series: the request body first,
// then the stored price history, then just the current price.
func (s *Server) resolvePrices(r *http.Request, req analyzeRequest) ([]float64, error) {
	if len(req.PriceHistory) > 0 {
		points := make([]models.PricePoint, 0, len(req.PriceHistory))
		for _, in := range req.PriceHistory {
			date, err := time.Parse(dateLayout, in.Date)
			if err != nil {
				return nil, errors.NewValidationError("price_history.date", in.Date, "must be YYYY-MM-DD")
			}
			points = append(points, models.PricePoint{Date: date, Price: in.Price, Volume: in.Volume})
		}
		return models.Prices(points), nil
	}

	if s.store != nil {
		points, err := s.store.GetPrices(r.Context(), req.Code, time.Time{}, time.Time{})
		if err == nil && len(points) > 0 {
			return models.Prices(points), nil
		}
	}

	return []float64{req.CurrentPrice}, nil
}

func (s *Server) handleListInstruments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"instruments": s.portfolio.Codes()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
