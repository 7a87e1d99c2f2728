package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"stayscraper/internal/logger"
	"stayscraper/internal/pipeline"
	"stayscraper/internal/sites/airbnb"
)

// maxBodyBytes bounds request bodies; a listing request is a URL and a number.
const maxBodyBytes = 64 << 10

const invalidBody = "Corpo da requisição inválido"

// Scraper is the listing pipeline as seen by the HTTP layer.
type Scraper interface {
	ScrapeStep(ctx context.Context, rawURL string, step int) (airbnb.Result, error)
	ScrapeComplete(ctx context.Context, rawURL string) (airbnb.CompleteResult, error)
}

type handlers struct {
	scraper Scraper
	schemas schemaSet
	version string
}

func (h *handlers) root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "online",
		"message": "Airbnb Scraper API está funcionando. Use POST /scrape-airbnb para obter dados.",
		"version": h.version,
	})
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) scrapeStep(w http.ResponseWriter, r *http.Request) {
	req := airbnb.Request{Step: airbnb.StepBasicInfo}
	if err := h.decode(r, schemaScrape, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, pipeline.Failure(req.Step, err))
		return
	}

	logger.FromContext(r.Context()).Info("Scrape requested", "url", req.URL, "step", req.Step)
	res, err := h.scraper.ScrapeStep(r.Context(), req.URL, req.Step)
	respondJSON(w, pipeline.StatusCode(err), res)
}

func (h *handlers) scrapeComplete(w http.ResponseWriter, r *http.Request) {
	var req airbnb.Request
	if err := h.decode(r, schemaScrapeComplete, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, airbnb.CompleteResult{
			Status:  airbnb.StatusError,
			Message: invalidBody,
			Errors:  []string{err.Error()},
		})
		return
	}

	logger.FromContext(r.Context()).Info("Complete scrape requested", "url", req.URL)
	res, err := h.scraper.ScrapeComplete(r.Context(), req.URL)
	respondJSON(w, pipeline.StatusCode(err), res)
}

// decode validates the body against schema and unmarshals it into dst.
func (h *handlers) decode(r *http.Request, schema string, dst *airbnb.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return &pipeline.InputError{Message: invalidBody, Err: err}
	}
	if err := h.schemas.validate(schema, body); err != nil {
		return &pipeline.InputError{Message: invalidBody, Err: err}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &pipeline.InputError{Message: invalidBody, Err: err}
	}
	return nil
}
