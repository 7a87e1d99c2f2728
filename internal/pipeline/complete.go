package pipeline

import (
	"context"
	"errors"
	"fmt"

	"stayscraper/internal/logger"
	"stayscraper/internal/sites/airbnb"
)

// defaultListing holds the values a complete result falls back to for fields
// no step produced.
func defaultListing() airbnb.Listing {
	return airbnb.Listing{
		Type:               airbnb.TypeOther,
		Rooms:              airbnb.DefaultRooms,
		Bathrooms:          airbnb.DefaultBathrooms,
		Beds:               airbnb.DefaultBeds,
		Guests:             airbnb.DefaultGuests,
		Amenities:          []airbnb.Amenity{},
		AmenitiesWithIcons: []string{},
		Photos:             []string{},
	}
}

// ScrapeComplete runs every step in order and merges their data. A failed
// step leaves its fields at their defaults and makes the result partial; the
// call only fails outright when the input is invalid or no step succeeds.
func (o *Orchestrator) ScrapeComplete(ctx context.Context, rawURL string) (airbnb.CompleteResult, error) {
	out := airbnb.CompleteResult{
		SourceURL: airbnb.NormalizeURL(rawURL),
		Data:      defaultListing(),
		Steps:     make([]airbnb.StepOutcome, 0, airbnb.TotalSteps),
	}

	if _, err := o.validate(rawURL, airbnb.StepBasicInfo); err != nil {
		out.Status = airbnb.StatusError
		out.Message = failureMessage(err)
		out.Errors = []string{err.Error()}
		return out, err
	}

	log := logger.FromContext(ctx)
	var errs []error
	for step := 1; step <= airbnb.TotalSteps; step++ {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", airbnb.StepName(step), err))
			out.Steps = append(out.Steps, airbnb.StepOutcome{Step: step, Status: airbnb.StatusError, Message: failureMessage(err)})
			continue
		}

		res, err := o.ScrapeStep(ctx, rawURL, step)
		out.Steps = append(out.Steps, airbnb.StepOutcome{Step: step, Status: res.Status, Message: res.Message, Source: res.Source})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", airbnb.StepName(step), err))
			continue
		}
		merge(&out.Data, res.Data)
	}

	for _, err := range errs {
		out.Errors = append(out.Errors, err.Error())
	}

	switch {
	case len(errs) == 0:
		out.Status = airbnb.StatusSuccess
		out.Message = "Todas as etapas extraídas com sucesso"
	case len(errs) == airbnb.TotalSteps:
		err := errors.Join(errs...)
		out.Status = airbnb.StatusError
		out.Message = failureMessage(errs[len(errs)-1])
		log.Error("Complete scraping failed", "error", err)
		return out, errs[len(errs)-1]
	default:
		out.Status = airbnb.StatusPartial
		out.Message = fmt.Sprintf("%d de %d etapas extraídas; campos ausentes preenchidos com valores padrão",
			airbnb.TotalSteps-len(errs), airbnb.TotalSteps)
	}
	return out, nil
}

// merge copies one step's data into l.
func merge(l *airbnb.Listing, data any) {
	switch d := data.(type) {
	case airbnb.BasicInfo:
		l.Title = d.Title
		l.Description = d.Description
		if d.Type != "" {
			l.Type = d.Type
		}
		l.Address = d.Address
		l.Geohash = d.Geohash
	case airbnb.PriceCapacity:
		l.Price = d.Price
		l.Rooms = d.Rooms
		l.Bathrooms = d.Bathrooms
		l.Beds = d.Beds
		l.Guests = d.Guests
	case airbnb.Amenities:
		if d.Amenities != nil {
			l.Amenities = d.Amenities
		}
		if d.AmenitiesWithIcons != nil {
			l.AmenitiesWithIcons = d.AmenitiesWithIcons
		}
	case airbnb.Photos:
		if d.Photos != nil {
			l.Photos = d.Photos
		}
	}
}
