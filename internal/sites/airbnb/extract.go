package airbnb

import (
	"errors"
	"fmt"

	"stayscraper/internal/snapshot"
)

// ErrInvalidStep is returned for a step outside 1..TotalSteps.
var ErrInvalidStep = errors.New("invalid step")

// ValidStep reports whether step is within 1..TotalSteps.
func ValidStep(step int) bool { return step >= 1 && step <= TotalSteps }

// Extract runs the extractor for step against doc.
func Extract(step int, doc snapshot.Document) (any, error) {
	switch step {
	case StepBasicInfo:
		return ExtractBasicInfo(doc), nil
	case StepPriceCapacity:
		return ExtractPriceCapacity(doc), nil
	case StepAmenities:
		return ExtractAmenities(doc), nil
	case StepPhotos:
		return ExtractPhotos(doc), nil
	default:
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidStep, step, TotalSteps)
	}
}

// StepName is a short label used in messages and logs.
func StepName(step int) string {
	switch step {
	case StepBasicInfo:
		return "basic info"
	case StepPriceCapacity:
		return "price and capacity"
	case StepAmenities:
		return "amenities"
	case StepPhotos:
		return "photos"
	default:
		return fmt.Sprintf("step %d", step)
	}
}
