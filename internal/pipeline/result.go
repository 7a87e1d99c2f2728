package pipeline

import (
	"errors"
	"fmt"

	"stayscraper/internal/sites/airbnb"
)

var successMessages = map[int]string{
	airbnb.StepBasicInfo:     "Informações básicas extraídas com sucesso",
	airbnb.StepPriceCapacity: "Informações de preço e capacidade extraídas com sucesso",
	airbnb.StepAmenities:     "Comodidades extraídas com sucesso",
}

// Success wraps data extracted from the rendered page.
func Success(step int, data any) airbnb.Result {
	msg, ok := successMessages[step]
	if !ok {
		msg = "Fotos extraídas com sucesso"
		if p, isPhotos := data.(airbnb.Photos); isPhotos {
			msg = fmt.Sprintf("Fotos extraídas com sucesso: %d imagens encontradas", len(p.Photos))
		}
	}
	return airbnb.Result{
		Status:           airbnb.StatusSuccess,
		Step:             step,
		TotalSteps:       airbnb.TotalSteps,
		Message:          msg,
		Data:             data,
		Source:           airbnb.SourceDOM,
		MultiStepPending: step < airbnb.TotalSteps,
	}
}

// Partial wraps data recovered from the structured-data source after the
// page itself was blocked.
func Partial(step int, data any) airbnb.Result {
	return airbnb.Result{
		Status:           airbnb.StatusPartial,
		Step:             step,
		TotalSteps:       airbnb.TotalSteps,
		Message:          fmt.Sprintf("Página bloqueada; %s obtidas dos dados estruturados do anúncio", airbnb.StepName(step)),
		Data:             data,
		Source:           airbnb.SourceAPI,
		MultiStepPending: step < airbnb.TotalSteps,
	}
}

// Failure wraps err in an error envelope. The message depends on how the
// error maps to HTTP.
func Failure(step int, err error) airbnb.Result {
	return airbnb.Result{
		Status:     airbnb.StatusError,
		Step:       step,
		TotalSteps: airbnb.TotalSteps,
		Message:    failureMessage(err),
		Data:       map[string]any{},
		Error:      err.Error(),
	}
}

func failureMessage(err error) string {
	var input *InputError
	if errors.As(err, &input) {
		return input.Message
	}
	switch StatusCode(err) {
	case 400:
		return "URL inválida. Forneça uma URL válida do Airbnb"
	case 504:
		return "A requisição excedeu o tempo limite. Tente novamente mais tarde ou use uma URL mais simples."
	}
	if errors.Is(err, ErrBlockedContent) {
		return "O Airbnb bloqueou o acesso automatizado a esta página. Tente novamente mais tarde."
	}
	return "Erro desconhecido durante o scraping"
}
