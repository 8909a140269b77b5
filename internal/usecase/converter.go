package usecase

import (
	"context"
	"fmt"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
	drepo "github.com/Stella-M-560/currency-bot-api/internal/domain/repository"
	dservice "github.com/Stella-M-560/currency-bot-api/internal/domain/service"
)

// Converter handles real-time conversion requests.
type Converter struct {
	normalizer dservice.CurrencyNormalizer
	rates      drepo.RateSource
}

// NewConverter creates a new Converter instance.
func NewConverter(normalizer dservice.CurrencyNormalizer, rates drepo.RateSource) *Converter {
	return &Converter{normalizer: normalizer, rates: rates}
}

// Convert validates the input before any upstream call, then prices amount at the latest rate.
func (c *Converter) Convert(ctx context.Context, req models.ConvertRequest) (models.ConversionResult, error) {
	from, err := c.normalizer.NormalizeCurrency(req.From)
	if err != nil {
		return models.ConversionResult{}, fmt.Errorf("from: %w", err)
	}
	to, err := c.normalizer.NormalizeCurrency(req.To)
	if err != nil {
		return models.ConversionResult{}, fmt.Errorf("to: %w", err)
	}
	amount, err := c.normalizer.ParseAmount(req.Amount)
	if err != nil {
		return models.ConversionResult{}, err
	}

	if from == to {
		return models.NewConversionResult(models.Quote{From: from, To: to, Rate: 1}, amount), nil
	}

	q, err := c.rates.Latest(ctx, from, to)
	if err != nil {
		return models.ConversionResult{}, fmt.Errorf("latest %s->%s: %w", from, to, err)
	}
	return models.NewConversionResult(q, amount), nil
}
