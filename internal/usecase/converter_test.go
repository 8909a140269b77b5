package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
	"github.com/Stella-M-560/currency-bot-api/internal/services/normalize"
)

func TestConvert(t *testing.T) {
	rates := &mockRates{}
	rates.On("Latest", mock.Anything, "USD", "CNY").
		Return(models.Quote{From: "USD", To: "CNY", Rate: 7.1, Date: today}, nil).Once()

	res, err := NewConverter(normalize.New(), rates).Convert(context.Background(), models.ConvertRequest{
		From: "美元", To: "人民币", Amount: "3万",
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", res.From)
	assert.Equal(t, "CNY", res.To)
	assert.InDelta(t, 30000, res.Amount, 1e-9)
	assert.Equal(t, "213000.00", res.Converted.StringFixed(2))
	rates.AssertExpectations(t)
}

func TestConvertSameCurrencySkipsUpstream(t *testing.T) {
	rates := &mockRates{}

	res, err := NewConverter(normalize.New(), rates).Convert(context.Background(), models.ConvertRequest{
		From: "usd", To: "美金",
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Rate)
	assert.Equal(t, "1", res.Converted.String())
	rates.AssertNotCalled(t, "Latest", mock.Anything, mock.Anything, mock.Anything)
}

func TestConvertRejectsBadInputBeforeUpstream(t *testing.T) {
	rates := &mockRates{}
	c := NewConverter(normalize.New(), rates)

	_, err := c.Convert(context.Background(), models.ConvertRequest{From: "USD", To: "克朗"})
	assert.ErrorIs(t, err, models.ErrAmbiguousCurrency)

	_, err = c.Convert(context.Background(), models.ConvertRequest{From: "USD", To: "CNY", Amount: "abc"})
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	_, err = c.Convert(context.Background(), models.ConvertRequest{From: "狗狗币", To: "CNY"})
	assert.ErrorIs(t, err, models.ErrUnrecognizedCurrency)

	rates.AssertNotCalled(t, "Latest", mock.Anything, mock.Anything, mock.Anything)
}

func TestConvertPropagatesUpstreamFailure(t *testing.T) {
	rates := &mockRates{}
	rates.On("Latest", mock.Anything, "USD", "CNY").
		Return(models.Quote{}, errors.Join(models.ErrUpstreamUnavailable, errors.New("timeout")))

	_, err := NewConverter(normalize.New(), rates).Convert(context.Background(), models.ConvertRequest{From: "USD", To: "CNY"})
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}
