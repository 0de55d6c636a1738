// Package dolarapi reads the official USD to VES rate.
package dolarapi

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/captive-portal-api/internal/config"
	"github.com/vfg2006/captive-portal-api/internal/domain"
	"github.com/vfg2006/captive-portal-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrInvalidQuote = errors.New("dolarapi: quote without a positive promedio")

type RateFetcher interface {
	FetchRate(ctx context.Context) (float64, error)
}

type Client struct {
	httpClient utils.HTTPDoer
	url        string
	backoff    utils.Backoff
}

type Option func(*Client)

// WithHTTPClient replaces the default timeout-bound http.Client.
func WithHTTPClient(doer utils.HTTPDoer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

func NewClient(cfg *config.Config, opts ...Option) RateFetcher {
	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Rate.Timeout,
		},
		url:     cfg.Rate.SourceURL,
		backoff: utils.NewBackoff(cfg.Rate.RetryBackoff, cfg.Rate.Retries),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchRate returns the promedio field of the quote.
func (c *Client) FetchRate(ctx context.Context) (float64, error) {
	var quote domain.RateQuote

	err := c.backoff.Do(ctx, func(attempt int) error {
		if attempt > 0 {
			logrus.WithField("attempt", attempt).Debug("Retrying exchange rate request")
		}

		body, err := utils.MakeRequest(ctx, c.httpClient, c.url)
		if err != nil {
			return err
		}

		quote = domain.RateQuote{}
		if err := json.Unmarshal(body, &quote); err != nil {
			return errors.Wrap(err, "dolarapi: decoding quote")
		}
		if quote.Average <= 0 {
			return ErrInvalidQuote
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"source":     quote.Source,
		"rate":       quote.Average,
		"updated_at": quote.UpdatedAt,
	}).Debug("Exchange rate fetched")

	return quote.Average, nil
}
