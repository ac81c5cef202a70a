// Package worldbank fetches pages of the World Bank indicator API, or any
// statistics API answering with the same [metadata, records] envelope.
package worldbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/ougirez/demostats/internal/domain/dto"
	"github.com/ougirez/demostats/internal/pkg/logger"
)

// Span is the closed range of years requested from the API.
type Span struct {
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

type Options struct {
	BaseURL       string
	PageSize      int
	Timeout       time.Duration
	MaxRetries    uint64
	RetryInterval time.Duration
}

type Client struct {
	opts Options
	http *http.Client
}

func NewClient(opts Options) *Client {
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}
}

func (c *Client) PageSize() int {
	return c.opts.PageSize
}

// StatusError is returned for non-200 answers.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status code error: %d %s", e.Code, e.Status)
}

// FetchPage returns the raw records of page (1-based) for indicator code.
// An envelope without a record list is an empty page.
func (c *Client) FetchPage(ctx context.Context, code string, page int, span Span) ([]dto.Record, error) {
	pageURL, err := c.pageURL(code, page, span)
	if err != nil {
		return nil, err
	}

	var body []byte
	err = backoff.Retry(
		func() error {
			var fetchErr error
			body, fetchErr = c.get(ctx, pageURL)
			if fetchErr != nil {
				var statusErr *StatusError
				if errors.As(fetchErr, &statusErr) && statusErr.Code < http.StatusInternalServerError && statusErr.Code != http.StatusTooManyRequests {
					return backoff.Permanent(fetchErr)
				}
				logger.Warnf(ctx, "fetch %s page %d: %s", code, page, fetchErr.Error())
				return fetchErr
			}
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(c.opts.RetryInterval), c.opts.MaxRetries),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	records, err := DecodePage(body)
	if err != nil {
		return nil, fmt.Errorf("DecodePage, indicator-%s, page-%d: %w", code, page, err)
	}

	return records, nil
}

// DecodePage extracts element 1 of the envelope.
func DecodePage(body []byte) ([]dto.Record, error) {
	var envelope []json.RawMessage
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("sonic.Unmarshal envelope: %w", err)
	}

	if len(envelope) < 2 {
		return nil, nil
	}

	var records []dto.Record
	if err := sonic.Unmarshal(envelope[1], &records); err != nil {
		return nil, fmt.Errorf("sonic.Unmarshal records: %w", err)
	}

	return records, nil
}

func (c *Client) pageURL(code string, page int, span Span) (string, error) {
	u, err := url.Parse(strings.TrimRight(c.opts.BaseURL, "/") + "/" + url.PathEscape(code))
	if err != nil {
		return "", fmt.Errorf("url.Parse: %w", err)
	}

	q := u.Query()
	q.Set("format", "json")
	q.Set("per_page", strconv.Itoa(c.opts.PageSize))
	q.Set("page", strconv.Itoa(page))
	q.Set("date", span.String())
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (c *Client) get(ctx context.Context, pageURL string) (body []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("http.NewRequest: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http.Do: %w", err)
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	return body, nil
}
