package trackapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetGeneralStats возвращает агрегированные показатели по всем ссылкам.
func (c *Client) GetGeneralStats(ctx context.Context, tok string) (*GeneralStats, error) {
	const op = "trackapi.GetGeneralStats"

	var out generalStatsEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/stats", tok, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if out.Stats == nil {
		return nil, fmt.Errorf("%s: %w: missing stats", op, ErrInvalidResponse)
	}
	return out.Stats, nil
}

// GetDailyStats возвращает показатели по дням за период.
// Даты передаются в формате 2006-01-02.
func (c *Client) GetDailyStats(ctx context.Context, tok, startDate, endDate string) ([]DailyStat, error) {
	const op = "trackapi.GetDailyStats"

	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	var out dailyStatsEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/stats/daily?"+q.Encode(), tok, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out.Stats, nil
}

// GetLinkStats возвращает показатели одной ссылки.
func (c *Client) GetLinkStats(ctx context.Context, tok, linkID string) (*LinkStats, error) {
	const op = "trackapi.GetLinkStats"

	var out linkStatsEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/stats/link/"+linkID, tok, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if out.Stats == nil {
		return nil, fmt.Errorf("%s: %w: missing stats", op, ErrInvalidResponse)
	}
	return out.Stats, nil
}

// GetLinkDailyStats возвращает показатели одной ссылки по дням за период.
func (c *Client) GetLinkDailyStats(ctx context.Context, tok, linkID, startDate, endDate string) ([]DailyStat, error) {
	const op = "trackapi.GetLinkDailyStats"

	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	var out dailyStatsEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/stats/link/"+linkID+"/daily?"+q.Encode(), tok, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out.Stats, nil
}
