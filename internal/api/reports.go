package api

import (
	"context"
	"encoding/json"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/session"
)

func (c *Client) Totals(ctx context.Context, sess session.Session) (core.Totals, error) {
	body, err := c.send(ctx, http.MethodGet, "/reports/totals", sess, nil)
	if err != nil {
		return core.Totals{}, err
	}
	return decodeObject[core.Totals](body)
}

func (c *Client) Monthly(ctx context.Context, sess session.Session) ([]core.MonthlyAggregate, error) {
	return getList[core.MonthlyAggregate](ctx, c, "/reports/monthly", sess)
}

func (c *Client) Categories(ctx context.Context, sess session.Session) ([]core.CategoryTotal, error) {
	return getList[core.CategoryTotal](ctx, c, "/reports/categories", sess)
}

// Insights fetches the AI report. raw is the JSON payload as received,
// suitable for caching verbatim; it is "null" for an empty body.
func (c *Client) Insights(ctx context.Context, sess session.Session) (raw json.RawMessage, ins core.Insights, err error) {
	body, err := c.send(ctx, http.MethodGet, "/reports/ai-insights", sess, nil)
	if err != nil {
		return nil, core.Insights{}, err
	}
	if body.IsNull() {
		return json.RawMessage("null"), core.Insights{}, nil
	}
	ins, err = decodeObject[core.Insights](body)
	if err != nil {
		return nil, core.Insights{}, err
	}
	return json.RawMessage(body.Raw), ins, nil
}
