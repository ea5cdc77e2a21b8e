package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"tickerprovider/internal/source"
)

type optionsEnvelope struct {
	OptionChain struct {
		Result []optionsResult `json:"result"`
		Error  *apiError       `json:"error"`
	} `json:"optionChain"`
}

type optionsResult struct {
	ExpirationDates []int64 `json:"expirationDates"`
	Options         []struct {
		Calls []map[string]any `json:"calls"`
		Puts  []map[string]any `json:"puts"`
	} `json:"options"`
}

func (c *Client) fetchOptions(ctx context.Context, symbol, date string) (optionsResult, error) {
	q := url.Values{}
	if date != "" {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return optionsResult{}, fmt.Errorf("bad expiration date %q: %w", date, err)
		}
		q.Set("date", fmt.Sprintf("%d", t.UTC().Unix()))
	}
	var env optionsEnvelope
	if err := c.getJSON(ctx, "/v7/finance/options/"+url.PathEscape(symbol), q, &env); err != nil {
		return optionsResult{}, err
	}
	if env.OptionChain.Error != nil {
		return optionsResult{}, fmt.Errorf("options %s: %s (%s)", symbol, env.OptionChain.Error.Description, env.OptionChain.Error.Code)
	}
	if len(env.OptionChain.Result) == 0 {
		return optionsResult{}, fmt.Errorf("options %s: empty result", symbol)
	}
	return env.OptionChain.Result[0], nil
}

// OptionExpirations lists the available expiration dates as YYYY-MM-DD
// strings, in upstream order.
func (c *Client) OptionExpirations(ctx context.Context, symbol string) ([]string, error) {
	res, err := c.fetchOptions(ctx, symbol, "")
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(res.ExpirationDates))
	for _, epoch := range res.ExpirationDates {
		dates = append(dates, time.Unix(epoch, 0).UTC().Format("2006-01-02"))
	}
	return dates, nil
}

// OptionChain returns the call and put tables for one expiration date
// (the nearest one when date is empty), rows in as-returned order.
func (c *Client) OptionChain(ctx context.Context, symbol, date string) (source.Frame, source.Frame, error) {
	res, err := c.fetchOptions(ctx, symbol, date)
	if err != nil {
		return source.Frame{}, source.Frame{}, err
	}
	if len(res.Options) == 0 {
		return source.Frame{}, source.Frame{}, nil
	}
	return contractsFrame(res.Options[0].Calls), contractsFrame(res.Options[0].Puts), nil
}

// chainCols are the contract fields carried through to the mapper.
var chainCols = []string{
	"contractSymbol", "strike", "currency", "lastPrice", "bid", "ask",
	"change", "percentChange", "volume", "openInterest",
	"impliedVolatility", "inTheMoney", "contractSize", "lastTradeDate",
}

func contractsFrame(contracts []map[string]any) source.Frame {
	frame := source.Frame{Cols: make([]source.Col, len(chainCols))}
	for i, name := range chainCols {
		frame.Cols[i] = source.Col{Name: name}
	}
	for _, contract := range contracts {
		row := make([]source.Value, len(chainCols))
		for i, name := range chainCols {
			v := toValue(contract[name])
			if name == "lastTradeDate" {
				if t, ok := coerceEpoch(v); ok {
					v = source.Time(t)
				}
			}
			row[i] = v
		}
		frame.Rows = append(frame.Rows, row)
	}
	return frame
}
