package yahoo_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tickerprovider/internal/yahoo"
)

const optionsBody = `{"optionChain":{"result":[{
  "expirationDates": [1718928000, 1721606400],
  "options": [{
    "calls": [
      {"contractSymbol": "AAPL240621C00190000", "strike": 190.0, "currency": "USD",
       "lastPrice": 5.25, "bid": 5.1, "ask": 5.4, "change": 0.3, "percentChange": 6.06,
       "volume": 1200, "openInterest": 5400, "impliedVolatility": 0.22,
       "inTheMoney": false, "contractSize": "REGULAR", "lastTradeDate": 1718841600}
    ],
    "puts": [
      {"contractSymbol": "AAPL240621P00180000", "strike": 180.0, "inTheMoney": false}
    ]
  }]
}],"error":null}}`

func TestOptionExpirations(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	stubJSON(t, httpClient, optionsBody, func(req *http.Request) {
		require.Contains(t, req.URL.Path, "/v7/finance/options/AAPL")
		require.Empty(t, req.URL.Query().Get("date"))
	})
	client := yahoo.New(yahoo.WithHTTPClient(httpClient))

	dates, err := client.OptionExpirations(t.Context(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, []string{"2024-06-21", "2024-07-22"}, dates)
}

func TestOptionChain_DecodesBothSides(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	stubJSON(t, httpClient, optionsBody, func(req *http.Request) {
		require.Equal(t, "1718928000", req.URL.Query().Get("date"))
	})
	client := yahoo.New(yahoo.WithHTTPClient(httpClient))

	calls, puts, err := client.OptionChain(t.Context(), "AAPL", "2024-06-21")
	require.NoError(t, err)
	require.Equal(t, 1, calls.NumRows())
	require.Equal(t, 1, puts.NumRows())

	sym, _ := calls.At(0, "contractSymbol").Str()
	require.Equal(t, "AAPL240621C00190000", sym)
	strike, _ := calls.At(0, "strike").Float()
	require.Equal(t, 190.0, strike)

	last, ok := calls.At(0, "lastTradeDate").Time()
	require.True(t, ok, "lastTradeDate epoch must decode to a time value")
	require.Equal(t, time.Unix(1718841600, 0).UTC(), last)

	// Sparse put: missing fields stay absent for the mapper to default.
	require.True(t, puts.At(0, "currency").IsAbsent())
}

func TestOptionChain_BadDate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	client := yahoo.New(yahoo.WithHTTPClient(httpClient))

	_, _, err := client.OptionChain(t.Context(), "AAPL", "June 21st")
	require.ErrorContains(t, err, "bad expiration date")
}
