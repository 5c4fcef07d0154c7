package price

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
)

const (
	PRICE_TTL  = time.Minute
	RETRIES    = 2
	RETRY_WAIT = time.Millisecond * 200
)

type UsdQuote struct {
	Price float64 `json:"price"`
}

type Quote struct {
	USD UsdQuote `json:"USD"`
}

type TokenQuote struct {
	Quote Quote `json:"quote"`
}

type ResponseStatus struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type CoinmarketcapResponse struct {
	Status ResponseStatus        `json:"status"`
	Data   map[string]TokenQuote `json:"data"`
}

// CoinmarketcapAPI fetches USD token prices and keeps them for PRICE_TTL.
type CoinmarketcapAPI struct {
	url    string
	apiKey string

	client     *http.Client
	priceCache *ttlcache.Cache[string, float64]
}

func NewCoinmarketcapAPI(url string, apiKey string) *CoinmarketcapAPI {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = RETRIES
	retryClient.RetryWaitMin = RETRY_WAIT
	retryClient.RetryWaitMax = RETRY_WAIT
	retryClient.Logger = nil

	return &CoinmarketcapAPI{
		url:    url,
		apiKey: apiKey,
		client: retryClient.StandardClient(),
		priceCache: ttlcache.New(
			ttlcache.WithTTL[string, float64](PRICE_TTL),
		),
	}
}

func (c *CoinmarketcapAPI) TokenPrice(symbol string) (float64, error) {
	cached := c.priceCache.Get(symbol)
	if cached != nil && !cached.IsExpired() {
		return cached.Value(), nil
	}

	endpoint := fmt.Sprintf("%s/v1/cryptocurrency/quotes/latest?symbol=%s", c.url, url.QueryEscape(symbol))
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accepts", "application/json")
	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP request failed with status code %d", resp.StatusCode)
	}

	var cmcResponse CoinmarketcapResponse
	err = json.NewDecoder(resp.Body).Decode(&cmcResponse)
	if err != nil {
		return 0, err
	}

	if cmcResponse.Status.ErrorCode != 0 {
		return 0, fmt.Errorf("API Error: %d - %s", cmcResponse.Status.ErrorCode, cmcResponse.Status.ErrorMessage)
	}

	quote, ok := cmcResponse.Data[symbol]
	if !ok {
		return 0, fmt.Errorf("no quote for token %s", symbol)
	}

	log.Debug().Str("symbol", symbol).Float64("price", quote.Quote.USD.Price).Msg("Fetched token price")
	c.priceCache.Set(symbol, quote.Quote.USD.Price, ttlcache.DefaultTTL)
	return quote.Quote.USD.Price, nil
}
