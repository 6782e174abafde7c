package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// HTTPClient is the production Client, a thin JSON client over the
// provider's REST API with bearer-token auth.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type accountPayload struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     *string         `json:"type"`
	Usage    *string         `json:"usage"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

type listAccountsPayload struct {
	Accounts []accountPayload `json:"accounts"`
}

func (c *HTTPClient) ListAccounts(ctx context.Context, token string) ([]Account, error) {
	var payload listAccountsPayload
	if err := c.get(ctx, token, "/accounts", &payload); err != nil {
		return nil, err
	}

	accounts := make([]Account, len(payload.Accounts))
	for i, pa := range payload.Accounts {
		accounts[i] = Account{
			ProviderAccountID: pa.ID,
			Name:              pa.Name,
			Type:              pa.Type,
			Usage:             pa.Usage,
			Balance:           pa.Balance,
			Currency:          pa.Currency,
		}
	}
	return accounts, nil
}

type transactionPayload struct {
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Label    string          `json:"label"`
	Category string          `json:"category"`
}

type listTransactionsPayload struct {
	Transactions []transactionPayload `json:"transactions"`
}

func (c *HTTPClient) ListTransactions(ctx context.Context, token, providerAccountID string, limit int) ([]Transaction, error) {
	endpoint := "/accounts/" + url.PathEscape(providerAccountID) + "/transactions?limit=" + strconv.Itoa(limit)

	var payload listTransactionsPayload
	if err := c.get(ctx, token, endpoint, &payload); err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(payload.Transactions))
	for _, pt := range payload.Transactions {
		date, err := time.Parse(dateLayout, pt.Date)
		if err != nil {
			return nil, fmt.Errorf("provider: malformed transaction date %q: %w", pt.Date, err)
		}
		transactions = append(transactions, Transaction{
			Date:     date,
			Amount:   pt.Amount,
			Label:    pt.Label,
			Category: pt.Category,
		})
	}
	return transactions, nil
}

func (c *HTTPClient) get(ctx context.Context, token, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
