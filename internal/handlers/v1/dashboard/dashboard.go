package dashboard

// Dashboard is the API response model for the current-position view.
// It is used only for responses, not for request bodies.
type Dashboard struct {
	DisplayCurrency string            `json:"displayCurrency" doc:"ISO 4217 display currency"`
	Categories      map[string]string `json:"categories" doc:"Decimal total per category"`
	Personal        string            `json:"personal" doc:"Decimal personal total"`
	Professional    string            `json:"professional" doc:"Decimal professional total"`
	Total           string            `json:"total" doc:"Decimal net worth"`
	Unconvertible   int               `json:"unconvertible" doc:"Count of balances excluded for missing exchange rates"`
	Accounts        []Account         `json:"accounts,omitempty" doc:"Per-account state"`
	Assets          []Asset           `json:"assets,omitempty" doc:"Per-asset state"`
}

// Account is one account line of the dashboard.
type Account struct {
	ID       string `json:"id" doc:"Account UUID"`
	Name     string `json:"name" doc:"Account name"`
	Balance  string `json:"balance" doc:"Decimal balance in the account currency"`
	Currency string `json:"currency" doc:"ISO 4217 account currency"`
	Usage    string `json:"usage" doc:"personal or professional"`
	LastSync string `json:"lastSync,omitempty" doc:"RFC3339 time of the last provider sync"`
	Stale    bool   `json:"stale" doc:"True when the account needs a refresh"`
}

// Asset is one asset line of the dashboard.
type Asset struct {
	ID              string `json:"id" doc:"Asset UUID"`
	Name            string `json:"name" doc:"Asset name"`
	Category        string `json:"category" doc:"Snapshot category"`
	Usage           string `json:"usage" doc:"personal or professional"`
	Value           string `json:"value" doc:"Decimal valuation"`
	NetValue        string `json:"netValue" doc:"Decimal valuation net of the linked loan"`
	MonthlyCashFlow string `json:"monthlyCashFlow" doc:"Decimal recurring monthly revenue minus cost"`
}
