package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"pix-recebidos/config"
	"pix-recebidos/internal/core/domain"
	"pix-recebidos/pkg/apperror"
)

// QueryClient implements ports.QueryClient against the provider's payment
// detail endpoint. Providers disagree on payload shape, so the response is
// normalized before it leaves this package.
type QueryClient struct {
	queryURL string
	client   *http.Client
}

// NewQueryClient creates a new QueryClient.
func NewQueryClient(cfg config.ProviderConfig) *QueryClient {
	return &QueryClient{
		queryURL: cfg.QueryURL,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchPayment retrieves the authoritative detail record for a payment id.
func (c *QueryClient) FetchPayment(ctx context.Context, paymentID, bearerToken string) (*domain.PaymentDetails, error) {
	endpoint := c.queryURL + "/" + url.PathEscape(paymentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read query response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, apperror.ErrQueryFailed(resp.StatusCode, string(body))
	}

	details, err := normalize(paymentID, body)
	if err != nil {
		return nil, apperror.ErrQueryFailed(resp.StatusCode, err.Error())
	}
	return details, nil
}

// normalize flattens the provider payload into PaymentDetails. Three shapes
// are recognized, in order: a detail object at the top level, the object
// under pix[0], and the object under payments[0].
func normalize(paymentID string, body []byte) (*domain.PaymentDetails, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("malformed detail payload: %w", err)
	}

	obj := top
	for _, listKey := range []string{"pix", "payments"} {
		raw, ok := top[listKey]
		if !ok {
			continue
		}
		var list []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
			// Top-level fields still win; the list entry only fills gaps.
			merged := make(map[string]json.RawMessage, len(list[0])+len(top))
			for k, v := range list[0] {
				merged[k] = v
			}
			for k, v := range top {
				if k != listKey {
					merged[k] = v
				}
			}
			obj = merged
			break
		}
	}

	details := &domain.PaymentDetails{
		PaymentID: paymentID,
		Status:    stringField(obj, "status", "situacao"),
		PaidAt:    timeField(obj, "horario", "paid_at", "paidAt", "paymentDate", "payment_date", "liquidacao"),
		Raw:       json.RawMessage(body),
	}

	if amount, ok := amountField(obj); ok {
		details.AmountCentavos = amount
	}

	if payer, ok := obj["pagador"]; ok {
		details.PayerName, details.PayerDocument = payerFields(payer)
	} else if payer, ok := obj["payer"]; ok {
		details.PayerName, details.PayerDocument = payerFields(payer)
	} else {
		details.PayerName = stringField(obj, "nomePagador", "payer_name")
		details.PayerDocument = stringField(obj, "cpf", "cnpj", "payer_document")
	}

	return details, nil
}

func stringField(obj map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

func timeField(obj map[string]json.RawMessage, keys ...string) *time.Time {
	s := stringField(obj, keys...)
	if s == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &ts
}

// amountField handles the three observed encodings: valor as an object with
// an original field, valor as a decimal string, and amount as a number or
// string.
func amountField(obj map[string]json.RawMessage) (int64, bool) {
	if raw, ok := obj["valor"]; ok {
		var nested struct {
			Original string `json:"original"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && nested.Original != "" {
			if v, err := domain.ParseCentavos(nested.Original); err == nil {
				return v, true
			}
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			if v, err := domain.ParseCentavos(s); err == nil {
				return v, true
			}
		}
	}
	if raw, ok := obj["amount"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			if v, err := domain.ParseCentavos(s); err == nil {
				return v, true
			}
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return int64(f*100 + 0.5), true
		}
	}
	return 0, false
}

func payerFields(raw json.RawMessage) (name, document string) {
	var payer struct {
		Nome     string `json:"nome"`
		Name     string `json:"name"`
		CPF      string `json:"cpf"`
		CNPJ     string `json:"cnpj"`
		Document string `json:"document"`
	}
	if err := json.Unmarshal(raw, &payer); err != nil {
		return "", ""
	}
	name = payer.Nome
	if name == "" {
		name = payer.Name
	}
	document = payer.CPF
	if document == "" {
		document = payer.CNPJ
	}
	if document == "" {
		document = payer.Document
	}
	return name, document
}
