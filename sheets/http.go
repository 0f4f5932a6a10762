package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// HTTPStore talks to the hosted spreadsheet values API. Every call is a
// plain request/response; there is no streaming and no retry — a failed
// write is terminal for that attempt and must be re-initiated by the user.
type HTTPStore struct {
	httpClient    *http.Client
	baseURL       string
	spreadsheetID string
	apiKey        string
}

// NewHTTPStore creates a values-API client for one spreadsheet.
func NewHTTPStore(baseURL, spreadsheetID, apiKey string) *HTTPStore {
	return &HTTPStore{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:       baseURL,
		spreadsheetID: spreadsheetID,
		apiKey:        apiKey,
	}
}

type valuesResponse struct {
	Values [][]flexString `json:"values"`
}

type valuesPayload struct {
	Range          string     `json:"range,omitempty"`
	MajorDimension string     `json:"majorDimension,omitempty"`
	Values         [][]string `json:"values"`
}

type batchUpdatePayload struct {
	ValueInputOption string          `json:"valueInputOption"`
	Data             []valuesPayload `json:"data"`
}

// flexString absorbs the API's habit of returning unformatted cells as JSON
// numbers or booleans; records only ever see strings.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*f = "TRUE"
		} else {
			*f = "FALSE"
		}
		return nil
	}
	return fmt.Errorf("cell value is neither string, number nor bool: %s", string(data))
}

func (s *HTTPStore) valuesURL(rng, suffix string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	if s.apiKey != "" {
		query.Set("key", s.apiKey)
	}
	return fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s%s?%s",
		s.baseURL, url.PathEscape(s.spreadsheetID), url.PathEscape(rng), suffix, query.Encode())
}

// Read fetches the rows of a range. A range with no data yields no rows and
// no error.
func (s *HTTPStore) Read(ctx context.Context, rng string) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.valuesURL(rng, "", nil), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("sheets API returned non-OK status: " + resp.Status)
	}

	var apiResp valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	rows := make([][]string, len(apiResp.Values))
	for i, row := range apiResp.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = string(cell)
		}
		rows[i] = cells
	}
	return rows, nil
}

// Append adds rows after the last data row of the range's sheet.
func (s *HTTPStore) Append(ctx context.Context, rng string, rows [][]string) error {
	query := url.Values{}
	query.Set("valueInputOption", "USER_ENTERED")
	query.Set("insertDataOption", "INSERT_ROWS")
	return s.write(ctx, http.MethodPost, s.valuesURL(rng, ":append", query), valuesPayload{Values: rows})
}

// Update overwrites the rows of a range.
func (s *HTTPStore) Update(ctx context.Context, rng string, rows [][]string) error {
	query := url.Values{}
	query.Set("valueInputOption", "USER_ENTERED")
	return s.write(ctx, http.MethodPut, s.valuesURL(rng, "", query), valuesPayload{Values: rows})
}

// BatchUpdate overwrites several ranges in one request. The API applies the
// writes row by row; partial failure is possible and is not reconciled here.
func (s *HTTPStore) BatchUpdate(ctx context.Context, updates []RangeUpdate) error {
	payload := batchUpdatePayload{ValueInputOption: "USER_ENTERED"}
	for _, u := range updates {
		payload.Data = append(payload.Data, valuesPayload{Range: u.Range, Values: u.Rows})
	}

	query := url.Values{}
	if s.apiKey != "" {
		query.Set("key", s.apiKey)
	}
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values:batchUpdate?%s",
		s.baseURL, url.PathEscape(s.spreadsheetID), query.Encode())
	return s.write(ctx, http.MethodPost, endpoint, payload)
}

func (s *HTTPStore) write(ctx context.Context, method, endpoint string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.New("sheets API returned non-OK status: " + resp.Status)
	}
	return nil
}
