package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// FlowSummary — запись каталога из GET /flows.
type FlowSummary struct {
	FlowID    string `json:"flow_id"`
	PersonaID string `json:"persona_id"`
	Country   string `json:"country"`
	Version   string `json:"version"`
	StepCount int    `json:"step_count"`
	Title     string `json:"title"`
}

// FlowHeader — заголовок flow.
type FlowHeader struct {
	FlowID    string `json:"flow_id"`
	PersonaID string `json:"persona_id"`
	Country   string `json:"country"`
	Version   string `json:"version"`
}

// ResolvedFlow — flow с раскрытыми шагами.
type ResolvedFlow struct {
	Flow  FlowHeader       `json:"flow"`
	Steps []map[string]any `json:"steps"`
}

// Recommendation — ответ POST /recommend-flow.
type Recommendation struct {
	FlowID     string `json:"flow_id"`
	Title      string `json:"title"`
	StepCount  int    `json:"step_count"`
	Reason     string `json:"reason"`
	Confidence string `json:"confidence"`
}

// Progress — прогресс по flow.
type Progress struct {
	FlowID         string          `json:"flow_id"`
	CompletedSteps []string        `json:"completed_steps"`
	Documents      map[string]bool `json:"documents,omitempty"`
}

// StatusResponse — подтверждение записи.
type StatusResponse struct {
	Status string `json:"status"`
	FlowID string `json:"flow_id,omitempty"`
}

// Eligibility — ответ GET /eligibility.
type Eligibility struct {
	Version    string      `json:"version,omitempty"`
	Dimensions []Dimension `json:"dimensions"`
}

// Dimension — вопрос анкеты.
type Dimension struct {
	ID       string `json:"id"`
	Question string `json:"question,omitempty"`
	Options  []struct {
		Value string `json:"value"`
		Label string `json:"label,omitempty"`
	} `json:"options"`
}

// --- Request types ---

// IntakeRequest — ответы анкеты.
type IntakeRequest struct {
	Nationality  string `json:"nationality"`
	EntryContext string `json:"entry_context"`
	Purpose      string `json:"purpose"`
	City         string `json:"city"`
}

type flowListResponse struct {
	Flows []FlowSummary `json:"flows"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Simplify API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Flows ---

// ListFlows возвращает каталог flows.
func (c *Client) ListFlows() ([]FlowSummary, error) {
	var resp flowListResponse
	err := c.get("/flows", &resp)
	return resp.Flows, err
}

// GetFlow возвращает flow с шагами.
func (c *Client) GetFlow(flowID string) (*ResolvedFlow, error) {
	var flow ResolvedFlow
	err := c.get("/flow/"+url.PathEscape(flowID), &flow)
	return &flow, err
}

// Recommend подбирает flow по анкете.
func (c *Client) Recommend(req IntakeRequest) (*Recommendation, error) {
	var rec Recommendation
	err := c.post("/recommend-flow", req, &rec)
	return &rec, err
}

// Eligibility возвращает вопросы анкеты.
func (c *Client) Eligibility() (*Eligibility, error) {
	var e Eligibility
	err := c.get("/eligibility", &e)
	return &e, err
}

// --- Progress ---

// GetProgress возвращает прогресс по flow.
func (c *Client) GetProgress(flowID string) (*Progress, error) {
	var p Progress
	err := c.get("/progress/"+url.PathEscape(flowID), &p)
	return &p, err
}

// SaveProgress перезаписывает прогресс по flow.
func (c *Client) SaveProgress(p Progress) (*StatusResponse, error) {
	var status StatusResponse
	err := c.post("/progress/"+url.PathEscape(p.FlowID), p, &status)
	return &status, err
}

// DeleteProgress сбрасывает прогресс по flow.
func (c *Client) DeleteProgress(flowID string) (*StatusResponse, error) {
	var status StatusResponse
	err := c.doJSON(http.MethodDelete, "/progress/"+url.PathEscape(flowID), nil, &status)
	return &status, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doJSON(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doJSON(http.MethodPost, path, body, result)
}

func (c *Client) doJSON(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Error.Code == "" {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
