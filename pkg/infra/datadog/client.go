package datadog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/infra"
	"github.com/k-morita/deployscope/pkg/utils/logging"
	"github.com/k-morita/deployscope/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const defaultBaseURL = "https://api.datadoghq.com"

// Client reads incidents from the Datadog incident management API.
type Client struct {
	apiKey  types.DatadogAPIKey
	appKey  types.DatadogAppKey
	baseURL string
	client  infra.HTTPClient
}

var _ interfaces.IncidentSource = (*Client)(nil)

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(x *Client) {
		x.baseURL = u
	}
}

func WithHTTPClient(client infra.HTTPClient) Option {
	return func(x *Client) {
		x.client = client
	}
}

func New(apiKey types.DatadogAPIKey, appKey types.DatadogAppKey, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "apiKey is empty")
	}
	if appKey == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appKey is empty")
	}

	client := &Client{
		apiKey:  apiKey,
		appKey:  appKey,
		baseURL: defaultBaseURL,
		client:  http.DefaultClient,
	}
	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

type incidentResponse struct {
	Data []incidentData `json:"data"`
	Meta struct {
		Pagination struct {
			Offset     int `json:"offset"`
			NextOffset int `json:"next_offset"`
			Size       int `json:"size"`
		} `json:"pagination"`
	} `json:"meta"`
}

type incidentData struct {
	ID         string `json:"id"`
	Attributes struct {
		Title    string     `json:"title"`
		State    string     `json:"state"`
		Created  time.Time  `json:"created"`
		Resolved *time.Time `json:"resolved"`
		Fields   map[string]struct {
			Type  string `json:"type"`
			Value any    `json:"value"`
		} `json:"fields"`
	} `json:"attributes"`
}

func (x *Client) FetchIncidents(ctx context.Context, serviceName string, since time.Time) ([]*model.Incident, error) {
	var incidents []*model.Incident

	offset := 0
	for {
		page, err := x.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}

		for _, d := range page.Data {
			incident := mapIncident(d)
			if incident.StartedAt.Before(since) {
				continue
			}
			if serviceName != "" && incident.ServiceName != serviceName {
				continue
			}
			incidents = append(incidents, incident)
		}

		if page.Meta.Pagination.NextOffset <= offset || len(page.Data) == 0 {
			break
		}
		offset = page.Meta.Pagination.NextOffset
	}

	logging.From(ctx).Debug("Fetched incidents",
		slog.String("serviceName", serviceName),
		slog.Int("count", len(incidents)),
	)

	return incidents, nil
}

func (x *Client) fetchPage(ctx context.Context, offset int) (*incidentResponse, error) {
	endpoint := x.baseURL + "/api/v2/incidents?" + url.Values{
		"page[offset]": []string{strconv.Itoa(offset)},
		"page[size]":   []string{"100"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create incident request")
	}
	req.Header.Set("DD-API-KEY", string(x.apiKey))
	req.Header.Set("DD-APPLICATION-KEY", string(x.appKey))

	resp, err := x.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch incidents")
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.Wrap(types.ErrInvalidSourceData, "unexpected status from incident API",
			goerr.V("status", resp.StatusCode),
		)
	}

	var page incidentResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, goerr.Wrap(err, "failed to decode incident response")
	}

	return &page, nil
}

func mapIncident(d incidentData) *model.Incident {
	incident := &model.Incident{
		ID:          types.IncidentID(d.ID),
		Title:       d.Attributes.Title,
		State:       mapState(d.Attributes.State),
		Severity:    mapSeverity(fieldValue(d, "severity")),
		ServiceName: fieldValue(d, "services"),
		StartedAt:   d.Attributes.Created,
		ResolvedAt:  d.Attributes.Resolved,
	}

	if incident.ResolvedAt != nil {
		duration := int64(incident.ResolvedAt.Sub(incident.StartedAt) / time.Second)
		incident.DurationSeconds = &duration
	}

	return incident
}

func fieldValue(d incidentData, name string) string {
	field, ok := d.Attributes.Fields[name]
	if !ok || field.Value == nil {
		return ""
	}

	switch v := field.Value.(type) {
	case string:
		return v
	case []any:
		if len(v) == 0 {
			return ""
		}
		if s, ok := v[0].(string); ok {
			return s
		}
	}

	return ""
}

// Unknown states and severities fall back to the most pessimistic reading for
// state and the least for severity.
func mapState(state string) types.IncidentState {
	switch strings.ToLower(state) {
	case "resolved", "completed":
		return types.IncidentResolved
	case "stable":
		return types.IncidentStable
	case "active", "declared":
		return types.IncidentActive
	default:
		return types.IncidentActive
	}
}

func mapSeverity(severity string) types.IncidentSeverity {
	switch strings.ToUpper(severity) {
	case "SEV-1", "SEV1":
		return types.SeveritySEV1
	case "SEV-2", "SEV2":
		return types.SeveritySEV2
	case "SEV-3", "SEV3":
		return types.SeveritySEV3
	case "SEV-4", "SEV4":
		return types.SeveritySEV4
	case "SEV-5", "SEV5":
		return types.SeveritySEV5
	default:
		return types.SeveritySEV5
	}
}
