package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	RequestID string

	// RepoID is "owner/name" of a source repository
	RepoID       string
	CommitSHA    string
	DeploymentID string
	IncidentID   string
	SyncJob      string

	Environment string

	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppPrivateKey string

	DatadogAPIKey string
	DatadogAppKey string

	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string
)

func (x GoogleProjectID) String() string {
	return string(x)
}

func (x BQDatasetID) String() string {
	return string(x)
}

func (x BQTableID) String() string {
	return string(x)
}

const EnvProduction Environment = "production"

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

type IncidentState string

const (
	IncidentActive   IncidentState = "ACTIVE"
	IncidentStable   IncidentState = "STABLE"
	IncidentResolved IncidentState = "RESOLVED"
)

type IncidentSeverity string

const (
	SeveritySEV1 IncidentSeverity = "SEV1"
	SeveritySEV2 IncidentSeverity = "SEV2"
	SeveritySEV3 IncidentSeverity = "SEV3"
	SeveritySEV4 IncidentSeverity = "SEV4"
	SeveritySEV5 IncidentSeverity = "SEV5"
)

// Granularity selects the period length for bucketed metrics. An empty or
// unknown granularity produces no buckets rather than an error.
type Granularity string

const (
	Weekly   Granularity = "weekly"
	Biweekly Granularity = "biweekly"
	Monthly  Granularity = "monthly"
)

// DORALevel is the informational performance band derived from a CFR
// percentage.
type DORALevel string

const (
	LevelElite  DORALevel = "Elite"
	LevelHigh   DORALevel = "High"
	LevelMedium DORALevel = "Medium"
	LevelLow    DORALevel = "Low"
)

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

func (x DatadogAPIKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x DatadogAPIKey) String() string {
	return "***********"
}

func (x DatadogAppKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x DatadogAppKey) String() string {
	return "***********"
}
