package domain

import (
	"fmt"
	"time"
)

// Endpoint is the location of one external collaborator.
type Endpoint struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token,omitempty"`
}

// PipelineConfig holds everything the pipeline needs that is not derived
// from the ticket itself: collaborator endpoints, timeouts, the batch
// concurrency limit, and the compliance criteria set.
type PipelineConfig struct {
	Ticket       Endpoint `yaml:"ticket"`
	Architecture Endpoint `yaml:"architecture"`
	Registry     Endpoint `yaml:"registry"`
	DocSink      Endpoint `yaml:"docsink"`

	// TimeoutSeconds bounds every external call. 0 means the default.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Concurrency limits the parallel component-level tasks in the
	// version-check and code-validation stages.
	Concurrency int `yaml:"concurrency"`

	// GatewaySuffix marks components whose endpoint changes always require
	// a manual architecture-doc update.
	GatewaySuffix string `yaml:"gateway_suffix"`

	Criteria []ComplianceCriterion `yaml:"criteria"`
}

const (
	defaultTimeoutSeconds = 30
	defaultConcurrency    = 4
	defaultGatewaySuffix  = "-gateway"
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		TimeoutSeconds: defaultTimeoutSeconds,
		Concurrency:    defaultConcurrency,
		GatewaySuffix:  defaultGatewaySuffix,
		Criteria:       DefaultCriteria(),
	}
}

// DefaultCriteria is the built-in compliance checklist. Weights and
// mandatory flags follow the architecture review board's standard set.
func DefaultCriteria() []ComplianceCriterion {
	return []ComplianceCriterion{
		{
			ID:          "oauth2Authentication",
			Description: "APIs must authenticate via OAuth2 bearer tokens",
			Weight:      10,
			Mandatory:   true,
			Keywords:    []string{"oauth", "authentication", "auth token"},
		},
		{
			ID:          "structuredLogging",
			Description: "Services must emit structured logs with correlation ids",
			Weight:      8,
			Mandatory:   true,
			Keywords:    []string{"logging", "log format"},
		},
		{
			ID:          "testCoverage",
			Description: "Line coverage must not fall below the agreed minimum",
			Weight:      6,
			Mandatory:   false,
			Keywords:    []string{"coverage"},
		},
		{
			ID:          "apiContract",
			Description: "Published APIs must ship an OpenAPI contract",
			Weight:      9,
			Mandatory:   true,
			Keywords:    []string{"contract", "openapi", "specification"},
		},
		{
			ID:          "responseTime",
			Description: "APIs must meet the agreed latency SLA",
			Weight:      7,
			Mandatory:   false,
			Keywords:    []string{"sla", "latency", "response time"},
		},
		{
			ID:          "securityScan",
			Description: "No critical vulnerabilities in dependency scan",
			Weight:      10,
			Mandatory:   true,
			Keywords:    []string{"security", "vulnerability", "cve"},
		},
	}
}

// Validate catches malformed config before a run starts.
func (c PipelineConfig) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	for _, cr := range c.Criteria {
		if cr.ID == "" {
			return fmt.Errorf("criterion with empty id")
		}
		if cr.Weight <= 0 {
			return fmt.Errorf("criterion %s: weight must be positive, got %d", cr.ID, cr.Weight)
		}
	}
	return nil
}

// Timeout returns the per-call timeout as a duration.
func (c PipelineConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EffectiveConcurrency returns the batch limit, falling back to the default.
func (c PipelineConfig) EffectiveConcurrency() int {
	if c.Concurrency <= 0 {
		return defaultConcurrency
	}
	return c.Concurrency
}
