package domain

import "context"

// TicketInfo is what the ticket source knows about a change ticket.
type TicketInfo struct {
	TicketID   string      `json:"ticket_id"`
	Components []Component `json:"components"`
	RawText    string      `json:"raw_text,omitempty"`
}

// TicketSource resolves a ticket's declared component list.
type TicketSource interface {
	TicketComponents(ctx context.Context, ticketID string) (*TicketInfo, error)
}

// ArchitectureSource exposes the technical-vision model for a ticket: the
// modeled elements and the set of component names approved for the change.
type ArchitectureSource interface {
	ModelElements(ctx context.Context, ticketID string) ([]ArchitectureElement, error)
	ApprovedComponents(ctx context.Context, ticketID string) ([]string, error)
}

// ProductionRegistry answers which version of a component is currently
// deployed. found is false when the component has never been deployed;
// that is not an error.
type ProductionRegistry interface {
	ProductionVersion(ctx context.Context, component string) (version string, found bool, err error)
}

// DocumentationSink persists the audit record of a validation run.
// RecordIDs are opaque to the pipeline.
type DocumentationSink interface {
	CreateRecord(ctx context.Context, ticketID, evaluator string, components []Component) (recordID string, err error)
	AppendVersionChanges(ctx context.Context, recordID string, changes []VersionChange) error
	AppendChecklist(ctx context.Context, recordID string, entries []ChecklistEntry) error
}

// InspectionReport holds the structural findings for one component repository.
type InspectionReport struct {
	Component         string   `json:"component"`
	RepositoryURL     string   `json:"repository_url"`
	HasContract       bool     `json:"has_contract"`
	DependenciesValid bool     `json:"dependencies_valid"`
	StructureValid    bool     `json:"structure_valid"`
	Issues            []string `json:"issues"`
}

// RepositoryInspector reports structural, dependency, and contract findings
// for a component's source repository.
type RepositoryInspector interface {
	Inspect(ctx context.Context, repositoryURL, component string) (*InspectionReport, error)
}

// ConfigLoader loads the pipeline configuration for a working directory.
type ConfigLoader interface {
	Load(path string) (PipelineConfig, error)
}
