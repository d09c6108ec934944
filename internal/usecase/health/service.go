package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status   Status
	Checks   map[string]CheckResult
	Products int
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogReader
	history HistoryPinger
}

// New creates a Service. history can be nil when no session store is wired.
func New(catalog CatalogReader, history HistoryPinger) *Service {
	return &Service{catalog: catalog, history: history}
}

// Check runs health checks against all components. An empty catalog counts
// as a failing check since every product operation depends on it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	products := len(s.catalog.Rows())
	if s.catalog.Empty() {
		checks["catalog"] = CheckError
	} else {
		checks["catalog"] = CheckOK
	}

	if s.history != nil {
		if err := s.history.Ping(ctx); err != nil {
			checks["history"] = CheckError
		} else {
			checks["history"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, Products: products}
}
