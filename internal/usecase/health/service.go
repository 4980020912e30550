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

// Report aggregates health check results. Posts carries the catalog
// size when the catalog check passes.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	Posts  int
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	catalog CatalogReader
}

// New creates a Service. catalog may be nil when no catalog check is wanted.
func New(db DBPinger, catalog CatalogReader) *Service {
	return &Service{db: db, catalog: catalog}
}

// Check pings the database and reads the post catalog through the full
// repository path. Either failing degrades the overall status.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	posts := 0

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.catalog != nil {
		if all, err := s.catalog.All(ctx); err != nil {
			checks["catalog"] = CheckError
		} else {
			checks["catalog"] = CheckOK
			posts = len(all)
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, Posts: posts}
}
