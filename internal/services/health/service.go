package health

// Service encapsulates health-related checks.
type Service struct {
	name string
}

// Status is the health payload.
type Status struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{name: "symptom-analyzer"}
}

// Status reports the service as healthy; the scorer has no dependencies to probe.
func (s *Service) Status() Status {
	return Status{Status: "healthy", Service: s.name}
}
