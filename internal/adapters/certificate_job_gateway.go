package adapters

import (
	"context"
	"time"

	certsvc "gascert_backend/internal/certificates/service"
	jobsvc "gascert_backend/internal/jobs/service"

	"github.com/google/uuid"
)

// CertificateJobGateway adapts the jobs module to the certificate
// generator. It implements certificates/service.JobGateway.
type CertificateJobGateway struct {
	jobs *jobsvc.Service
}

// NewCertificateJobGateway creates the adapter.
func NewCertificateJobGateway(jobs *jobsvc.Service) *CertificateJobGateway {
	return &CertificateJobGateway{jobs: jobs}
}

var _ certsvc.JobGateway = (*CertificateJobGateway)(nil)

// ResolveJob loads the job with freshly merged canonical fields and its
// appliance list. Field state always comes from the database here, never
// from the generate request, so issuance validation runs against what is
// actually persisted.
func (a *CertificateJobGateway) ResolveJob(ctx context.Context, userID, jobID uuid.UUID) (*certsvc.JobData, error) {
	jc, err := a.jobs.ResolveContext(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	appliances, err := a.jobs.ListAppliances(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	data := &certsvc.JobData{
		JobID:   jc.Job.ID,
		JobType: jc.Job.JobType,
		Status:  jc.Job.Status,
		Fields:  jc.ResolvedFields(),
	}
	for _, appliance := range appliances {
		data.Appliances = append(data.Appliances, certsvc.Appliance{
			ApplianceType:      appliance.ApplianceType,
			Location:           appliance.Location,
			MakeModel:          appliance.MakeModel,
			FlueType:           appliance.FlueType,
			OperatingPressure:  appliance.OperatingPressure,
			HeatInput:          appliance.HeatInput,
			CombustionReading:  appliance.CombustionReading,
			SafetyRating:       appliance.SafetyRating,
			ClassificationCode: appliance.ClassificationCode,
			DefectIdentified:   appliance.DefectIdentified,
		})
	}
	return data, nil
}

// WriteIssuedAt records the issuance timestamp in the job's field store.
func (a *CertificateJobGateway) WriteIssuedAt(ctx context.Context, userID, jobID uuid.UUID, issuedAt time.Time) error {
	return a.jobs.WriteIssuedAt(ctx, userID, jobID, issuedAt)
}

// MarkCompleted transitions the job to completed.
func (a *CertificateJobGateway) MarkCompleted(ctx context.Context, userID, jobID uuid.UUID) error {
	return a.jobs.MarkCompleted(ctx, userID, jobID)
}
