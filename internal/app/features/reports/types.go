// internal/app/features/reports/types.go
package reports

import (
	"github.com/pathlabhq/pathlab/internal/domain/models"
)

// reportRequest is the create/update payload. Lab and technician come
// from the actor, never from the body, so a report cannot be planted in
// another tenant.
type reportRequest struct {
	PatientInfo models.PatientInfo   `json:"patientInfo"`
	TestInfo    models.TestInfo      `json:"testInfo"`
	Results     []models.ResultEntry `json:"results"`
	Status      string               `json:"status"`
}

type commentRequest struct {
	Text string `json:"text"`
}
