// internal/app/features/labs/types.go
package labs

import (
	"time"

	"github.com/pathlabhq/pathlab/internal/domain/models"
)

// labRequest is the create/update payload. It deliberately has no
// subscription, stats, or creator fields; those are not client-writable
// through this surface.
type labRequest struct {
	Name     string             `json:"name"`
	Address  models.LabAddress  `json:"address"`
	Contact  models.LabContact  `json:"contact"`
	Settings models.LabSettings `json:"settings"`
}

// subscriptionRequest is the super-admin subscription payload.
type subscriptionRequest struct {
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// statsResponse is the lab statistics payload.
type statsResponse struct {
	ReportsStats   interface{} `json:"reportsStats"`
	UsersStats     interface{} `json:"usersStats"`
	MonthlyReports interface{} `json:"monthlyReports"`
	TotalReports   int64       `json:"totalReports"`
	TotalUsers     int64       `json:"totalUsers"`
}
