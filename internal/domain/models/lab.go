// internal/domain/models/lab.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lab is the tenant record. Every user (except super-admins) and every
// report belongs to exactly one lab, and the lab owns their lifecycle:
// deleting a lab cascades to its users and reports.
type Lab struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	NameCI  string             `bson:"name_ci" json:"-"` // case-insensitive for search/sort
	Address LabAddress         `bson:"address,omitempty" json:"address,omitempty"`
	Contact LabContact         `bson:"contact,omitempty" json:"contact,omitempty"`

	Subscription Subscription `bson:"subscription" json:"subscription"`
	Settings     LabSettings  `bson:"settings,omitempty" json:"settings,omitempty"`
	Stats        LabStats     `bson:"stats" json:"stats"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type LabAddress struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode string `bson:"zip_code,omitempty" json:"zipCode,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

type LabContact struct {
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// Subscription is managed exclusively by super-admins; lab admins cannot
// touch it through lab updates.
type Subscription struct {
	Plan      string     `bson:"plan" json:"plan"`     // basic | premium | enterprise
	Status    string     `bson:"status" json:"status"` // active | inactive | suspended
	StartDate time.Time  `bson:"start_date" json:"startDate"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`
}

// LabSettings holds per-lab report branding. Header and footer may contain
// limited HTML and are sanitized before persistence.
type LabSettings struct {
	ReportHeader string   `bson:"report_header,omitempty" json:"reportHeader,omitempty"`
	ReportFooter string   `bson:"report_footer,omitempty" json:"reportFooter,omitempty"`
	Logo         string   `bson:"logo,omitempty" json:"logo,omitempty"`
	Theme        LabTheme `bson:"theme,omitempty" json:"theme,omitempty"`
}

type LabTheme struct {
	PrimaryColor   string `bson:"primary_color,omitempty" json:"primaryColor,omitempty"`
	SecondaryColor string `bson:"secondary_color,omitempty" json:"secondaryColor,omitempty"`
}

// LabStats are denormalized counters maintained alongside report writes.
// They are advisory (see the stats feature for authoritative aggregates).
type LabStats struct {
	TotalReports   int64      `bson:"total_reports" json:"totalReports"`
	TotalPatients  int64      `bson:"total_patients" json:"totalPatients"`
	LastReportDate *time.Time `bson:"last_report_date,omitempty" json:"lastReportDate,omitempty"`
}
