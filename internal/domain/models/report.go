// internal/domain/models/report.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is a diagnostic test report. It belongs to exactly one lab and
// holds weak references to the technician who created it and the admin who
// verified it (deleting a user never deletes their reports).
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientInfo PatientInfo        `bson:"patient_info" json:"patientInfo"`
	TestInfo    TestInfo           `bson:"test_info" json:"testInfo"`
	Results     []ResultEntry      `bson:"results,omitempty" json:"results,omitempty"`

	// Status lifecycle: pending -> in-progress -> completed -> verified -> delivered.
	Status string `bson:"status" json:"status"`

	LabID        primitive.ObjectID  `bson:"lab_id" json:"labId"`
	TechnicianID primitive.ObjectID  `bson:"technician_id" json:"technicianId"`
	VerifiedBy   *primitive.ObjectID `bson:"verified_by,omitempty" json:"verifiedBy,omitempty"`

	Comments    []Comment    `bson:"comments,omitempty" json:"comments,omitempty"`
	Attachments []Attachment `bson:"attachments,omitempty" json:"attachments,omitempty"`
	ReportMeta  ReportMeta   `bson:"report_meta" json:"reportMeta"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type PatientInfo struct {
	Name      string         `bson:"name" json:"name"`
	NameCI    string         `bson:"name_ci" json:"-"`
	Age       int            `bson:"age" json:"age"`
	Gender    string         `bson:"gender" json:"gender"` // male | female | other
	Contact   PatientContact `bson:"contact,omitempty" json:"contact,omitempty"`
	PatientID string         `bson:"patient_id" json:"patientId"`
}

type PatientContact struct {
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

type TestInfo struct {
	Name                 string    `bson:"name" json:"name"`
	NameCI               string    `bson:"name_ci" json:"-"`
	Category             string    `bson:"category" json:"category"`
	Description          string    `bson:"description,omitempty" json:"description,omitempty"`
	Method               string    `bson:"method,omitempty" json:"method,omitempty"`
	SampleType           string    `bson:"sample_type" json:"sampleType"`
	SampleCollectionDate time.Time `bson:"sample_collection_date" json:"sampleCollectionDate"`
	SampleID             string    `bson:"sample_id" json:"sampleId"`
}

// ResultEntry is one measured parameter. Order is preserved as entered.
type ResultEntry struct {
	Parameter      string `bson:"parameter" json:"parameter"`
	Value          string `bson:"value" json:"value"`
	Unit           string `bson:"unit,omitempty" json:"unit,omitempty"`
	ReferenceRange string `bson:"reference_range,omitempty" json:"referenceRange,omitempty"`
	Interpretation string `bson:"interpretation,omitempty" json:"interpretation,omitempty"`
	Flag           string `bson:"flag,omitempty" json:"flag,omitempty"` // normal | low | high | critical
}

type Comment struct {
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Text      string             `bson:"text" json:"text"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Attachment is an opaque URL reference; file storage is out of scope.
type Attachment struct {
	Name       string             `bson:"name" json:"name"`
	URL        string             `bson:"url" json:"url"`
	Type       string             `bson:"type,omitempty" json:"type,omitempty"`
	UploadedBy primitive.ObjectID `bson:"uploaded_by" json:"uploadedBy"`
	UploadedAt time.Time          `bson:"uploaded_at" json:"uploadedAt"`
}

// ReportMeta tracks edit provenance. Version increments by exactly 1 on
// every successful content update; clients can compare versions to detect
// conflicting writes (detection only, last write wins).
type ReportMeta struct {
	GeneratedAt    time.Time           `bson:"generated_at" json:"generatedAt"`
	LastModifiedAt *time.Time          `bson:"last_modified_at,omitempty" json:"lastModifiedAt,omitempty"`
	LastModifiedBy *primitive.ObjectID `bson:"last_modified_by,omitempty" json:"lastModifiedBy,omitempty"`
	Version        int64               `bson:"version" json:"version"`
	DeliveryStatus DeliveryStatus      `bson:"delivery_status,omitempty" json:"deliveryStatus,omitempty"`
}

type DeliveryStatus struct {
	Email    ChannelDelivery `bson:"email,omitempty" json:"email,omitempty"`
	SMS      ChannelDelivery `bson:"sms,omitempty" json:"sms,omitempty"`
	WhatsApp ChannelDelivery `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
}

type ChannelDelivery struct {
	Sent      bool       `bson:"sent,omitempty" json:"sent,omitempty"`
	SentAt    *time.Time `bson:"sent_at,omitempty" json:"sentAt,omitempty"`
	Recipient string     `bson:"recipient,omitempty" json:"recipient,omitempty"`
}
