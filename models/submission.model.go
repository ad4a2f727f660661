package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission is one startup registration. Email is the lookup key used by
// the payment flow; the store does not enforce its uniqueness.
type Submission struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`

	CompanyName        string `bson:"companyName" json:"companyName" validate:"max=300"`
	RepresentativeName string `bson:"representativeName" json:"representativeName" validate:"max=300"`
	PhoneNumber        string `bson:"phoneNumber" json:"phoneNumber" validate:"max=32"`
	Email              string `bson:"email" json:"email" validate:"required,email,max=254"`
	TeamMembers        string `bson:"teamMembers" json:"teamMembers" validate:"max=5000"`
	Idea               string `bson:"idea" json:"idea" validate:"max=5000"`
	IsRegistered       string `bson:"isRegistered" json:"isRegistered" validate:"max=300"`
	Founders           string `bson:"founders" json:"founders" validate:"max=5000"`
	OperationTime      string `bson:"operationTime" json:"operationTime" validate:"max=300"`
	CompanyType        string `bson:"companyType" json:"companyType" validate:"max=300"`
	HasTeam            string `bson:"hasTeam" json:"hasTeam" validate:"max=300"`
	ProblemStatement   string `bson:"problemStatement" json:"problemStatement" validate:"max=5000"`
	UniqueProduct      string `bson:"uniqueProduct" json:"uniqueProduct" validate:"max=5000"`
	LegalRequirements  string `bson:"legalRequirements" json:"legalRequirements" validate:"max=5000"`
	CurrentStage       string `bson:"currentStage" json:"currentStage" validate:"max=300"`
	HasFunding         string `bson:"hasFunding" json:"hasFunding" validate:"max=300"`
	FundingDetails     string `bson:"fundingDetails" json:"fundingDetails" validate:"max=5000"`
	HasAwards          string `bson:"hasAwards" json:"hasAwards" validate:"max=300"`
	AwardsDetails      string `bson:"awardsDetails" json:"awardsDetails" validate:"max=5000"`
	TargetCustomers    string `bson:"targetCustomers" json:"targetCustomers" validate:"max=5000"`
	HasPrototype       string `bson:"hasPrototype" json:"hasPrototype" validate:"max=300"`
	HasPilot           string `bson:"hasPilot" json:"hasPilot" validate:"max=300"`
	Runway             string `bson:"runway" json:"runway" validate:"max=300"`

	// Blob store paths, empty when no file was uploaded.
	PilotEvidence string `bson:"pilotEvidence" json:"pilotEvidence"`
	Video         string `bson:"video" json:"video"`

	PaymentStatus bool      `bson:"paymentStatus" json:"paymentStatus"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// TextFields maps each accepted form field name to its slot in s.
// Anything not listed here is not accepted from a client form.
func (s *Submission) TextFields() map[string]*string {
	return map[string]*string{
		"companyName":        &s.CompanyName,
		"representativeName": &s.RepresentativeName,
		"phoneNumber":        &s.PhoneNumber,
		"email":              &s.Email,
		"teamMembers":        &s.TeamMembers,
		"idea":               &s.Idea,
		"isRegistered":       &s.IsRegistered,
		"founders":           &s.Founders,
		"operationTime":      &s.OperationTime,
		"companyType":        &s.CompanyType,
		"hasTeam":            &s.HasTeam,
		"problemStatement":   &s.ProblemStatement,
		"uniqueProduct":      &s.UniqueProduct,
		"legalRequirements":  &s.LegalRequirements,
		"currentStage":       &s.CurrentStage,
		"hasFunding":         &s.HasFunding,
		"fundingDetails":     &s.FundingDetails,
		"hasAwards":          &s.HasAwards,
		"awardsDetails":      &s.AwardsDetails,
		"targetCustomers":    &s.TargetCustomers,
		"hasPrototype":       &s.HasPrototype,
		"hasPilot":           &s.HasPilot,
		"runway":             &s.Runway,
	}
}

// Upload field names accepted on a submission.
const (
	FieldVideo         = "video"
	FieldPilotEvidence = "pilotEvidence"
)

// RegistrationStatus reports how full the registration is.
type RegistrationStatus struct {
	MaxReached bool  `json:"maxReached"`
	Count      int64 `json:"count"`
}
