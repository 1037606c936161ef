package schema

import "strings"

// ObjectType classifies which CRM object a lead ultimately targets.
type ObjectType string

const (
	ObjectPerson  ObjectType = "person"
	ObjectCompany ObjectType = "company"
	ObjectDeal    ObjectType = "deal"
	ObjectUser    ObjectType = "user"
)

// ValidObjectType reports whether t is one of the known object types.
func ValidObjectType(t ObjectType) bool {
	switch t {
	case ObjectPerson, ObjectCompany, ObjectDeal, ObjectUser:
		return true
	}
	return false
}

// LeadRecord is the canonical extracted lead. Constructed once per inbound
// message by the extraction engine, immutable afterwards, and never
// persisted locally. At least one of FullName/CompanyName is set; optional
// fields are either empty or non-blank trimmed strings.
type LeadRecord struct {
	ObjectType  ObjectType `json:"object_type,omitempty"`
	FullName    string     `json:"full_name,omitempty"`
	CompanyName string     `json:"company_name,omitempty"`
	JobTitle    string     `json:"job_title,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Location    string     `json:"location,omitempty"`
	LinkedInURL string     `json:"linkedin_url,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	DealValue   float64    `json:"deal_value,omitempty"`
	DealStage   string     `json:"deal_stage,omitempty"`
}

// DisplayName is the name used in logs and diagnostics.
func (r *LeadRecord) DisplayName() string {
	if r.FullName != "" {
		return r.FullName
	}
	return r.CompanyName
}

// Fields returns the record's populated fields keyed by their canonical
// names, in the same shape Validate accepts. Validating this map again
// yields an identical record.
func (r *LeadRecord) Fields() map[string]any {
	out := make(map[string]any)
	put := func(key, val string) {
		if strings.TrimSpace(val) != "" {
			out[key] = val
		}
	}
	put("object_type", string(r.ObjectType))
	put("full_name", r.FullName)
	put("company_name", r.CompanyName)
	put("job_title", r.JobTitle)
	put("email", r.Email)
	put("phone", r.Phone)
	put("location", r.Location)
	put("linkedin_url", r.LinkedInURL)
	put("notes", r.Notes)
	put("deal_stage", r.DealStage)
	if r.DealValue > 0 {
		out["deal_value"] = r.DealValue
	}
	return out
}
