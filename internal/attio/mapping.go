package attio

import (
	"strings"

	"github.com/leadpipe/leadpipe/internal/schema"
)

// FieldMappings is the static table from canonical lead field to CRM
// attribute slug, one row set per object type. A canonical field absent
// from an object type's row set is omitted from that payload. The table is
// data so a differently-configured workspace can swap it without touching
// the pipeline.
var FieldMappings = map[schema.ObjectType]map[string]string{
	schema.ObjectPerson: {
		"full_name":    "name",
		"email":        "email_addresses",
		"phone":        "phone_numbers",
		"job_title":    "job_title",
		"location":     "location",
		"linkedin_url": "linkedin_url",
		"notes":        "description",
	},
	schema.ObjectCompany: {
		"company_name": "name",
		"location":     "locations",
		"email":        "domains",
		"notes":        "description",
	},
	schema.ObjectDeal: {
		"full_name":  "name",
		"deal_value": "value",
		"deal_stage": "stage",
		"notes":      "description",
	},
	schema.ObjectUser: {
		"full_name": "name",
		"email":     "email_address",
		"job_title": "job_title",
		"notes":     "description",
	},
}

// attributeFor returns the CRM slug for a canonical field on an object
// type, or false when the type does not carry that field.
func attributeFor(objectType schema.ObjectType, field string) (string, bool) {
	slug, ok := FieldMappings[objectType][field]
	return slug, ok
}

// personAttributes builds the people-object attribute values. Email and
// phone use the CRM's nested list shapes.
func personAttributes(rec *schema.LeadRecord) map[string]any {
	attrs := map[string]any{}
	setMapped(attrs, schema.ObjectPerson, "full_name", rec.FullName)
	if slug, ok := attributeFor(schema.ObjectPerson, "email"); ok && rec.Email != "" {
		attrs[slug] = []map[string]any{{"email_address": rec.Email}}
	}
	if slug, ok := attributeFor(schema.ObjectPerson, "phone"); ok && rec.Phone != "" {
		attrs[slug] = []map[string]any{{"original_phone_number": rec.Phone}}
	}
	setMapped(attrs, schema.ObjectPerson, "job_title", rec.JobTitle)
	setMapped(attrs, schema.ObjectPerson, "location", rec.Location)
	setMapped(attrs, schema.ObjectPerson, "linkedin_url", rec.LinkedInURL)
	setMapped(attrs, schema.ObjectPerson, "notes", rec.Notes)
	return attrs
}

// companyAttributes builds the companies-object attribute values. The
// domain is derived from the contact email's host when present; a richer
// domain may be attached later by enrichment. Contact details that have no
// company attribute of their own are folded into the description.
func companyAttributes(rec *schema.LeadRecord) map[string]any {
	attrs := map[string]any{}
	setMapped(attrs, schema.ObjectCompany, "company_name", rec.CompanyName)
	if slug, ok := attributeFor(schema.ObjectCompany, "location"); ok && rec.Location != "" {
		attrs[slug] = []string{rec.Location}
	}
	if slug, ok := attributeFor(schema.ObjectCompany, "email"); ok && rec.Email != "" {
		if host := emailDomain(rec.Email); host != "" {
			attrs[slug] = []map[string]any{{"domain": host}}
		}
	}

	var desc []string
	if rec.FullName != "" {
		desc = append(desc, "Contact: "+rec.FullName)
	}
	if rec.JobTitle != "" {
		desc = append(desc, "Title: "+rec.JobTitle)
	}
	if rec.Email != "" {
		desc = append(desc, "Email: "+rec.Email)
	}
	if rec.Phone != "" {
		desc = append(desc, "Phone: "+rec.Phone)
	}
	if rec.LinkedInURL != "" {
		desc = append(desc, "LinkedIn: "+rec.LinkedInURL)
	}
	if rec.Notes != "" {
		desc = append(desc, rec.Notes)
	}
	if slug, ok := attributeFor(schema.ObjectCompany, "notes"); ok && len(desc) > 0 {
		attrs[slug] = strings.Join(desc, "\n")
	}
	return attrs
}

// dealAttributes builds the deals-object attribute values. Deal value is
// the CRM's currency-tagged shape.
func dealAttributes(rec *schema.LeadRecord) map[string]any {
	attrs := map[string]any{}
	setMapped(attrs, schema.ObjectDeal, "full_name", rec.FullName)
	if slug, ok := attributeFor(schema.ObjectDeal, "deal_value"); ok && rec.DealValue > 0 {
		attrs[slug] = map[string]any{
			"currency": "USD",
			"value":    int64(rec.DealValue),
		}
	}
	setMapped(attrs, schema.ObjectDeal, "deal_stage", rec.DealStage)

	var desc []string
	if rec.CompanyName != "" {
		desc = append(desc, "Company: "+rec.CompanyName)
	}
	if rec.Notes != "" {
		desc = append(desc, rec.Notes)
	}
	if slug, ok := attributeFor(schema.ObjectDeal, "notes"); ok && len(desc) > 0 {
		attrs[slug] = strings.Join(desc, "\n")
	}
	return attrs
}

// userAttributes builds the users-object attribute values.
func userAttributes(rec *schema.LeadRecord) map[string]any {
	attrs := map[string]any{}
	setMapped(attrs, schema.ObjectUser, "full_name", rec.FullName)
	setMapped(attrs, schema.ObjectUser, "email", rec.Email)
	setMapped(attrs, schema.ObjectUser, "job_title", rec.JobTitle)
	setMapped(attrs, schema.ObjectUser, "notes", rec.Notes)
	return attrs
}

func setMapped(attrs map[string]any, objectType schema.ObjectType, field, value string) {
	if value == "" {
		return
	}
	if slug, ok := attributeFor(objectType, field); ok {
		attrs[slug] = value
	}
}

func emailDomain(email string) string {
	if at := strings.LastIndex(email, "@"); at >= 0 && at < len(email)-1 {
		return email[at+1:]
	}
	return ""
}
