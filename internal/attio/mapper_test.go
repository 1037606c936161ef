package attio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpipe/leadpipe/internal/schema"
)

func TestMapPersonOnly(t *testing.T) {
	mapper := NewMapper("leads")
	rec := &schema.LeadRecord{
		ObjectType: schema.ObjectPerson,
		FullName:   "Sarah Johnson",
		JobTitle:   "VP of Sales",
	}

	payloads := mapper.MapRecord(rec)
	require.Len(t, payloads, 1)
	assert.Equal(t, schema.ObjectPerson, payloads[0].ObjectType)
	assert.Equal(t, "Sarah Johnson", payloads[0].Attributes["name"])
	assert.Equal(t, "VP of Sales", payloads[0].Attributes["job_title"])
	assert.Equal(t, "leads", payloads[0].List)
}

func TestMapPersonWithCompany(t *testing.T) {
	mapper := NewMapper("")
	rec := &schema.LeadRecord{
		ObjectType:  schema.ObjectPerson,
		FullName:    "Sarah Johnson",
		CompanyName: "Acme Corp",
		JobTitle:    "VP of Sales",
	}

	payloads := mapper.MapRecord(rec)
	require.Len(t, payloads, 2)
	assert.Equal(t, schema.ObjectCompany, payloads[0].ObjectType, "company must precede person")
	assert.Equal(t, schema.ObjectPerson, payloads[1].ObjectType)
	assert.Equal(t, "Acme Corp", payloads[0].Attributes["name"])
	assert.Equal(t, "Sarah Johnson", payloads[1].Attributes["name"])
}

func TestMapCompanyOnly(t *testing.T) {
	mapper := NewMapper("")
	rec := &schema.LeadRecord{
		ObjectType:  schema.ObjectCompany,
		CompanyName: "Acme Corp",
		Location:    "San Francisco",
		Notes:       "SaaS company",
	}

	payloads := mapper.MapRecord(rec)
	require.Len(t, payloads, 1)
	assert.Equal(t, schema.ObjectCompany, payloads[0].ObjectType)
	assert.Equal(t, "Acme Corp", payloads[0].Attributes["name"])
	assert.Equal(t, []string{"San Francisco"}, payloads[0].Attributes["locations"])
}

func TestMapUntypedCompanyNameOnly(t *testing.T) {
	mapper := NewMapper("")
	rec := &schema.LeadRecord{CompanyName: "Acme Corp"}

	payloads := mapper.MapRecord(rec)
	require.Len(t, payloads, 1)
	assert.Equal(t, schema.ObjectCompany, payloads[0].ObjectType)
}

func TestMapDeal(t *testing.T) {
	mapper := NewMapper("")
	rec := &schema.LeadRecord{
		ObjectType:  schema.ObjectDeal,
		FullName:    "TechCo Enterprise Deal",
		CompanyName: "TechCo",
		DealValue:   50000,
		DealStage:   "prospect",
	}

	payloads := mapper.MapRecord(rec)
	require.Len(t, payloads, 1)
	assert.Equal(t, schema.ObjectDeal, payloads[0].ObjectType)
	assert.Equal(t, "TechCo Enterprise Deal", payloads[0].Attributes["name"])
	assert.Equal(t, map[string]any{"currency": "USD", "value": int64(50000)}, payloads[0].Attributes["value"])
	assert.Equal(t, "prospect", payloads[0].Attributes["stage"])
	assert.Equal(t, "Company: TechCo", payloads[0].Attributes["description"])
}

func TestMapUser(t *testing.T) {
	mapper := NewMapper("")
	rec := &schema.LeadRecord{
		ObjectType: schema.ObjectUser,
		FullName:   "John Smith",
		Email:      "john@example.com",
		JobTitle:   "Senior Engineer",
	}

	payloads := mapper.MapRecord(rec)
	require.Len(t, payloads, 1)
	assert.Equal(t, schema.ObjectUser, payloads[0].ObjectType)
	assert.Equal(t, "john@example.com", payloads[0].Attributes["email_address"])
}

func TestMapPersonNestedContactShapes(t *testing.T) {
	mapper := NewMapper("")
	rec := &schema.LeadRecord{
		FullName: "Jane Roe",
		Email:    "jane@roe.io",
		Phone:    "+1 555 123 4567",
	}

	payloads := mapper.MapRecord(rec)
	require.Len(t, payloads, 1)
	attrs := payloads[0].Attributes
	assert.Equal(t, []map[string]any{{"email_address": "jane@roe.io"}}, attrs["email_addresses"])
	assert.Equal(t, []map[string]any{{"original_phone_number": "+1 555 123 4567"}}, attrs["phone_numbers"])
}

func TestMapCompanyDomainFromEmail(t *testing.T) {
	mapper := NewMapper("")
	rec := &schema.LeadRecord{
		ObjectType:  schema.ObjectCompany,
		CompanyName: "Roe Industries",
		Email:       "contact@roe.io",
	}

	payloads := mapper.MapRecord(rec)
	require.Len(t, payloads, 1)
	assert.Equal(t, []map[string]any{{"domain": "roe.io"}}, payloads[0].Attributes["domains"])
}

func TestMapFieldsNotInTableOmitted(t *testing.T) {
	mapper := NewMapper("")
	rec := &schema.LeadRecord{
		ObjectType:  schema.ObjectUser,
		FullName:    "John Smith",
		Phone:       "+1 555 000 1111",
		LinkedInURL: "https://linkedin.com/in/johnsmith",
	}

	payloads := mapper.MapRecord(rec)
	require.Len(t, payloads, 1)
	attrs := payloads[0].Attributes
	assert.NotContains(t, attrs, "phone_numbers")
	assert.NotContains(t, attrs, "linkedin_url")
}

func TestMapDeterministic(t *testing.T) {
	mapper := NewMapper("leads")
	rec := &schema.LeadRecord{
		FullName:    "Sarah Johnson",
		CompanyName: "Acme Corp",
		Email:       "sarah@acme.com",
		Notes:       "Met at the conference",
	}

	first := mapper.MapRecord(rec)
	second := mapper.MapRecord(rec)
	assert.Equal(t, first, second)
}
