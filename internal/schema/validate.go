package schema

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// gateSchema rejects model output whose identity fields are structurally
// unusable. Optional fields are deliberately left untyped here: a malformed
// optional field is dropped during coercion, never fatal.
const gateSchema = `{
	"type": "object",
	"properties": {
		"object_type":  {"type": ["string", "null"]},
		"full_name":    {"type": ["string", "null"]},
		"company_name": {"type": ["string", "null"]}
	}
}`

var gate = gojsonschema.NewStringLoader(gateSchema)

var (
	emailRE = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	spaceRE = regexp.MustCompile(`\s+`)
)

// Validate coerces an untyped mapping (the model's parsed output) into a
// LeadRecord. It is pure and idempotent: validating a record's own Fields()
// map yields an identical record.
func Validate(raw map[string]any) (*LeadRecord, error) {
	result, err := gojsonschema.Validate(gate, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, &ValidationError{Reason: ReasonMalformedField}
	}
	if !result.Valid() {
		field := ""
		if errs := result.Errors(); len(errs) > 0 {
			field = errs[0].Field()
		}
		return nil, &ValidationError{Reason: ReasonMalformedField, Field: field}
	}

	rec := &LeadRecord{
		FullName:    stringField(raw, "full_name"),
		CompanyName: stringField(raw, "company_name"),
		JobTitle:    stringField(raw, "job_title"),
		Phone:       normalizePhone(stringField(raw, "phone")),
		Location:    stringField(raw, "location"),
		Notes:       stringField(raw, "notes"),
		DealStage:   stringField(raw, "deal_stage"),
		DealValue:   numberField(raw, "deal_value"),
	}

	if rec.FullName == "" && rec.CompanyName == "" {
		return nil, &ValidationError{Reason: ReasonMissingRequired}
	}

	// Syntax-checked optionals: drop on failure, optional data should
	// never block lead creation.
	if email := strings.ToLower(stringField(raw, "email")); email != "" && emailRE.MatchString(email) {
		rec.Email = email
	}
	if link := normalizeLinkedIn(stringField(raw, "linkedin_url")); link != "" {
		rec.LinkedInURL = link
	}

	if t := ObjectType(strings.ToLower(stringField(raw, "object_type"))); ValidObjectType(t) {
		rec.ObjectType = t
	}
	return rec, nil
}

// stringField returns the trimmed string at key, or "" when the value is
// absent, blank, or not a string.
func stringField(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// numberField accepts float64 (encoding/json's default), json.Number, or a
// numeric string. Anything else is dropped.
func numberField(raw map[string]any, key string) float64 {
	switch v := raw[key].(type) {
	case float64:
		if v > 0 {
			return v
		}
	case int:
		if v > 0 {
			return float64(v)
		}
	case json.Number:
		if f, err := v.Float64(); err == nil && f > 0 {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f > 0 {
			return f
		}
	}
	return 0
}

func normalizePhone(phone string) string {
	if phone == "" {
		return ""
	}
	return spaceRE.ReplaceAllString(phone, " ")
}

// normalizeLinkedIn validates the URL syntax of a LinkedIn link. Links the
// model returns without a scheme ("linkedin.com/in/jane") get https
// prepended before the check.
func normalizeLinkedIn(link string) string {
	if link == "" {
		return ""
	}
	if !strings.Contains(link, "://") {
		link = "https://" + link
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host == "" || !strings.Contains(strings.ToLower(u.Host), "linkedin.com") {
		return ""
	}
	return u.String()
}
