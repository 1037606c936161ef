package attio

import "github.com/leadpipe/leadpipe/internal/schema"

// Mapper turns a validated LeadRecord into the ordered sequence of CRM
// payloads to create. Mapping is deterministic and makes no external calls.
type Mapper struct {
	list string
}

// NewMapper creates a mapper targeting the given list. An empty list means
// created records join no list.
func NewMapper(list string) *Mapper {
	return &Mapper{list: list}
}

// MapRecord builds the payload sequence for one record.
//
// A person record with a company name yields two payloads with the company
// first, so the submission client can create the company and link its id
// into the person. Deal and user records yield a single payload of their
// own type. Records typed company, or untyped records carrying only a
// company name, yield a single company payload.
func (m *Mapper) MapRecord(rec *schema.LeadRecord) []Payload {
	objectType := rec.ObjectType
	if objectType == "" {
		objectType = inferObjectType(rec)
	}

	switch objectType {
	case schema.ObjectDeal:
		return []Payload{{
			ObjectType: schema.ObjectDeal,
			Attributes: dealAttributes(rec),
			List:       m.list,
		}}
	case schema.ObjectUser:
		return []Payload{{
			ObjectType: schema.ObjectUser,
			Attributes: userAttributes(rec),
			List:       m.list,
		}}
	case schema.ObjectCompany:
		return []Payload{{
			ObjectType: schema.ObjectCompany,
			Attributes: companyAttributes(rec),
			List:       m.list,
		}}
	}

	var payloads []Payload
	if rec.CompanyName != "" {
		payloads = append(payloads, Payload{
			ObjectType: schema.ObjectCompany,
			Attributes: companyAttributes(rec),
			List:       m.list,
		})
	}
	if rec.FullName != "" {
		payloads = append(payloads, Payload{
			ObjectType: schema.ObjectPerson,
			Attributes: personAttributes(rec),
			List:       m.list,
		})
	}
	return payloads
}

// inferObjectType classifies an untyped record from the fields it carries.
func inferObjectType(rec *schema.LeadRecord) schema.ObjectType {
	if rec.FullName == "" && rec.CompanyName != "" {
		return schema.ObjectCompany
	}
	return schema.ObjectPerson
}
