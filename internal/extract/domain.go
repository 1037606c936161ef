package extract

import (
	"context"
	"fmt"
	"strings"
)

// DomainFinder looks up a company's website domain. Implementations are
// best-effort: an empty result and an error are both treated as "no
// domain".
type DomainFinder interface {
	FindDomain(ctx context.Context, companyName string) (string, error)
}

// GeminiDomainFinder asks the model for a company's official website
// domain so freshly created companies carry one.
type GeminiDomainFinder struct {
	client LLMClient
}

// NewGeminiDomainFinder creates a domain finder backed by an LLM client.
func NewGeminiDomainFinder(client LLMClient) *GeminiDomainFinder {
	return &GeminiDomainFinder{client: client}
}

const domainPromptTemplate = `Find the official website domain for the company "%s".

Return ONLY the domain name (e.g., "example.com") without https:// or www.
If you cannot find a reliable website, return "NONE".

Examples:
- Input: "Stripe" -> Output: "stripe.com"
- Input: "Unknown Fake Company XYZ" -> Output: "NONE"

Company: %s
Website domain:`

// FindDomain returns the bare domain for companyName, or "" when the model
// cannot name one it is confident about.
func (f *GeminiDomainFinder) FindDomain(ctx context.Context, companyName string) (string, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return "", nil
	}
	out, err := f.client.Generate(ctx, fmt.Sprintf(domainPromptTemplate, companyName, companyName))
	if err != nil {
		return "", err
	}
	return cleanDomain(out), nil
}

// cleanDomain strips scheme and www and rejects anything that does not
// look like a bare domain.
func cleanDomain(raw string) string {
	domain := strings.ToLower(strings.TrimSpace(raw))
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "www.")
	domain = strings.Trim(domain, "/")
	if domain == "none" || domain == "" {
		return ""
	}
	if !strings.Contains(domain, ".") || strings.ContainsAny(domain, " \t\n") {
		return ""
	}
	return domain
}
