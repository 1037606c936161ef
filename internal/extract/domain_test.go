package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDomain(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"bare domain", "stripe.com", "stripe.com"},
		{"with scheme", "https://stripe.com", "stripe.com"},
		{"with www", "www.stripe.com", "stripe.com"},
		{"scheme and www", "https://www.stripe.com/", "stripe.com"},
		{"uppercase", "STRIPE.COM", "stripe.com"},
		{"none marker", "NONE", ""},
		{"prose answer", "The official website is stripe dot com", ""},
		{"no dot", "stripe", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := NewGeminiDomainFinder(&fakeClient{responses: []string{tt.response}})
			got, err := finder.FindDomain(context.Background(), "Stripe")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindDomainEmptyCompany(t *testing.T) {
	client := &fakeClient{responses: []string{"stripe.com"}}
	finder := NewGeminiDomainFinder(client)

	got, err := finder.FindDomain(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int64(0), client.calls.Load(), "blank company names skip the lookup")
}

func TestFindDomainClientError(t *testing.T) {
	finder := NewGeminiDomainFinder(&fakeClient{responses: []string{""}, errs: []error{errors.New("boom")}})

	got, err := finder.FindDomain(context.Background(), "Stripe")
	require.Error(t, err)
	assert.Empty(t, got)
}
