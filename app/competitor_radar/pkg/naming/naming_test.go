package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ProfitGym", "Profit Gym"},
		{"acme", "Acme"},
		{"Already Spaced", "Already Spaced"},
		{"  OpenAI  ", "Open AI"},
		{"profitGym", "profit Gym"},
		{"IBM", "IBM"},
		{"Web3Labs", "Web3 Labs"},
		{"multiple   inner\tspaces", "multiple inner spaces"},
		{"", ""},
		{"ñandú", "Ñandú"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"ProfitGym", "acme", "Already Spaced", "OpenAI", "profitGym", "Web3Labs", "x", "BigCoLtd"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestFromHost(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.profitgym.co.il/about", "Profitgym"},
		{"https://blog.acme.com/post/1", "Acme"},
		{"http://news.bbc.co.uk", "Bbc"},
		{"https://my-startup.io", "My Startup"},
		{"https://shop.example.org:8443/x", "Example"},
		{"https://com", model.UnknownCompany},
		{"https://www.co", model.UnknownCompany},
		{"http://localhost:8080", model.UnknownCompany},
		{"http://127.0.0.1/page", model.UnknownCompany},
		{"not a url", model.UnknownCompany},
		{"::", model.UnknownCompany},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, FromHost(tt.url))
		})
	}
}

func TestStripLegalSuffix(t *testing.T) {
	assert.Equal(t, "Acme", StripLegalSuffix("Acme Ltd."))
	assert.Equal(t, "Acme", StripLegalSuffix("Acme, Inc."))
	assert.Equal(t, "Profit Gym", StripLegalSuffix(`Profit Gym בע"מ`))
	assert.Equal(t, "Inc", StripLegalSuffix("Inc"))
	assert.Equal(t, "Acme Widgets", StripLegalSuffix("Acme Widgets"))
}
