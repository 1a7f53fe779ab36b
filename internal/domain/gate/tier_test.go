package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Tier
	}{
		{"/", TierPublic},
		{"/about", TierPublic},
		{"/api/parent-education", TierPublic},
		{"/api/parent-education/settling-in-tips", TierPublic},
		{"/member/login", TierPublic},
		{"/healthz", TierPublic},
		{"/admin", TierAdmin},
		{"/admin/articles", TierAdmin},
		{"/admin/members/pending", TierAdmin},
		{"/administrivia", TierAdmin}, // prefix match is intentional
		{"/parents", TierParent},
		{"/parents/", TierParent},
		{"/parents/pending", TierParent},
		{"/parents/news", TierParent},
		{"/parent", TierPublic},
		{"", TierPublic},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}
