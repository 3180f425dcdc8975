package audit_test

import (
	"math/rand/v2"
	"testing"

	"github.com/kiranshivaraju/reportaudit/internal/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler(t *testing.T) {
	s := audit.NewSampler(rand.New(rand.NewPCG(1, 2)))

	risky, err := s.Sample(audit.SampleRisky)
	require.NoError(t, err)
	assert.Equal(t, "Alex Smith", risky.TechnicianName)
	assert.Equal(t, "Downtown Office Plaza", risky.JobSiteName)
	assert.NotEmpty(t, risky.ReportText)
	assert.Empty(t, risky.Credential)

	good, err := s.Sample(audit.SampleGood)
	require.NoError(t, err)
	assert.Equal(t, "Memorial Hospital - East Wing", good.JobSiteName)

	_, err = s.Sample("mediocre")
	assert.Error(t, err)
}

func TestSampler_Deterministic(t *testing.T) {
	a := audit.NewSampler(rand.New(rand.NewPCG(7, 7)))
	b := audit.NewSampler(rand.New(rand.NewPCG(7, 7)))
	for range 10 {
		x, _ := a.Sample(audit.SampleGood)
		y, _ := b.Sample(audit.SampleGood)
		assert.Equal(t, x, y)
	}
}

func TestSampler_CoversPool(t *testing.T) {
	s := audit.NewSampler(nil)
	seen := map[string]bool{}
	for range 200 {
		sub, err := s.Sample(audit.SampleRisky)
		require.NoError(t, err)
		seen[sub.ReportText] = true
	}
	assert.Len(t, seen, 4)
}
