package tib

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDelay keeps tests fast: DelayMax == 0 skips the sleep entirely.
func noDelay(failureRate float64) *Client {
	return NewClient(0, 0, failureRate)
}

func TestVerifyRequiresInput(t *testing.T) {
	client := noDelay(0)

	_, err := client.Verify(context.Background(), "", "94105")
	assert.Error(t, err)

	_, err = client.Verify(context.Background(), "Doe Plumbing LLC", "")
	assert.Error(t, err)
}

func TestVerifyAlwaysFails(t *testing.T) {
	client := noDelay(1.0)

	_, err := client.Verify(context.Background(), "Doe Plumbing LLC", "94105")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestVerifyResultShape(t *testing.T) {
	client := noDelay(0)

	result, err := client.Verify(context.Background(), "Doe Plumbing LLC", "94105")

	require.NoError(t, err)
	assert.Equal(t, "Doe Plumbing LLC", result.BusinessName)
	assert.Equal(t, "94105", result.ZipCode)
	assert.Contains(t, sosStatuses, result.SOSStatus)
	assert.Contains(t, industryCodes, result.IndustryCode)
	assert.Contains(t, industryCodes, result.NAICSCode)

	start, err := time.Parse("2006-01-02", result.BusinessStartDate)
	require.NoError(t, err)
	assert.True(t, start.Before(time.Now()))
	assert.True(t, start.After(time.Now().AddDate(-21, 0, 0)))

	require.NotNil(t, result.BusinessAddress)
	assert.Equal(t, "94105", result.BusinessAddress.Zip)
	assert.NotEmpty(t, result.BusinessAddress.Street)

	require.NotNil(t, result.AdditionalData)
	assert.NotEmpty(t, result.AdditionalData.EmployeeCountRange)
	assert.NotEmpty(t, result.AdditionalData.RevenueRange)
	assert.NotEmpty(t, result.AdditionalData.CreditScoreRange)
}

func TestVerifyStaysWithinDelayInterval(t *testing.T) {
	client := NewClient(10*time.Millisecond, 30*time.Millisecond, 0)

	begin := time.Now()
	_, err := client.Verify(context.Background(), "Doe Plumbing LLC", "94105")
	elapsed := time.Since(begin)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestVerifySkipsDelayWhenDisabled(t *testing.T) {
	client := noDelay(0)

	begin := time.Now()
	_, err := client.Verify(context.Background(), "Doe Plumbing LLC", "94105")

	require.NoError(t, err)
	assert.Less(t, time.Since(begin), 100*time.Millisecond)
}

func TestResultAsMap(t *testing.T) {
	client := noDelay(0)

	result, err := client.Verify(context.Background(), "Doe Plumbing LLC", "94105")
	require.NoError(t, err)

	m := result.AsMap()

	assert.Equal(t, "Doe Plumbing LLC", m["business_name"])
	assert.Equal(t, result.Verified, m["verified"])
	assert.Equal(t, result.SOSStatus, m["sos_status"])

	addr, ok := m["business_address"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Sample City", addr["city"])
}
