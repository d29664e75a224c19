package tib

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"
)

// ErrUnavailable signals a (simulated) verification API outage.
var ErrUnavailable = errors.New("unable to verify business at this time, please try again later")

var (
	sosStatuses   = []string{"Active", "Good Standing", "Inactive", "Revoked", "Suspended"}
	industryCodes = []string{"445110", "541330", "722511", "621111", "238220"}
)

// Client is a mock TIB business-verification client. It reproduces the
// latency and failure profile of the real API without calling anything.
type Client struct {
	DelayMin    time.Duration
	DelayMax    time.Duration
	FailureRate float64
}

func NewClient(delayMin, delayMax time.Duration, failureRate float64) *Client {
	return &Client{
		DelayMin:    delayMin,
		DelayMax:    delayMax,
		FailureRate: failureRate,
	}
}

// Verify simulates a verification lookup: sleeps a random duration in
// [DelayMin, DelayMax], fails with probability FailureRate, otherwise
// synthesizes a verification result.
func (c *Client) Verify(ctx context.Context, businessName, zipCode string) (*VerificationResult, error) {
	if businessName == "" || zipCode == "" {
		return nil, errors.New("business name and ZIP code are required")
	}

	c.simulateDelay()

	if rand.Float64() < c.FailureRate {
		log.Printf("tib: simulated verification failure for %s in %s", businessName, zipCode)
		return nil, ErrUnavailable
	}

	result := c.generate(businessName, zipCode)
	if result.Verified {
		log.Printf("tib: business verified: %s in %s", businessName, zipCode)
	} else {
		log.Printf("tib: business not verified: %s in %s", businessName, zipCode)
	}
	return result, nil
}

// simulateDelay sleeps uniformly within the configured interval. A
// malformed interval falls back to a fixed 1s delay. The sleep is not
// cancelable: a caller that gives up does not abort it.
func (c *Client) simulateDelay() {
	if c.DelayMin < 0 || c.DelayMax < c.DelayMin {
		time.Sleep(time.Second)
		return
	}
	if c.DelayMax == 0 {
		return
	}
	delay := c.DelayMin + time.Duration(rand.Int63n(int64(c.DelayMax-c.DelayMin)+1))
	time.Sleep(delay)
}

func (c *Client) generate(businessName, zipCode string) *VerificationResult {
	yearsAgo := rand.Intn(20) + 1
	startDate := time.Now().AddDate(-yearsAgo, 0, 0)

	// 80% of lookups come back verified.
	verified := rand.Float64() > 0.2

	return &VerificationResult{
		BusinessName:      businessName,
		ZipCode:           zipCode,
		Verified:          verified,
		BusinessStartDate: startDate.Format("2006-01-02"),
		SOSStatus:         sosStatuses[rand.Intn(len(sosStatuses))],
		IndustryCode:      industryCodes[rand.Intn(len(industryCodes))],
		NAICSCode:         industryCodes[rand.Intn(len(industryCodes))],
		BusinessAddress: &BusinessAddress{
			Street: fmt.Sprintf("%d Main St", rand.Intn(9900)+100),
			City:   "Sample City",
			State:  "CA",
			Zip:    zipCode,
		},
		AdditionalData: &AdditionalData{
			EmployeeCountRange: fmt.Sprintf("%d-%d", rand.Intn(50)+1, rand.Intn(150)+51),
			RevenueRange:       fmt.Sprintf("$%dK-$%dM", rand.Intn(900)+100, rand.Intn(10)+1),
			CreditScoreRange:   fmt.Sprintf("%d", rand.Intn(551)+300),
		},
	}
}
