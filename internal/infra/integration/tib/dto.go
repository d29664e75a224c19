package tib

type BusinessAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type AdditionalData struct {
	EmployeeCountRange string `json:"employee_count_range"`
	RevenueRange       string `json:"revenue_range"`
	CreditScoreRange   string `json:"credit_score_range"`
}

// VerificationResult is the payload the TIB verification API would
// return for a business lookup.
type VerificationResult struct {
	BusinessName      string          `json:"business_name"`
	ZipCode           string          `json:"zip_code"`
	Verified          bool            `json:"verified"`
	BusinessStartDate string          `json:"business_start_date,omitempty"`
	SOSStatus         string          `json:"sos_status,omitempty"`
	IndustryCode      string          `json:"industry_code,omitempty"`
	NAICSCode         string          `json:"naics_code,omitempty"`
	BusinessAddress   *BusinessAddress `json:"business_address,omitempty"`
	AdditionalData    *AdditionalData  `json:"additional_data,omitempty"`
	Message           string          `json:"message,omitempty"`
}

// AsMap converts the result into the free-form shape stored under a
// session's enrichment_data key.
func (r *VerificationResult) AsMap() map[string]any {
	m := map[string]any{
		"business_name": r.BusinessName,
		"zip_code":      r.ZipCode,
		"verified":      r.Verified,
	}
	if r.BusinessStartDate != "" {
		m["business_start_date"] = r.BusinessStartDate
	}
	if r.SOSStatus != "" {
		m["sos_status"] = r.SOSStatus
	}
	if r.IndustryCode != "" {
		m["industry_code"] = r.IndustryCode
	}
	if r.NAICSCode != "" {
		m["naics_code"] = r.NAICSCode
	}
	if r.BusinessAddress != nil {
		m["business_address"] = map[string]any{
			"street": r.BusinessAddress.Street,
			"city":   r.BusinessAddress.City,
			"state":  r.BusinessAddress.State,
			"zip":    r.BusinessAddress.Zip,
		}
	}
	if r.AdditionalData != nil {
		m["additional_data"] = map[string]any{
			"employee_count_range": r.AdditionalData.EmployeeCountRange,
			"revenue_range":        r.AdditionalData.RevenueRange,
			"credit_score_range":   r.AdditionalData.CreditScoreRange,
		}
	}
	if r.Message != "" {
		m["message"] = r.Message
	}
	return m
}
