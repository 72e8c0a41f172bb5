package policy

// FindPaymentDetails returns the payment details for a specific policy,
// matching agent, subramo, and policy number exactly. Returns nil if the
// policy is not present in the set.
func FindPaymentDetails(rows []PolicyRow, agent, subramo, policyNumber string) []PaymentDetail {
	for _, r := range rows {
		if r.Agent == agent && r.Subramo == subramo && r.PolicyNumber == policyNumber {
			return r.Payments
		}
	}
	return nil
}

// FindByPaymentID locates the row owning a payment identifier. Returns
// the row, the matching detail, and whether anything was found.
func FindByPaymentID(rows []PolicyRow, paymentID string) (PolicyRow, PaymentDetail, bool) {
	if paymentID == "" {
		return PolicyRow{}, PaymentDetail{}, false
	}
	for _, r := range rows {
		for _, p := range r.Payments {
			if p.ID == paymentID {
				return r, p, true
			}
		}
	}
	return PolicyRow{}, PaymentDetail{}, false
}

// Associate resolves which row an API-confirmed adjustment belongs to.
// Tries a direct policy-number match first, then falls back to locating
// the payment identifier in the set. Returns the row and whether an
// association was found.
func Associate(rows []PolicyRow, apiPolicyNumber, paymentID string) (PolicyRow, bool) {
	if apiPolicyNumber != "" {
		for _, r := range rows {
			if r.PolicyNumber == apiPolicyNumber {
				return r, true
			}
		}
	}
	if row, _, ok := FindByPaymentID(rows, paymentID); ok {
		return row, true
	}
	return PolicyRow{}, false
}
