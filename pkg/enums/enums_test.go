package enums

import "testing"

func TestPaymentStatusIsValid(t *testing.T) {
	if !PaymentStatusSucceeded.IsValid() {
		t.Fatal("succeeded should be valid")
	}
	if PaymentStatus("refunded").IsValid() {
		t.Fatal("refunded should not be valid")
	}
}

func TestPaymentStatusIsSuccessful(t *testing.T) {
	if !PaymentStatusSucceeded.IsSuccessful() {
		t.Fatal("succeeded should be successful")
	}
	for _, status := range []PaymentStatus{PaymentStatusProcessing, PaymentStatusRequiresAction, PaymentStatusCanceled, PaymentStatusFailed} {
		if status.IsSuccessful() {
			t.Fatalf("%s should not be successful", status)
		}
	}
}

func TestParsePaymentStatus(t *testing.T) {
	status, err := ParsePaymentStatus("succeeded")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != PaymentStatusSucceeded {
		t.Fatalf("unexpected status %s", status)
	}

	if _, err := ParsePaymentStatus("not-a-status"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParseRangeKey(t *testing.T) {
	key, err := ParseRangeKey("last_30_days")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != RangeLast30Days {
		t.Fatalf("unexpected key %s", key)
	}

	if _, err := ParseRangeKey("last_week"); err == nil {
		t.Fatal("expected error for unknown range key")
	}
}

func TestRangeKeyLabel(t *testing.T) {
	if got := RangeYearToDate.Label(); got != "Year To Date" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := RangeKey("custom").Label(); got != "Custom Range" {
		t.Fatalf("unexpected fallback label %q", got)
	}
}
