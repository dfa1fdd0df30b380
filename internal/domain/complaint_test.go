package domain

import "testing"

func TestStatusString(t *testing.T) {
	cases := []struct {
		status Status
		want   string
	}{
		{StatusPending, "PENDING"},
		{StatusHandled, "HANDLED"},
		{StatusCancelled, "CANCELLED"},
		{Status(9), "UNKNOWN(9)"},
	}
	for _, tt := range cases {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String()=%q, want %q", int(tt.status), got, tt.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, name := range []string{"PENDING", "HANDLED", "CANCELLED"} {
		status, err := ParseStatus(name)
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", name, err)
		}
		if status.String() != name {
			t.Errorf("ParseStatus(%q)=%v", name, status)
		}
	}
	if _, err := ParseStatus("REJECTED"); err == nil {
		t.Error("ParseStatus accepted unknown status")
	}
}

func TestStatusValid(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusHandled, StatusCancelled} {
		if !status.Valid() {
			t.Errorf("%v reported invalid", status)
		}
	}
	for _, status := range []Status{0, 4, -1} {
		if status.Valid() {
			t.Errorf("Status(%d) reported valid", int(status))
		}
	}
}

func TestCanAttend(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusHandled, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusHandled, StatusPending, true},
		{StatusHandled, StatusCancelled, true},
		{StatusHandled, StatusHandled, false},
		{StatusCancelled, StatusPending, true},
		{StatusCancelled, StatusHandled, true},
		{StatusCancelled, StatusCancelled, false},
		{Status(9), StatusHandled, false},
	}
	for _, tt := range cases {
		if got := CanAttend(tt.from, tt.to); got != tt.allowed {
			t.Errorf("CanAttend(%v, %v)=%v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestCanCancel(t *testing.T) {
	cases := []struct {
		from    Status
		allowed bool
	}{
		{StatusPending, true},
		{StatusHandled, false},
		{StatusCancelled, false},
	}
	for _, tt := range cases {
		if got := CanCancel(tt.from); got != tt.allowed {
			t.Errorf("CanCancel(%v)=%v, want %v", tt.from, got, tt.allowed)
		}
	}
}

func TestComplaintUpdateEmpty(t *testing.T) {
	if !(ComplaintUpdate{}).Empty() {
		t.Error("zero update not reported empty")
	}
	subject := "no water pressure"
	if (ComplaintUpdate{Subject: &subject}).Empty() {
		t.Error("update with subject reported empty")
	}
}
