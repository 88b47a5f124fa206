package availability

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/model"
)

func TestValidate_RejectsNonHourAligned(t *testing.T) {
	halfPast := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	if err := Validate(Default(), klepov, halfPast, nil); !errors.Is(err, ErrNotHourAligned) {
		t.Fatalf("expected ErrNotHourAligned, got %v", err)
	}

	withSeconds := time.Date(2024, 3, 5, 16, 0, 1, 0, time.UTC)
	if err := Validate(Default(), klepov, withSeconds, nil); !errors.Is(err, ErrNotHourAligned) {
		t.Fatalf("expected ErrNotHourAligned, got %v", err)
	}
}

func TestValidate_RejectsDayOff(t *testing.T) {
	monday := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	err := Validate(Default(), klepov, monday, nil)

	var na *NotAvailableError
	if !errors.As(err, &na) {
		t.Fatalf("expected NotAvailableError, got %v", err)
	}
	if na.Weekday != time.Monday || len(na.Ranges) != 0 {
		t.Fatalf("unexpected error detail: %+v", na)
	}
	if !strings.Contains(na.Error(), "Monday") {
		t.Fatalf("message should name the weekday: %q", na.Error())
	}
}

func TestValidate_RejectsHourOutsideRanges(t *testing.T) {
	// Tuesday is a working day, but 10:00 is outside 16:00-20:00.
	err := Validate(Default(), klepov, at(10), nil)

	var na *NotAvailableError
	if !errors.As(err, &na) {
		t.Fatalf("expected NotAvailableError, got %v", err)
	}
	if len(na.Ranges) != 1 {
		t.Fatalf("expected the valid ranges in the error, got %+v", na)
	}
	if !strings.Contains(na.Error(), "16:00-20:00") {
		t.Fatalf("message should include the valid ranges: %q", na.Error())
	}
}

func TestValidate_EndHourExcluded(t *testing.T) {
	if err := Validate(Default(), klepov, at(19), nil); err != nil {
		t.Fatalf("19:00 should be bookable: %v", err)
	}
	if err := Validate(Default(), klepov, at(20), nil); err == nil {
		t.Fatal("20:00 is the range end and must be rejected")
	}
}

func TestValidate_RejectsExactDuplicate(t *testing.T) {
	existing := []model.Appointment{
		{UserID: "u1", PsychologistName: klepov, AppointmentTime: at(16)},
	}

	if err := Validate(Default(), klepov, at(16), existing); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if err := Validate(Default(), klepov, at(17), existing); err != nil {
		t.Fatalf("17:00 is free and in range: %v", err)
	}
}

func TestValidate_ChecksAlignmentFirst(t *testing.T) {
	// Non-aligned time on a day off: alignment must win.
	monday := time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)
	if err := Validate(Default(), klepov, monday, nil); !errors.Is(err, ErrNotHourAligned) {
		t.Fatalf("expected ErrNotHourAligned, got %v", err)
	}
}

func TestIsValidationError(t *testing.T) {
	for _, err := range []error{
		ErrNotHourAligned,
		ErrSlotTaken,
		&NotAvailableError{Name: klepov, Weekday: time.Monday},
	} {
		if !IsValidationError(err) {
			t.Fatalf("%v should be a validation error", err)
		}
	}
	if IsValidationError(errors.New("connection refused")) {
		t.Fatal("infrastructure errors are not validation errors")
	}
}
