// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"testing"
)

func TestDetailUnmarshalString(t *testing.T) {
	t.Parallel()

	var detail Detail
	if err := json.Unmarshal([]byte(`"Seat is already booked"`), &detail); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if detail.Message != "Seat is already booked" {
		t.Errorf("message = %q", detail.Message)
	}
	if detail.String() != "Seat is already booked" {
		t.Errorf("String() = %q", detail.String())
	}
}

func TestDetailUnmarshalFieldErrors(t *testing.T) {
	t.Parallel()

	raw := `[{"loc":["body","username"],"msg":"too short","type":"value_error"},{"loc":["body","zones",0,"zone_price"],"msg":"Цена не может быть отрицательной","type":"value_error"}]`
	var detail Detail
	if err := json.Unmarshal([]byte(raw), &detail); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(detail.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(detail.Fields))
	}
	if detail.Fields[0].Field() != "username" {
		t.Errorf("field 0 = %q, want username", detail.Fields[0].Field())
	}
	// Numeric loc components (list indexes) are skipped when naming
	// the field.
	if detail.Fields[1].Field() != "zone_price" {
		t.Errorf("field 1 = %q, want zone_price", detail.Fields[1].Field())
	}
	want := "username: too short; zone_price: Цена не может быть отрицательной"
	if detail.String() != want {
		t.Errorf("String() = %q, want %q", detail.String(), want)
	}
}

func TestDetailUnmarshalUnrecognizedShape(t *testing.T) {
	t.Parallel()

	var detail Detail
	if err := json.Unmarshal([]byte(`{"nested":"object"}`), &detail); err != nil {
		t.Fatalf("unmarshal should tolerate unknown shapes: %v", err)
	}
	if detail.Message != "" || detail.Fields != nil {
		t.Errorf("detail = %+v, want empty", detail)
	}
}

func TestAuditLogFilterQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter AuditLogFilter
		want   string
	}{
		{"empty", AuditLogFilter{}, ""},
		{"paging", AuditLogFilter{Limit: 50, Offset: 100}, "?limit=50&offset=100"},
		{
			"full",
			AuditLogFilter{Limit: 10, StartDate: "2026-08-01", EndDate: "2026-08-31", Action: "login"},
			"?action=login&end_date=2026-08-31&limit=10&start_date=2026-08-01",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.filter.query(); got != test.want {
				t.Errorf("query() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	t.Parallel()

	for _, role := range []Role{RoleUser, RoleModerator, RoleAdmin} {
		if !role.Valid() {
			t.Errorf("Valid(%q) = false", role)
		}
	}
	if Role("superuser").Valid() {
		t.Error("Valid(superuser) = true, want false")
	}
}

func TestCategoryOfPlainError(t *testing.T) {
	t.Parallel()

	if got := CategoryOf(json.Unmarshal([]byte("{"), &struct{}{})); got != "" {
		t.Errorf("CategoryOf(plain error) = %q, want empty", got)
	}
}
