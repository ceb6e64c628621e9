package models

import "testing"

func testUser() *User {
	return &User{
		Roles: []Role{
			{
				Nama: "user",
				Permissions: []Permission{
					{Nama: "manage_areas"},
					{Nama: "manage_sales"},
				},
			},
			{
				Nama: "reporter",
				Permissions: []Permission{
					{Nama: "view_reports"},
					{Nama: "manage_sales"},
				},
			},
		},
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name       string
		permission string
		expected   bool
	}{
		{"permission from first role", "manage_areas", true},
		{"permission from second role", "view_reports", true},
		{"permission on both roles", "manage_sales", true},
		{"missing permission", "manage_users", false},
		{"empty permission", "", false},
	}

	u := testUser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := u.HasPermission(tt.permission); got != tt.expected {
				t.Errorf("HasPermission(%q) = %v, expected %v", tt.permission, got, tt.expected)
			}
		})
	}

	var empty User
	if empty.HasPermission("manage_areas") {
		t.Error("user without roles should have no permissions")
	}
}

func TestPermissionNames(t *testing.T) {
	names := testUser().PermissionNames()
	want := map[string]bool{"manage_areas": true, "manage_sales": true, "view_reports": true}
	if len(names) != len(want) {
		t.Fatalf("PermissionNames() = %v, want %d unique names", names, len(want))
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected permission %q", n)
		}
	}
}
