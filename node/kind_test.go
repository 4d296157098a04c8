package node

import "testing"

func TestKindIsValid(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		valid bool
	}{
		{"section header", KindSectionHeader, true},
		{"text field", KindTextField, true},
		{"test case table", KindTestCaseTable, true},
		{"code snippet", KindCodeSnippet, true},
		{"file attachment set", KindFileAttachmentSet, true},
		{"step list", KindStepList, true},
		{"linked issue list", KindLinkedIssueList, true},
		{"ai generator", KindAIGenerator, true},
		{"empty", Kind(""), false},
		{"unknown", Kind("paragraph"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("test_case_table")
	if err != nil {
		t.Fatalf("ParseKind() error = %v", err)
	}
	if kind != KindTestCaseTable {
		t.Errorf("ParseKind() = %v, want %v", kind, KindTestCaseTable)
	}

	if _, err := ParseKind("table"); err == nil {
		t.Error("ParseKind() expected error for unknown kind")
	}
}

func TestAllKindsValid(t *testing.T) {
	kinds := AllKinds()
	if len(kinds) != 8 {
		t.Fatalf("AllKinds() returned %d kinds, want 8", len(kinds))
	}
	for _, k := range kinds {
		if !k.IsValid() {
			t.Errorf("kind %q not valid", k)
		}
		if k.DisplayName() == "" {
			t.Errorf("kind %q has no display name", k)
		}
	}
}

func TestFieldRoleSectionTitle(t *testing.T) {
	tests := []struct {
		role FieldRole
		want string
	}{
		{RoleScope, "Scope of Work"},
		{RoleBaselines, "Baselines for Review"},
		{RoleProjectName, ""},
		{RoleFreeform, ""},
	}

	for _, tt := range tests {
		if got := tt.role.SectionTitle(); got != tt.want {
			t.Errorf("SectionTitle(%s) = %q, want %q", tt.role, got, tt.want)
		}
	}
}
