package variable

import (
	"reflect"
	"testing"
)

func TestIsKnown(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"patient.firstName", true},
		{"practice.name", true},
		{"patient.firstname", false}, // case-sensitive
		{" patient.firstName", false},
		{"patient", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := Default.IsKnown(tt.token); got != tt.want {
				t.Errorf("IsKnown(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestListAllIsStable(t *testing.T) {
	first := Default.ListAll()
	second := Default.ListAll()

	if !reflect.DeepEqual(first, second) {
		t.Fatal("ListAll should return identical results on every call")
	}
	if first[0].Token != "patient.firstName" {
		t.Errorf("first token = %q, want declaration order starting at patient.firstName", first[0].Token)
	}

	// Mutating the returned slice must not leak into the registry
	first[0].Token = "tampered"
	if Default.ListAll()[0].Token != "patient.firstName" {
		t.Error("ListAll exposed internal storage")
	}
}

func TestListByCategory(t *testing.T) {
	all := Default.ListAll()
	practice := Default.ListByCategory(CategoryPractice)

	if len(practice) == 0 {
		t.Fatal("expected practice variables")
	}

	// Same relative order as ListAll
	var want []Definition
	for _, d := range all {
		if d.Category == CategoryPractice {
			want = append(want, d)
		}
	}
	if !reflect.DeepEqual(practice, want) {
		t.Errorf("ListByCategory order mismatch: got %v, want %v", practice, want)
	}

	if got := Default.ListByCategory("Nope"); len(got) != 0 {
		t.Errorf("unknown category returned %d definitions", len(got))
	}
}

func TestCategories(t *testing.T) {
	got := Default.Categories()
	want := []string{CategoryPatient, CategoryAppointment, CategoryPractice, CategorySender}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestNewRegistryFirstDeclarationWins(t *testing.T) {
	r := NewRegistry(
		Definition{Token: "a.b", Category: "One", Example: "first"},
		Definition{Token: "a.b", Category: "Two", Example: "second"},
		Definition{Token: "", Category: "Empty"},
	)

	if len(r.ListAll()) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(r.ListAll()))
	}
	d, ok := r.Lookup("a.b")
	if !ok || d.Example != "first" {
		t.Errorf("Lookup(a.b) = %+v, %v", d, ok)
	}
	if ex := r.Examples(); ex["a.b"] != "first" {
		t.Errorf("Examples()[a.b] = %q", ex["a.b"])
	}
}
