package faker

import (
	"strings"
	"testing"

	"github.com/Rana718/fakeshop/internal/generator"
)

func TestEmailFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"John Smith", "johnsmith@example.com"},
		{"Jürgen Müller", "jurgenmuller@example.com"},
		{"Chloé Côté", "chloecote@example.com"},
		{"Dr. Ann van den Berg", "drannvandenberg@example.com"},
		{"Hans Schäfer-Groß", "hansschafer-gross@example.com"},
	}
	for _, tt := range tests {
		if got := EmailFor(tt.name); got != tt.want {
			t.Errorf("EmailFor(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNewProfileProviderRejectsUnknownLocale(t *testing.T) {
	_, err := NewProfileProvider([]string{"en_GB", "xx_XX"}, generator.NewSource(1))
	if err == nil {
		t.Fatal("expected error for unknown locale")
	}
	if !strings.Contains(err.Error(), "xx_XX") || !strings.Contains(err.Error(), "en_GB") {
		t.Errorf("error should name the bad locale and list the available ones: %v", err)
	}

	if _, err := NewProfileProvider(nil, generator.NewSource(1)); err == nil {
		t.Error("expected error for empty locale list")
	}
}

func TestProfiles(t *testing.T) {
	requested := []string{"en_GB", "fr_FR", "de_DE"}
	p, err := NewProfileProvider(requested, generator.NewSource(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profiles := p.Profiles(300)
	if len(profiles) != 300 {
		t.Fatalf("expected 300 profiles, got %d", len(profiles))
	}

	allowed := map[string]bool{}
	for _, l := range requested {
		allowed[l] = true
	}
	for _, prof := range profiles {
		if !allowed[prof.Locale] {
			t.Fatalf("profile uses locale %s outside the requested set", prof.Locale)
		}
		if prof.Name == "" || prof.Address == "" || prof.Country == "" {
			t.Fatalf("incomplete profile: %+v", prof)
		}
		if prof.Email != EmailFor(prof.Name) {
			t.Fatalf("email %q does not match name %q", prof.Email, prof.Name)
		}
		for _, r := range prof.Email {
			if r > 127 {
				t.Fatalf("email %q is not ASCII", prof.Email)
			}
		}
	}

	if got := p.Profiles(0); got != nil {
		t.Errorf("expected nil for zero profiles, got %v", got)
	}
}

func TestAvailableLocalesSorted(t *testing.T) {
	got := AvailableLocales()
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("locales not sorted: %v", got)
		}
	}
}
