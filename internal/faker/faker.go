package faker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/Rana718/fakeshop/internal/generator"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const emailDomain = "example.com"

type Profile struct {
	Name    string
	Address string
	Country string
	Email   string
	Locale  string
}

// ProfileProvider produces fake customer profiles for a fixed set of locales.
type ProfileProvider struct {
	locales []string
	rng     generator.Source
}

// AvailableLocales lists every locale the provider knows, sorted.
func AvailableLocales() []string {
	out := make([]string, 0, len(locales))
	for name := range locales {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func NewProfileProvider(requested []string, rng generator.Source) (*ProfileProvider, error) {
	if len(requested) == 0 {
		return nil, fmt.Errorf("at least one locale is required, available locales: %v", AvailableLocales())
	}
	for _, l := range requested {
		if _, ok := locales[l]; !ok {
			return nil, fmt.Errorf("invalid locale %q, expected one or many of: %v", l, AvailableLocales())
		}
	}
	return &ProfileProvider{locales: append([]string(nil), requested...), rng: rng}, nil
}

func (g *ProfileProvider) Locales() []string { return g.locales }

// Profiles returns n profiles. Each call draws fresh locale weights, so one
// batch may lean towards a few countries.
func (g *ProfileProvider) Profiles(n int) []Profile {
	if n <= 0 {
		return nil
	}
	weights := make([]float64, len(g.locales))
	for i := range weights {
		weights[i] = g.rng.Float64()
	}
	// NewWeightedSet only fails on a length mismatch.
	set, _ := generator.NewWeightedSet(g.locales, weights)

	profiles := make([]Profile, 0, n)
	for i := 0; i < n; i++ {
		profiles = append(profiles, g.profile(set.Pick(g.rng)))
	}
	return profiles
}

func (g *ProfileProvider) profile(locale string) Profile {
	data := locales[locale]
	name := g.pick(data.firstNames) + " " + g.pick(data.lastNames)
	return Profile{
		Name:    name,
		Address: data.address(g.rng.Intn(250)+1, g.pick(data.streets), g.pick(data.cities), data.postcode(g)),
		Country: data.country,
		Email:   EmailFor(name),
		Locale:  locale,
	}
}

func (g *ProfileProvider) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

func (g *ProfileProvider) letters(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('A' + g.rng.Intn(26))
	}
	return string(b)
}

func (g *ProfileProvider) digits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + g.rng.Intn(10))
	}
	return string(b)
}

// EmailFor builds the address the shop assigns to a customer name:
// accents folded to ASCII, lowercased, spaces and dots removed.
func EmailFor(name string) string {
	local := strings.ToLower(foldASCII(name))
	local = strings.NewReplacer(" ", "", ".", "").Replace(local)
	return local + "@" + emailDomain
}

func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	// Letters with no decomposition.
	return strings.NewReplacer("ß", "ss", "Æ", "AE", "æ", "ae", "Ø", "O", "ø", "o", "Œ", "OE", "œ", "oe", "ł", "l", "Ł", "L").Replace(folded)
}

func itoa(n int) string { return strconv.Itoa(n) }
