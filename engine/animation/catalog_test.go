package animation

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name      string
		loop      bool
		crossFade float32
	}{
		{"idle", true, 0.5},
		{"idle_n", true, 0.5},
		{"idle_s", true, 0.5},
		{"walk", true, 0.5},
		{"dance", true, 0.5},
		{"greeting", false, 0.2},
		{"focus", false, 0.5},
		{"ask", false, 0.5},
		{"talking1", false, 0.5},
		{"talking2", false, 0.5},
		{"yawn", false, 0.5},
	}
	for _, tt := range tests {
		p := c.PolicyFor(tt.name)
		if p.Name != tt.name || p.LoopForever != tt.loop || p.CrossFadeDuration != tt.crossFade {
			t.Errorf("PolicyFor(%q) = %+v", tt.name, p)
		}
	}

	if got := c.IdleAnimations(); !slices.Equal(got, []string{"idle", "idle_s", "idle_n"}) {
		t.Errorf("IdleAnimations() = %v", got)
	}
	if got := c.TalkingAnimations(); !slices.Equal(got, []string{"talking1", "talking2"}) {
		t.Errorf("TalkingAnimations() = %v", got)
	}
	if len(c.Names()) != len(tests) {
		t.Errorf("Names() = %v", c.Names())
	}
}

func TestPolicyForUnknownIsPure(t *testing.T) {
	c := NewCatalog(WithDefaultCrossFade(0.25), WithIdleAnimations("idle"))

	first := c.PolicyFor("mystery")
	second := c.PolicyFor("mystery")
	if first != second {
		t.Fatalf("PolicyFor not pure: %+v vs %+v", first, second)
	}
	want := AnimationPolicy{Name: "mystery", CrossFadeDuration: 0.25}
	if first != want {
		t.Errorf("PolicyFor(unknown) = %+v, want %+v", first, want)
	}
	if c.Has("mystery") {
		t.Error("Has(unknown) = true")
	}
}

func TestCatalogSetsAreCopies(t *testing.T) {
	c := DefaultCatalog()
	idle := c.IdleAnimations()
	idle[0] = "yawn"
	if c.IsIdle("yawn") {
		t.Error("mutating IdleAnimations() leaked into the catalog")
	}
}

func TestWithPoliciesKeepsFirstPosition(t *testing.T) {
	c := NewCatalog(
		WithPolicy("a", false, 0.1),
		WithPolicy("b", false, 0.1),
		WithPolicy("a", true, 0.9),
	)
	if got := c.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}
	if p := c.PolicyFor("a"); !p.LoopForever || p.CrossFadeDuration != 0.9 {
		t.Errorf("PolicyFor(a) = %+v, want the last value", p)
	}
}

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name    string
		options []CatalogBuilderOption
	}{
		{"empty idle", []CatalogBuilderOption{WithPolicy("idle", true, 0.5)}},
		{"negative cross-fade", []CatalogBuilderOption{WithIdleAnimations("idle"), WithPolicy("idle", true, -1)}},
		{"negative default", []CatalogBuilderOption{WithIdleAnimations("idle"), WithDefaultCrossFade(-0.1)}},
		{"empty policy name", []CatalogBuilderOption{WithIdleAnimations("idle"), WithPolicy("", false, 0)}},
		{"empty talking name", []CatalogBuilderOption{WithIdleAnimations("idle"), WithTalkingAnimations("")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCatalog(tt.options...).Validate()
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("Validate() error = %v, want ErrInvalidCatalog", err)
			}
		})
	}
}

const testCatalogYAML = `
defaultCrossFade: 0.3
idle: [rest, rest_alt]
talking: [chatter]
animations:
  - name: rest
    loopForever: true
    crossFade: 0.4
  - name: rest_alt
    loopForever: true
  - name: wave
    crossFade: 0.1
`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}

	if got := c.PolicyFor("rest"); !got.LoopForever || got.CrossFadeDuration != 0.4 {
		t.Errorf("PolicyFor(rest) = %+v", got)
	}
	if got := c.PolicyFor("rest_alt"); !got.LoopForever || got.CrossFadeDuration != 0 {
		t.Errorf("PolicyFor(rest_alt) = %+v", got)
	}
	if got := c.PolicyFor("chatter"); got.LoopForever || got.CrossFadeDuration != 0.3 {
		t.Errorf("PolicyFor(chatter) = %+v, want the default", got)
	}
	if !c.IsTalking("chatter") || !c.IsIdle("rest_alt") {
		t.Error("idle or talking set not decoded")
	}
	if got := c.Names(); !slices.Equal(got, []string{"rest", "rest_alt", "wave"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestParseCatalogErrors(t *testing.T) {
	if _, err := ParseCatalog([]byte("idle: [")); err == nil {
		t.Error("expected a decode error")
	}
	if _, err := ParseCatalog([]byte("talking: [a]")); !errors.Is(err, ErrInvalidCatalog) {
		t.Errorf("ParseCatalog(no idle) error = %v, want ErrInvalidCatalog", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(testCatalogYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if c.DefaultCrossFade() != 0.3 {
		t.Errorf("DefaultCrossFade() = %v", c.DefaultCrossFade())
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadCatalog(missing) error = %v", err)
	}
}

func TestCatalogFileOfDefault(t *testing.T) {
	f := CatalogFileOf(DefaultCatalog())
	c, err := f.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if c.PolicyFor("greeting").CrossFadeDuration != 0.2 || !c.PolicyFor("walk").LoopForever {
		t.Error("converted catalog lost policies")
	}
}
