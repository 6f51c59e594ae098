package core

import "testing"

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	if len(cats) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(cats))
	}
	if cats[0] != CategoryAuth || cats[4] != CategorySyslog {
		t.Errorf("unexpected order: %v", cats)
	}
}

func TestFilename(t *testing.T) {
	want := map[Category]string{
		CategoryAuth:       "auth.log",
		CategoryBootstrap:  "bootstrap.log",
		CategoryFontconfig: "fontconfig.log",
		CategoryKernel:     "kern.log",
		CategorySyslog:     "syslog",
	}
	for cat, file := range want {
		if got := cat.Filename(); got != file {
			t.Errorf("%s: got %q, want %q", cat, got, file)
		}
	}
}

func TestParseCategoryRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		if err != nil {
			t.Errorf("%s: %v", c, err)
		}
		if got != c {
			t.Errorf("got %q, want %q", got, c)
		}
	}
}

func TestParseCategoryUnknown(t *testing.T) {
	if _, err := ParseCategory("dmesg"); err == nil {
		t.Error("expected error for unknown category")
	}
}
