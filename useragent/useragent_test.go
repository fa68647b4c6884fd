package useragent

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestFixedSourceIsDeterministic(t *testing.T) {
	p := New(Fixed(0))
	if got := p.NoJS(); got != noJS[0] {
		t.Errorf("NoJS() = %q", got)
	}
	if got := p.Any(); got != noJS[0] {
		t.Errorf("Any() = %q", got)
	}

	last := New(Fixed(1000))
	if got := last.Any(); got != desktop[len(desktop)-1] {
		t.Errorf("clamped Any() = %q", got)
	}
}

func TestNoJSNeverDesktop(t *testing.T) {
	p := New(rand.New(rand.NewPCG(1, 2)))
	for i := 0; i < 200; i++ {
		if ua := p.NoJS(); strings.HasPrefix(ua, "Mozilla/") {
			t.Fatalf("NoJS returned desktop agent %q", ua)
		}
	}
}

func TestAnyCoversBothLists(t *testing.T) {
	p := New(rand.New(rand.NewPCG(7, 7)))
	var sawText, sawDesktop bool
	for i := 0; i < 500; i++ {
		if strings.HasPrefix(p.Any(), "Mozilla/") {
			sawDesktop = true
		} else {
			sawText = true
		}
	}
	if !sawText || !sawDesktop {
		t.Errorf("expected both kinds, text=%v desktop=%v", sawText, sawDesktop)
	}
}

func TestDefault(t *testing.T) {
	if Default().NoJS() == "" {
		t.Error("expected a user agent")
	}
}
