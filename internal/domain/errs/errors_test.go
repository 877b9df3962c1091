package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassification(t *testing.T) {
	base := errors.New("boom")

	cases := []struct {
		name       string
		err        error
		validation bool
		upstream   bool
		cache      bool
	}{
		{name: "validation", err: NewValidation("data", "bad format"), validation: true},
		{name: "wrapped upstream", err: fmt.Errorf("ctx: %w", NewUpstream("query sales", base)), upstream: true},
		{name: "cache", err: NewCacheUnavailable("del", base), cache: true},
		{name: "plain", err: base},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if IsValidation(tc.err) != tc.validation || IsUpstream(tc.err) != tc.upstream || IsCacheUnavailable(tc.err) != tc.cache {
				t.Fatalf("unexpected classification for %v", tc.err)
			}
		})
	}
}

func TestUnwrapAndNil(t *testing.T) {
	base := errors.New("conn refused")
	if !errors.Is(NewUpstream("query", base), base) {
		t.Fatalf("upstream should unwrap to base")
	}
	if !errors.Is(NewCacheUnavailable("get", base), base) {
		t.Fatalf("cache error should unwrap to base")
	}
	if NewUpstream("x", nil) != nil || NewCacheUnavailable("x", nil) != nil {
		t.Fatalf("nil errors must stay nil")
	}
	if got := NewValidation("", "only reason").Error(); got != "only reason" {
		t.Fatalf("got %q", got)
	}
}
