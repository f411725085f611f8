package utils

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParsePageDefaultsAndClamp(t *testing.T) {
	page, limit := ParsePage("", "")
	if page != 1 || limit != 10 {
		t.Fatalf("defaults = %d/%d, want 1/10", page, limit)
	}

	page, limit = ParsePage("-3", "0")
	if page != 1 || limit != 10 {
		t.Fatalf("negative input = %d/%d, want 1/10", page, limit)
	}

	_, limit = ParsePage("1", "5000")
	if limit != MaxLimit {
		t.Fatalf("limit = %d, want %d", limit, MaxLimit)
	}
}

func TestNewPaginationLinks(t *testing.T) {
	p := NewPagination(2, 10, 35)

	if p.Pages != 4 {
		t.Fatalf("pages = %d, want 4", p.Pages)
	}
	if p.Next == nil || *p.Next != (PageRef{Page: 3, Limit: 10}) {
		t.Fatalf("next = %+v, want {3 10}", p.Next)
	}
	if p.Prev == nil || *p.Prev != (PageRef{Page: 1, Limit: 10}) {
		t.Fatalf("prev = %+v, want {1 10}", p.Prev)
	}
}

func TestPaginationWireShape(t *testing.T) {
	b, err := json.Marshal(NewPagination(2, 10, 50))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := string(b)
	for _, want := range []string{`"next":{"page":3,"limit":10}`, `"prev":{"page":1,"limit":10}`} {
		if !strings.Contains(got, want) {
			t.Fatalf("pagination %s missing %s", got, want)
		}
	}
}

func TestNewPaginationEdges(t *testing.T) {
	first := NewPagination(1, 10, 35)
	if first.Prev != nil {
		t.Fatalf("first page should have no prev")
	}

	last := NewPagination(4, 10, 35)
	if last.Next != nil {
		t.Fatalf("last page should have no next")
	}

	empty := NewPagination(1, 10, 0)
	if empty.Next != nil || empty.Prev != nil || empty.Pages != 0 {
		t.Fatalf("empty result should have no links: %+v", empty)
	}
}
