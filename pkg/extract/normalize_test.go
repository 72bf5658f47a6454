package extract

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOk bool
	}{
		{
			name:   "at prefix and trailing dot stripped",
			raw:    "@Example_User.",
			want:   "example_user",
			wantOk: true,
		},
		{
			name:   "lowercased",
			raw:    "AliceBob",
			want:   "alicebob",
			wantOk: true,
		},
		{
			name:   "dots and underscores inside kept",
			raw:    "alice.page_1",
			want:   "alice.page_1",
			wantOk: true,
		},
		{
			name:   "trailing underscores stripped",
			raw:    "bob__",
			want:   "bob",
			wantOk: true,
		},
		{
			name:   "pure digits rejected",
			raw:    "12345",
			wantOk: false,
		},
		{
			name:   "single char rejected",
			raw:    "a",
			wantOk: false,
		},
		{
			name:   "too long rejected",
			raw:    "abcdefghijabcdefghijabcdefghijx",
			wantOk: false,
		},
		{
			name:   "illegal char rejected",
			raw:    "ali ce",
			wantOk: false,
		},
		{
			name:   "empty rejected",
			raw:    "",
			wantOk: false,
		},
		{
			name:   "only punctuation rejected",
			raw:    "@._",
			wantOk: false,
		},
		{
			name:   "two chars accepted",
			raw:    "ab",
			want:   "ab",
			wantOk: true,
		},
		{
			name:   "digits with letter accepted",
			raw:    "1234a",
			want:   "1234a",
			wantOk: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			if ok != tt.wantOk {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.raw, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestUserSetOps(t *testing.T) {
	a := NewUserSet("alice", "bob", "carol")
	b := NewUserSet("bob", "carol", "dave")

	if got := a.Intersect(b).Sorted(); len(got) != 2 || got[0] != "bob" || got[1] != "carol" {
		t.Errorf("Intersect = %v, want [bob carol]", got)
	}
	if got := a.Subtract(b).Sorted(); len(got) != 1 || got[0] != "alice" {
		t.Errorf("Subtract = %v, want [alice]", got)
	}
	if got := b.Subtract(a).Sorted(); len(got) != 1 || got[0] != "dave" {
		t.Errorf("Subtract = %v, want [dave]", got)
	}

	merged := NewUserSet()
	merged.Merge(a)
	merged.Merge(b)
	if merged.Len() != 4 {
		t.Errorf("Merge Len = %d, want 4", merged.Len())
	}
	if !merged.Contains("dave") || merged.Contains("erin") {
		t.Error("Contains gave wrong membership after Merge")
	}
}
