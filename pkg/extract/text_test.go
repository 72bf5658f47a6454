package extract

import (
	"reflect"
	"testing"
)

func TestTokenSet(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "prose keeps only mentions and dotted handles",
			text: "Hello @Bob, visit alice.page and 12345",
			want: []string{"alice.page", "bob"},
		},
		{
			name: "trailing sentence period is not a handle marker",
			text: "follow @carol today. done",
			want: []string{"carol"},
		},
		{
			name: "newline separated list",
			text: "alice\nbob\ncarol\n",
			want: []string{"alice", "bob", "carol"},
		},
		{
			name: "csv style list",
			text: "alice,bob,carol",
			want: []string{"alice", "bob", "carol"},
		},
		{
			name: "duplicates collapse",
			text: "@alice alice ALICE",
			want: []string{"alice"},
		},
		{
			name: "glued token yields both halves",
			text: "foo@bar",
			want: []string{"bar", "foo"},
		},
		{
			name: "pure numbers dropped",
			text: "123 456 789",
			want: []string{},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenSet(tt.text).Sorted()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenSet(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
