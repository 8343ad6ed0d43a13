package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestKnowledgeItem_Synthetic(t *testing.T) {
	tests := []struct {
		name string
		item KnowledgeItem
		want bool
	}{
		{
			name: "stored item",
			item: KnowledgeItem{Id: 42, OwnerId: 1, Text: "offers Go mentoring"},
			want: false,
		},
		{
			name: "synthetic item",
			item: KnowledgeItem{Id: 0, OwnerId: 1, Text: "might want code review"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.item.Synthetic()
			if got != tt.want {
				t.Errorf("KnowledgeItem.Synthetic() = %v, want %v", got, tt.want)
			}
		})
	}
}
