package core

import (
	"errors"
	"testing"
)

func TestValidateKnowledgeItem(t *testing.T) {
	tests := []struct {
		name    string
		item    *KnowledgeItem
		wantErr error
	}{
		{
			name: "valid ask",
			item: &KnowledgeItem{
				Id:      1,
				OwnerId: 7,
				Text:    "looking for a climbing partner",
				IsAsk:   true,
			},
			wantErr: nil,
		},
		{
			name: "valid offer with empty vector",
			item: &KnowledgeItem{
				Id:      2,
				OwnerId: 7,
				Text:    "can teach rope technique",
				Vector:  nil,
			},
			wantErr: nil,
		},
		{
			name: "valid item with ID 0",
			item: &KnowledgeItem{
				Id:      0,
				OwnerId: 7,
				Text:    "statement awaiting sequence ID",
			},
			wantErr: nil,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidKnowledgeItem,
		},
		{
			name: "empty text",
			item: &KnowledgeItem{
				Id:      1,
				OwnerId: 7,
				Text:    "",
			},
			wantErr: ErrEmptyText,
		},
		{
			name: "missing owner",
			item: &KnowledgeItem{
				Id:   1,
				Text: "orphan statement",
			},
			wantErr: ErrMissingOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKnowledgeItem(tt.item)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateKnowledgeItem() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateKnowledgeItem() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateKnowledgeItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTopic(t *testing.T) {
	tests := []struct {
		name    string
		topic   *Topic
		wantErr error
	}{
		{
			name: "valid topic",
			topic: &Topic{
				Id:          1,
				Name:        "rock climbing",
				Description: "indoor and outdoor climbing, bouldering, rope work",
			},
			wantErr: nil,
		},
		{
			name: "valid topic with empty vector",
			topic: &Topic{
				Id:          1,
				Name:        "rock climbing",
				Description: "climbing in all its forms",
				Vector:      nil,
			},
			wantErr: nil,
		},
		{
			name: "valid topic with ID 0",
			topic: &Topic{
				Id:          0,
				Name:        "rock climbing",
				Description: "climbing in all its forms",
			},
			wantErr: nil,
		},
		{
			name:    "nil topic",
			topic:   nil,
			wantErr: ErrInvalidTopic,
		},
		{
			name: "empty name",
			topic: &Topic{
				Id:          1,
				Name:        "",
				Description: "something",
			},
			wantErr: ErrEmptyTopicName,
		},
		{
			name: "empty description",
			topic: &Topic{
				Id:          1,
				Name:        "rock climbing",
				Description: "",
			},
			wantErr: ErrEmptyTopicDescription,
		},
		{
			name: "empty name and description",
			topic: &Topic{
				Id:          1,
				Name:        "",
				Description: "",
			},
			wantErr: ErrEmptyTopicName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTopic(tt.topic)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTopic() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateTopic() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTopic() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
		wantErr error
	}{
		{
			name: "valid profile",
			profile: &Profile{
				Id:          1,
				Name:        "Alex",
				Description: "software engineer who climbs",
			},
			wantErr: nil,
		},
		{
			name: "valid profile with empty description",
			profile: &Profile{
				Id:   1,
				Name: "Alex",
			},
			wantErr: nil,
		},
		{
			name:    "nil profile",
			profile: nil,
			wantErr: ErrInvalidProfile,
		},
		{
			name: "empty name",
			profile: &Profile{
				Id:          1,
				Name:        "",
				Description: "anonymous",
			},
			wantErr: ErrEmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile(tt.profile)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateProfile() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateProfile() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProfile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWeight(t *testing.T) {
	tests := []struct {
		name    string
		weight  float64
		wantErr bool
	}{
		{
			name:    "primary profile weight",
			weight:  3,
			wantErr: false,
		},
		{
			name:    "portfolio weight",
			weight:  0.1,
			wantErr: false,
		},
		{
			name:    "zero weight",
			weight:  0,
			wantErr: true,
		},
		{
			name:    "negative weight",
			weight:  -1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeight(tt.weight)

			if tt.wantErr && err == nil {
				t.Error("ValidateWeight() error = nil, want error")
			}

			if !tt.wantErr && err != nil {
				t.Errorf("ValidateWeight() error = %v, want nil", err)
			}

			if err != nil && !errors.Is(err, ErrInvalidWeight) {
				t.Errorf("ValidateWeight() error = %v, want %v", err, ErrInvalidWeight)
			}
		})
	}
}
