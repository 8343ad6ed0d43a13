// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateKnowledgeItem validates a KnowledgeItem according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - OwnerId must be set
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding processor runs)
//   - TopicIds (can be empty; not every statement is tagged)
//   - ID (0 is valid: database sequences assign it, and synthetic items keep it)
func ValidateKnowledgeItem(item *KnowledgeItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidKnowledgeItem)
	}

	if item.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidKnowledgeItem, ErrEmptyText)
	}

	if item.OwnerId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidKnowledgeItem, ErrMissingOwner)
	}

	return nil
}

// ValidateTopic validates a Topic according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Description must not be empty
//
// NOT validated (populated by processors):
//   - Vector (can be empty until embedded)
//   - ID (0 is valid from database sequences)
func ValidateTopic(topic *Topic) error {
	if topic == nil {
		return fmt.Errorf("%w: topic is nil", ErrInvalidTopic)
	}

	if topic.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTopic, ErrEmptyTopicName)
	}

	if topic.Description == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTopic, ErrEmptyTopicDescription)
	}

	return nil
}

// ValidateProfile validates a Profile according to domain rules.
func ValidateProfile(profile *Profile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if profile.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptyText)
	}

	return nil
}

// ValidateWeight checks that an interest contribution weight is positive.
func ValidateWeight(weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidWeight, weight)
	}
	return nil
}
