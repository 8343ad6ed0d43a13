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

import "errors"

// Domain validation errors
var (
	// ErrInvalidKnowledgeItem indicates a KnowledgeItem failed validation.
	ErrInvalidKnowledgeItem = errors.New("invalid knowledge item")

	// ErrInvalidTopic indicates a Topic failed validation.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidProfile indicates a Profile failed validation.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrEmptyText indicates the Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrMissingOwner indicates a persisted knowledge item has no owner.
	ErrMissingOwner = errors.New("owner required")

	// ErrEmptyTopicName indicates the topic Name field is empty.
	ErrEmptyTopicName = errors.New("topic name cannot be empty")

	// ErrEmptyTopicDescription indicates the topic Description field is empty.
	ErrEmptyTopicDescription = errors.New("topic description cannot be empty")

	// ErrInvalidWeight indicates an interest contribution weight is not positive.
	ErrInvalidWeight = errors.New("weight must be positive")
)
