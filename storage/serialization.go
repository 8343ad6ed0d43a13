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


package storage

import (
	"github.com/poiesic/kindred/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalKnowledgeItem serializes a KnowledgeItem to bytes.
func MarshalKnowledgeItem(item *core.KnowledgeItem) []byte {
	buf := make([]byte, core.KnowledgeItemMUS.Size(*item))
	core.KnowledgeItemMUS.Marshal(*item, buf)
	return buf
}

// UnmarshalKnowledgeItem deserializes a KnowledgeItem from bytes.
func UnmarshalKnowledgeItem(data []byte) (*core.KnowledgeItem, error) {
	item, _, err := core.KnowledgeItemMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// MarshalTopic serializes a Topic to bytes.
func MarshalTopic(topic *core.Topic) []byte {
	buf := make([]byte, core.TopicMUS.Size(*topic))
	core.TopicMUS.Marshal(*topic, buf)
	return buf
}

// UnmarshalTopic deserializes a Topic from bytes.
func UnmarshalTopic(data []byte) (*core.Topic, error) {
	topic, _, err := core.TopicMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// MarshalUserInterest serializes a UserInterest to bytes.
func MarshalUserInterest(interest *core.UserInterest) []byte {
	buf := make([]byte, core.UserInterestMUS.Size(*interest))
	core.UserInterestMUS.Marshal(*interest, buf)
	return buf
}

// UnmarshalUserInterest deserializes a UserInterest from bytes.
func UnmarshalUserInterest(data []byte) (*core.UserInterest, error) {
	interest, _, err := core.UserInterestMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &interest, nil
}

// MarshalProfile serializes a Profile to bytes.
func MarshalProfile(profile *core.Profile) []byte {
	buf := make([]byte, core.ProfileMUS.Size(*profile))
	core.ProfileMUS.Marshal(*profile, buf)
	return buf
}

// UnmarshalProfile deserializes a Profile from bytes.
func UnmarshalProfile(data []byte) (*core.Profile, error) {
	profile, _, err := core.ProfileMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	buf := make([]byte, core.CheckpointMUS.Size(*checkpoint))
	core.CheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, _, err := core.CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &checkpoint, nil
}
