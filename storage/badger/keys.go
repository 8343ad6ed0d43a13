package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/kindred/core"
)

// Key prefixes for different data types
const (
	knowledgePrefix      = "knorec"
	knowledgeOwnerPrefix = "knorecown"
	knowledgeIDSeq       = "knorecseq"
	topicPrefix          = "toprec"
	topicNamePrefix      = "topnam"
	topicIDSeq           = "toprecseq"
	interestPrefix       = "intrec"
	interestTopicPrefix  = "intrectop"
	profilePrefix        = "prorec"
)

// makeKnowledgeKey generates a key for a knowledge item by ID.
func makeKnowledgeKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", knowledgePrefix, id))
}

// makeKnowledgeOwnerKey generates a composite key for the owner index.
// Format: prefix:ownerID:itemID
func makeKnowledgeOwnerKey(ownerID, itemID core.ID) []byte {
	prefix := knowledgeOwnerPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for ownerID + 8 bytes for itemID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(ownerID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(itemID))
	return buf
}

// makePartialKnowledgeOwnerKey generates a partial key for per-owner scans.
// Format: prefix:ownerID
func makePartialKnowledgeOwnerKey(ownerID core.ID) []byte {
	prefix := knowledgeOwnerPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for ownerID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(ownerID))
	return buf
}

// makeTopicKey generates a key for a topic by ID.
func makeTopicKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", topicPrefix, id))
}

// makeTopicNameKey generates a key for topic lookup by name.
// Format: prefix:name
func makeTopicNameKey(name string) []byte {
	prefix := topicNamePrefix + ":"
	totalSize := len(prefix) + len(name)
	buf := make([]byte, totalSize)
	offset := copy(buf, []byte(prefix))
	copy(buf[offset:], []byte(name))
	return buf
}

// makeInterestKey generates a composite key for an interest ledger row.
// Format: prefix:userID:topicID
func makeInterestKey(userID, topicID core.ID) []byte {
	prefix := interestPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for userID + 8 bytes for topicID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(userID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(topicID))
	return buf
}

// makePartialInterestKey generates a partial key for per-user ledger scans.
// Format: prefix:userID
func makePartialInterestKey(userID core.ID) []byte {
	prefix := interestPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for userID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(userID))
	return buf
}

// makeInterestTopicKey generates a composite key for the topic index on the
// interest ledger.
// Format: prefix:topicID:userID
func makeInterestTopicKey(topicID, userID core.ID) []byte {
	prefix := interestTopicPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for topicID + 8 bytes for userID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(topicID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(userID))
	return buf
}

// makePartialInterestTopicKey generates a partial key for per-topic scans.
// Format: prefix:topicID
func makePartialInterestTopicKey(topicID core.ID) []byte {
	prefix := interestTopicPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for topicID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(topicID))
	return buf
}

// makeProfileKey generates a key for a profile by ID.
func makeProfileKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", profilePrefix, id))
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(fmt.Sprintf("%s:chkpt", processorType))
}
