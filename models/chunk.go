package models

import "time"

// ChunkMetadata identifies the origin of a chunk inside its source document.
type ChunkMetadata struct {
	Source     string `bson:"source" json:"source"`
	ChunkIndex int    `bson:"chunk_index" json:"chunk_index"`
}

// ChunkEntry is one persisted vector index entry. ChunkID is the identity key
// "{document_name}_{chunk_index}" and is unique within the index.
type ChunkEntry struct {
	ChunkID   string        `bson:"chunk_id" json:"chunk_id"`
	Text      string        `bson:"text" json:"text"`
	Vector    []float32     `bson:"vector" json:"vector"`
	Metadata  ChunkMetadata `bson:"metadata" json:"metadata"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// ScoredChunk is one retrieval candidate for a query; not persisted.
type ScoredChunk struct {
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
	Score    float64       `json:"score"`
}
