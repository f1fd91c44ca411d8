package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"docrag-backend/models"
)

const chunkCollection = "chunks"

// MongoStore is the durable single-node vector index. Entries are addressed
// by the chunk identity key; similarity is ranked in-process by cosine over
// the candidate set, which keeps the store portable across plain MongoDB
// deployments without an Atlas vector index.
type MongoStore struct {
	col  *mongo.Collection
	dims int
}

// NewMongoStore opens the chunk collection. vectorDims pins the embedding
// dimensionality of the index; 0 disables the check.
func NewMongoStore(client *mongo.Client, dbName string, vectorDims int) *MongoStore {
	return &MongoStore{
		col:  client.Database(dbName).Collection(chunkCollection),
		dims: vectorDims,
	}
}

// Upsert inserts or replaces the entry at id. Mongo serializes writes to a
// single document, so concurrent upserts to the same id cannot corrupt an
// entry; last writer wins.
func (s *MongoStore) Upsert(ctx context.Context, id, text string, vector []float32, metadata models.ChunkMetadata) error {
	if s.dims > 0 && len(vector) != s.dims {
		return fmt.Errorf("chunk %s: vector has %d dimensions, index expects %d", id, len(vector), s.dims)
	}

	doc := bson.M{
		"chunk_id":   id,
		"text":       text,
		"vector":     vector,
		"metadata":   metadata,
		"updated_at": time.Now(),
	}
	_, err := s.col.UpdateOne(ctx,
		bson.M{"chunk_id": id},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert chunk %s: %w", id, err)
	}
	return nil
}

// Query returns up to k entries nearest to vector by cosine similarity,
// optionally restricted to one source document. Ties break on ascending
// chunk id so results are deterministic.
func (s *MongoStore) Query(ctx context.Context, vector []float32, k int, source string) ([]models.ScoredChunk, error) {
	filter := bson.M{}
	if source != "" {
		filter["metadata.source"] = source
	}

	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.ChunkEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode chunks: %w", err)
	}

	return rankEntries(entries, vector, k, source), nil
}

// rankEntries is the pure ranking step behind Query: drop entries whose
// metadata source differs from source (when set), score the rest by cosine
// similarity, order by descending score with ascending chunk id breaking
// ties, and cap at k.
func rankEntries(entries []models.ChunkEntry, vector []float32, k int, source string) []models.ScoredChunk {
	type scored struct {
		entry models.ChunkEntry
		score float64
	}
	candidates := make([]scored, 0, len(entries))
	for _, entry := range entries {
		if source != "" && entry.Metadata.Source != source {
			continue
		}
		candidates = append(candidates, scored{
			entry: entry,
			score: CosineSimilarity(vector, entry.Vector),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].entry.ChunkID < candidates[j].entry.ChunkID
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	results := make([]models.ScoredChunk, 0, k)
	for _, c := range candidates[:k] {
		results = append(results, models.ScoredChunk{
			Text:     c.entry.Text,
			Metadata: c.entry.Metadata,
			Score:    c.score,
		})
	}
	return results
}

// Stats reports the entry count and the number of distinct source documents.
func (s *MongoStore) Stats(ctx context.Context) (entries int64, sources int, err error) {
	entries, err = s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	distinct, err := s.col.Distinct(ctx, "metadata.source", bson.M{})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count sources: %w", err)
	}
	return entries, len(distinct), nil
}
