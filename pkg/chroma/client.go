package chroma

import (
	"context"
	"fmt"
	"log"
	"os"

	"knugget-backend/pkg/config"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings/gemini"
)

// ChromaClient wraps a Chroma Cloud collection holding one document per saved
// summary (video and website alike), embedded with Gemini embeddings.
type ChromaClient struct {
	client     chroma.Client
	embedFunc  *gemini.GeminiEmbeddingFunction
	config     *config.Config
	collection chroma.Collection
}

func NewChromaClient(cfg *config.Config) (*ChromaClient, error) {
	if cfg.ChromaAPIKey == "" {
		return nil, fmt.Errorf("CHROMA_API_KEY is required")
	}

	// The embedding function reads the Gemini key from the environment
	if cfg.GeminiApiKey != "" {
		os.Setenv("GEMINI_API_KEY", cfg.GeminiApiKey)
	}

	embedFunc, err := gemini.NewGeminiEmbeddingFunction(
		gemini.WithEnvAPIKey(),
		gemini.WithDefaultModel("text-embedding-004"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini embedding function: %w", err)
	}

	var client chroma.Client
	if cfg.ChromaDatabase != "" && cfg.ChromaTenant != "" {
		client, err = chroma.NewHTTPClient(
			chroma.WithBaseURL(chroma.ChromaCloudEndpoint),
			chroma.WithCloudAPIKey(cfg.ChromaAPIKey),
			chroma.WithDatabaseAndTenant(cfg.ChromaDatabase, cfg.ChromaTenant),
		)
	} else if cfg.ChromaTenant != "" {
		client, err = chroma.NewHTTPClient(
			chroma.WithBaseURL(chroma.ChromaCloudEndpoint),
			chroma.WithCloudAPIKey(cfg.ChromaAPIKey),
			chroma.WithTenant(cfg.ChromaTenant),
		)
	} else {
		client, err = chroma.NewHTTPClient(
			chroma.WithBaseURL(chroma.ChromaCloudEndpoint),
			chroma.WithCloudAPIKey(cfg.ChromaAPIKey),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Chroma client: %w", err)
	}

	ctx := context.Background()
	collection, err := client.GetOrCreateCollection(
		ctx,
		"knugget-summaries",
		chroma.WithEmbeddingFunctionCreate(embedFunc),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("Initialized Chroma client with collection: knugget-summaries")

	return &ChromaClient{
		client:     client,
		embedFunc:  embedFunc,
		config:     cfg,
		collection: collection,
	}, nil
}

// UpsertSummaryEmbedding indexes (or re-indexes) a summary document. The
// record ID doubles as the document ID so repeated saves never duplicate.
// kind is "video" or "website".
func (c *ChromaClient) UpsertSummaryEmbedding(ctx context.Context, recordID, userID, kind, title, summaryText string) error {
	text := fmt.Sprintf("Title: %s\n\nSummary: %s", title, summaryText)
	if len(text) > 10000 {
		// Embedding models have token limits
		text = text[:10000]
	}

	metadata, err := chroma.NewDocumentMetadataFromMap(map[string]interface{}{
		"user_id": userID,
		"kind":    kind,
		"title":   title,
	})
	if err != nil {
		return fmt.Errorf("failed to create metadata: %w", err)
	}

	err = c.collection.Upsert(
		ctx,
		chroma.WithIDs(chroma.DocumentID(recordID)),
		chroma.WithMetadatas(metadata),
		chroma.WithTexts(text),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert summary embedding: %w", err)
	}
	return nil
}

// SearchResult is one semantic search hit. The record kind is recovered from
// Postgres when the IDs are resolved, not from the index.
type SearchResult struct {
	RecordID string
	Distance float64
}

// SemanticSearch queries the collection for the user's closest summaries.
func (c *ChromaClient) SemanticSearch(ctx context.Context, userID, query string, limit int) ([]SearchResult, error) {
	where := chroma.EqString("user_id", userID)

	results, err := c.collection.Query(
		ctx,
		chroma.WithQueryTexts(query),
		chroma.WithNResults(limit),
		chroma.WithWhereQuery(where),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	if results == nil || results.CountGroups() == 0 {
		return []SearchResult{}, nil
	}

	idGroups := results.GetIDGroups()
	distanceGroups := results.GetDistancesGroups()
	if len(idGroups) == 0 || len(idGroups[0]) == 0 {
		return []SearchResult{}, nil
	}

	hits := make([]SearchResult, 0, len(idGroups[0]))
	for i, id := range idGroups[0] {
		hit := SearchResult{RecordID: string(id)}
		if len(distanceGroups) > 0 && i < len(distanceGroups[0]) {
			hit.Distance = float64(distanceGroups[0][i])
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// DeleteEmbedding removes a summary document from the index.
func (c *ChromaClient) DeleteEmbedding(ctx context.Context, recordID string) error {
	err := c.collection.Delete(ctx, chroma.WithIDsDelete(chroma.DocumentID(recordID)))
	if err != nil {
		return fmt.Errorf("failed to delete summary embedding: %w", err)
	}
	return nil
}
