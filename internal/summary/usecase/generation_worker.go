package usecase

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"knugget-backend/internal/summary/domain"
	"knugget-backend/internal/summary/repository"
	"knugget-backend/pkg/ai"
	"knugget-backend/pkg/sse"
)

// GenerationJob represents one queued AI summary generation
type GenerationJob struct {
	UserID      string
	SummaryID   string
	Title       string
	ChannelName string
	Transcript  string
}

// Indexer mirrors the Chroma client operations the worker needs. Optional;
// a nil indexer disables semantic indexing.
type Indexer interface {
	UpsertSummaryEmbedding(ctx context.Context, recordID, userID, kind, title, summaryText string) error
	DeleteEmbedding(ctx context.Context, recordID string) error
}

// GenerationWorker drives summaries through
// PENDING -> PROCESSING -> COMPLETED | FAILED in the background.
type GenerationWorker struct {
	summaryRepo repository.SummaryRepository
	aiService   ai.SummarizerService
	sseManager  *sse.Manager
	indexer     Indexer
	jobQueue    chan GenerationJob
	workerWg    sync.WaitGroup
	workerCount int
	started     bool
	mu          sync.Mutex
}

// NewGenerationWorker creates a new generation worker pool
func NewGenerationWorker(summaryRepo repository.SummaryRepository, sseManager *sse.Manager, workerCount int) *GenerationWorker {
	if workerCount <= 0 {
		workerCount = 3
	}
	return &GenerationWorker{
		summaryRepo: summaryRepo,
		sseManager:  sseManager,
		jobQueue:    make(chan GenerationJob, 500),
		workerCount: workerCount,
	}
}

// SetAIService sets the summarizer used for generation
func (w *GenerationWorker) SetAIService(svc ai.SummarizerService) {
	w.aiService = svc
}

// SetIndexer enables semantic-search indexing of completed summaries
func (w *GenerationWorker) SetIndexer(indexer Indexer) {
	w.indexer = indexer
}

// Start starts the workers
func (w *GenerationWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return
	}
	for i := 0; i < w.workerCount; i++ {
		w.workerWg.Add(1)
		go w.worker(i)
	}
	w.started = true
	log.Printf("[GenerationWorker] Started %d workers", w.workerCount)
}

// Stop stops all workers gracefully
func (w *GenerationWorker) Stop() {
	close(w.jobQueue)
	w.workerWg.Wait()
	log.Println("[GenerationWorker] All workers stopped")
}

// QueueJob adds a job to the queue (non-blocking)
func (w *GenerationWorker) QueueJob(job GenerationJob) bool {
	select {
	case w.jobQueue <- job:
		return true
	default:
		return false // Queue full
	}
}

// RemoveFromIndex drops a deleted summary from the semantic index,
// best-effort.
func (w *GenerationWorker) RemoveFromIndex(summaryID string) {
	if w.indexer == nil {
		return
	}
	if err := w.indexer.DeleteEmbedding(context.Background(), summaryID); err != nil {
		log.Printf("[GenerationWorker] Failed to de-index summary %s: %v", summaryID, err)
	}
}

func (w *GenerationWorker) worker(id int) {
	defer w.workerWg.Done()

	for job := range w.jobQueue {
		w.processJob(job)
	}

	log.Printf("[GenerationWorker] Worker %d stopped", id)
}

func (w *GenerationWorker) processJob(job GenerationJob) {
	if w.aiService == nil {
		return
	}

	// A re-queued job whose summary already completed is a no-op
	existing, err := w.summaryRepo.FindByID(job.UserID, job.SummaryID)
	if err != nil {
		log.Printf("[GenerationWorker] Lookup error for %s: %v", job.SummaryID, err)
		return
	}
	if existing == nil {
		// Deleted while queued
		return
	}
	if existing.Status == domain.StatusCompleted {
		w.sendUpdate(job.UserID, job.SummaryID, string(domain.StatusCompleted), existing.Summary)
		return
	}

	if _, err := w.summaryRepo.UpdateFields(job.UserID, job.SummaryID, map[string]interface{}{
		"status": domain.StatusProcessing,
	}); err != nil {
		log.Printf("[GenerationWorker] Status update error for %s: %v", job.SummaryID, err)
		return
	}

	ctx := context.Background()
	result, err := w.aiService.SummarizeVideo(ctx, job.Title, job.ChannelName, job.Transcript)
	if err != nil {
		log.Printf("[GenerationWorker] AI error for summary %s: %v", job.SummaryID, err)
		w.summaryRepo.UpdateFields(job.UserID, job.SummaryID, map[string]interface{}{
			"status":      domain.StatusFailed,
			"fail_reason": err.Error(),
		})
		w.sendUpdate(job.UserID, job.SummaryID, string(domain.StatusFailed), "")
		return
	}

	keyPoints, _ := json.Marshal(result.KeyPoints)
	tags, _ := json.Marshal(result.Tags)
	if _, err := w.summaryRepo.UpdateFields(job.UserID, job.SummaryID, map[string]interface{}{
		"status":      domain.StatusCompleted,
		"summary":     result.Summary,
		"key_points":  string(keyPoints),
		"tags":        string(tags),
		"fail_reason": "",
	}); err != nil {
		log.Printf("[GenerationWorker] Save error for %s: %v", job.SummaryID, err)
		return
	}

	w.sendUpdate(job.UserID, job.SummaryID, string(domain.StatusCompleted), result.Summary)

	if w.indexer != nil {
		if err := w.indexer.UpsertSummaryEmbedding(ctx, job.SummaryID, job.UserID, "video", job.Title, result.Summary); err != nil {
			log.Printf("[GenerationWorker] Failed to index summary %s: %v", job.SummaryID, err)
		}
	}

	log.Printf("[GenerationWorker] Generated summary %s", job.SummaryID)
}

func (w *GenerationWorker) sendUpdate(userID, summaryID, status, summaryText string) {
	if w.sseManager == nil {
		return
	}
	w.sseManager.SendToUser(userID, "summary_update", map[string]interface{}{
		"summary_id": summaryID,
		"status":     status,
		"summary":    summaryText,
	})
}
