// Package workers runs the asynchronous media collaborators the layout core
// stays free of: thumbnail generation for freshly uploaded files. The core
// itself is single-threaded and event-driven; everything here happens
// outside it and reports back through a completion callback.
package workers

import (
	"log"
	"os"
	"sync"

	"github.com/camden-git/albumlayout/media"
)

type ThumbnailJob struct {
	// OriginalPath is the absolute path of the uploaded file.
	OriginalPath string
	// MediaItemID identifies the tray item the thumbnail belongs to.
	MediaItemID string
}

// ThumbnailResult is delivered to the OnDone callback when a job finishes.
type ThumbnailResult struct {
	MediaItemID   string
	ThumbnailPath string
	Err           error
}

type ThumbnailGenerator struct {
	JobQueue     chan ThumbnailJob
	ThumbnailDir string
	MaxSize      int
	OnDone       func(ThumbnailResult)
	Wg           sync.WaitGroup
	StopChan     chan struct{}
	Pending      map[string]bool
	Mutex        sync.Mutex
}

func NewThumbnailGenerator(thumbnailDir string, maxSize, queueSize, numWorkers int, onDone func(ThumbnailResult)) *ThumbnailGenerator {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	gen := &ThumbnailGenerator{
		JobQueue:     make(chan ThumbnailJob, queueSize),
		ThumbnailDir: thumbnailDir,
		MaxSize:      maxSize,
		OnDone:       onDone,
		StopChan:     make(chan struct{}),
		Pending:      make(map[string]bool),
	}

	gen.Wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go gen.worker(i)
	}
	log.Printf("started %d thumbnail worker(s) with queue size %d", numWorkers, queueSize)

	return gen
}

// Enqueue submits a job unless one is already pending for the same item.
// returns false when the queue is full rather than blocking the caller
func (tg *ThumbnailGenerator) Enqueue(job ThumbnailJob) bool {
	tg.Mutex.Lock()
	if tg.Pending[job.MediaItemID] {
		tg.Mutex.Unlock()
		return true
	}
	tg.Pending[job.MediaItemID] = true
	tg.Mutex.Unlock()

	select {
	case tg.JobQueue <- job:
		return true
	default:
		tg.Mutex.Lock()
		delete(tg.Pending, job.MediaItemID)
		tg.Mutex.Unlock()
		log.Printf("thumbnail queue full, dropping job for %s", job.MediaItemID)
		return false
	}
}

func (tg *ThumbnailGenerator) worker(id int) {
	defer tg.Wg.Done()
	log.Printf("thumbnail worker %d started", id)
	for {
		select {
		case job, ok := <-tg.JobQueue:
			if !ok {
				log.Printf("thumbnail worker %d stopping: Job queue closed", id)
				return
			}
			tg.processJob(job)
			tg.Mutex.Lock()
			delete(tg.Pending, job.MediaItemID)
			tg.Mutex.Unlock()

		case <-tg.StopChan:
			log.Printf("thumbnail worker %d stopping: stop signal received", id)
			return
		}
	}
}

func (tg *ThumbnailGenerator) processJob(job ThumbnailJob) {
	if _, err := os.Stat(job.OriginalPath); os.IsNotExist(err) {
		log.Printf("original file %s not found, skipping thumbnail generation", job.OriginalPath)
		tg.report(ThumbnailResult{MediaItemID: job.MediaItemID, Err: err})
		return
	}

	thumbPath, err := media.GenerateThumbnail(job.OriginalPath, tg.ThumbnailDir, tg.MaxSize, tg.MaxSize)
	if err != nil {
		log.Printf("failed to generate thumbnail for %s: %v", job.OriginalPath, err)
	}
	tg.report(ThumbnailResult{MediaItemID: job.MediaItemID, ThumbnailPath: thumbPath, Err: err})
}

func (tg *ThumbnailGenerator) report(res ThumbnailResult) {
	if tg.OnDone != nil {
		tg.OnDone(res)
	}
}

// Stop signals every worker and waits for them to drain.
func (tg *ThumbnailGenerator) Stop() {
	close(tg.StopChan)
	tg.Wg.Wait()
}
