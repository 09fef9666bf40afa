package services

import (
	"log"
	"sync"
	"time"

	"tendertrack/internal/config"
)

// ReminderWorker runs the dispatcher on an interval for deployments that do
// not have an external cron hitting POST /reminders/send. Overlap between a
// worker tick and a cron call can double-send a reminder; the mutex only
// serializes ticks within this process.
type ReminderWorker struct {
	dispatcher *Dispatcher
	interval   time.Duration
	quit       chan struct{}
	mu         sync.Mutex
	running    bool
}

func NewReminderWorker(cfg *config.Config) *ReminderWorker {
	return &ReminderWorker{
		dispatcher: NewDispatcher(cfg),
		interval:   cfg.WorkerInterval,
		quit:       make(chan struct{}),
	}
}

func (w *ReminderWorker) Start() {
	log.Printf("Reminder worker started, dispatching every %v", w.interval)
	go w.run()
}

func (w *ReminderWorker) Stop() {
	close(w.quit)
}

func (w *ReminderWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.dispatch()
		case <-w.quit:
			log.Println("Reminder worker stopped")
			return
		}
	}
}

func (w *ReminderWorker) dispatch() {
	w.mu.Lock()
	if w.running {
		log.Println("Previous dispatch still running, skipping this tick")
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	result, err := w.dispatcher.SendPending()
	if err != nil {
		log.Printf("Error: Reminder dispatch failed: %v", err)
		return
	}
	if result.Sent > 0 || result.Failed > 0 {
		log.Printf("Dispatched reminders: %d sent, %d failed", result.Sent, result.Failed)
	}
}
