package jobqueue

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/vetdeskhq/vetdesk/app/repository"
	"github.com/vetdeskhq/vetdesk/internal/pkg/env"
)

// Manager manages the global job queue and background tasks
type Manager struct {
	queue      *Queue
	subs       repository.SubscriptionRepository
	syncTicker *time.Ticker
	stopCh     chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	running    bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// InitManager builds the global manager (singleton). Must be called once
// during bootstrap before GetManager.
func InitManager(processors *Processors, subs repository.SubscriptionRepository) *Manager {
	managerOnce.Do(func() {
		workers := workerCountFromEnv()
		globalManager = &Manager{
			queue:  NewQueue(workers, processors),
			subs:   subs,
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// GetManager returns the global job queue manager
func GetManager() *Manager {
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the job queue and background tasks
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[JobQueue Manager] Starting job queue and background tasks")

	// Start the job queue
	m.queue.Start()

	// Periodic provider reconcile sweep; webhook delivery can lag or drop,
	// so mirrored facts are refreshed on an interval as well.
	m.syncTicker = time.NewTicker(syncIntervalFromEnv())
	m.wg.Add(1)
	go m.subscriptionSyncWorker()

	log.Info("[JobQueue Manager] Started successfully")
}

// Stop stops the job queue and background tasks
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping job queue and background tasks...")

	if m.syncTicker != nil {
		m.syncTicker.Stop()
	}

	// Signal workers to stop
	close(m.stopCh)
	m.stopCh = nil
	m.running = false

	// Wait for background workers to finish
	m.wg.Wait()

	// Stop the job queue
	m.queue.Stop()

	log.Info("[JobQueue Manager] Stopped successfully")
}

// subscriptionSyncWorker runs periodically to enqueue sync jobs for every
// clinic with a billing customer at the provider.
func (m *Manager) subscriptionSyncWorker() {
	defer m.wg.Done()
	log.Info("[JobQueue Manager] Started subscription sync worker")

	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Subscription sync worker stopping")
			return
		case <-m.syncTicker.C:
			if err := m.enqueueSubscriptionSyncs(); err != nil {
				log.Errorf("[JobQueue Manager] Subscription sync sweep error: %v", err)
			}
		}
	}
}

func (m *Manager) enqueueSubscriptionSyncs() error {
	ids, err := m.subs.ListClinicIDsWithProviderCustomer()
	if err != nil {
		return err
	}

	for _, clinicID := range ids {
		payload := SyncSubscriptionJobPayload{ClinicID: clinicID}
		if _, err := m.queue.EnqueueJob(JobTypeSyncSubscription, payload.ToMap()); err != nil {
			log.Errorf("[JobQueue Manager] Failed to enqueue sync for clinic %d: %v", clinicID, err)
		}
	}

	log.Debugf("[JobQueue Manager] Enqueued %d subscription sync jobs", len(ids))
	return nil
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func workerCountFromEnv() int {
	workers, err := strconv.Atoi(env.GetEnv("JOB_QUEUE_WORKERS", "5"))
	if err != nil || workers <= 0 {
		return 5
	}
	return workers
}

func syncIntervalFromEnv() time.Duration {
	minutes, err := strconv.Atoi(env.GetEnv("SUBSCRIPTION_SYNC_INTERVAL_MINUTES", "60"))
	if err != nil || minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}
