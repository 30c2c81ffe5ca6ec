package treasury

import (
	"errors"
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"vestd/internal/models"
	"vestd/internal/providers"
	"vestd/internal/services"
	"vestd/internal/structures"
	"vestd/internal/treasury/interfaces"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.ContractServiceInterface
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting state: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted contract state to file %s", s.config.Persistence.FilePath)
	})

	if s.config.Treasury.AutoBurn && s.config.Treasury.BurnCheckInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Treasury.BurnCheckInterval), func() {
			s.tryBurn()
		})
	}

	s.cron.Start()
}

// tryBurn attempts the monthly reserve burn. Outside the burn window and on an
// already-burned month the attempt is expected to fail; those are debug noise,
// not errors.
func (s *Scheduler) tryBurn() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	err := s.service.Burn()
	switch {
	case err == nil:
		s.metrics.IncBurns()
		s.logger.Infof(providers.TypeApp, "Scheduled reserve burn executed")
	case errors.Is(err, models.ErrTooLateToBurn),
		errors.Is(err, models.ErrAlreadyBurned),
		errors.Is(err, models.ErrNotMigrated),
		errors.Is(err, models.ErrNotInitialized):
		s.logger.Debugf(providers.TypeApp, "Scheduled burn skipped: %s", err)
	default:
		s.logger.Errorf(providers.TypeApp, "Scheduled burn failed: %s", err)
	}
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting contract state to file...")
	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting state: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.ContractServiceInterface, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
