package sim

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// RowsSpec is the row-count request shape for batch generation: either
// every dataset's own default, a single count applied uniformly, or a
// per-dataset mapping.
type RowsSpec struct {
	uniform    int
	perDataset map[string]int
}

// DefaultRows requests each generator's own default row count.
func DefaultRows() RowsSpec {
	return RowsSpec{}
}

// AllSame requests the same row count for every dataset.
func AllSame(count int) RowsSpec {
	return RowsSpec{uniform: count}
}

// PerDataset requests an explicit count per dataset name; datasets
// absent from the map fall back to their default.
func PerDataset(counts map[string]int) RowsSpec {
	return RowsSpec{perDataset: counts}
}

// forDataset resolves the requested count for one dataset. Zero means
// "use the generator default".
func (r RowsSpec) forDataset(name string) int {
	if r.perDataset != nil {
		return r.perDataset[name]
	}
	return r.uniform
}

// Service orchestrates dataset generation: it owns the roster, the
// random provider, and the storage root, and serializes every mutating
// operation behind one mutex so generate calls never interleave writes
// and a reset never races a write.
//
// The roster is loaded lazily on first use (cold→warm) and dropped by
// Reset (warm→cold); a dropped roster reloads transparently on the
// next generate.
type Service struct {
	mu         sync.Mutex
	provider   *Provider
	storage    *Storage
	rosterPath string // empty = embedded default roster
	roster     *Roster
	log        *logrus.Entry
}

// NewService constructs a Service from a validated Config.
func NewService(cfg *Config) (*Service, error) {
	return NewServiceWithClock(cfg, nil)
}

// NewServiceWithClock is NewService with an injectable clock, used by
// tests to pin interval timestamps.
func NewServiceWithClock(cfg *Config, clock Clock) (*Service, error) {
	storage, err := NewStorage(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	return &Service{
		provider:   NewProviderWithClock(cfg.Seed, clock),
		storage:    storage,
		rosterPath: cfg.RosterPath,
		log:        logrus.WithField("component", "service"),
	}, nil
}

// loadedRoster returns the cached roster, loading it on first use.
// Callers must hold s.mu.
func (s *Service) loadedRoster() (*Roster, error) {
	if s.roster != nil {
		return s.roster, nil
	}
	var (
		roster *Roster
		err    error
	)
	if s.rosterPath == "" {
		roster, err = DefaultRoster()
	} else {
		roster, err = LoadRosterFile(s.rosterPath)
	}
	if err != nil {
		return nil, err
	}
	s.roster = roster
	s.log.Debugf("roster loaded: %d employees", len(roster.Employees()))
	return roster, nil
}

// Generate builds one batch for the named dataset and persists it as a
// CSV file, returning the stored file's name and size. rows <= 0 uses
// the generator's default count. The whole sequence — resolve, build,
// name, write — runs under the service lock.
func (s *Service) Generate(dataset string, rows int) (FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateLocked(dataset, rows)
}

func (s *Service) generateLocked(dataset string, rows int) (FileInfo, error) {
	roster, err := s.loadedRoster()
	if err != nil {
		return FileInfo{}, err
	}
	gen, err := NewGenerator(dataset, s.provider, roster)
	if err != nil {
		return FileInfo{}, err
	}
	batch, err := Build(gen, rows)
	if err != nil {
		return FileInfo{}, err
	}
	name := Filename(gen.Name(), s.provider.Now())
	info, err := s.storage.WriteCSV(name, gen.Headers(), batch)
	if err != nil {
		return FileInfo{}, fmt.Errorf("generate %s: %w", dataset, err)
	}
	s.log.Infof("generated %s: %d rows, %d bytes", info.Name, len(batch), info.Size)
	return info, nil
}

// GenerateMany generates one file per dataset, in input order.
//
// Failure policy is fail-fast: the first unknown dataset (or write
// error) aborts the remaining batch, and files already written stay on
// disk. Each per-dataset step runs under the service lock.
func (s *Service) GenerateMany(datasets []string, rows RowsSpec) ([]FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []FileInfo
	for _, dataset := range datasets {
		info, err := s.generateLocked(dataset, rows.forDataset(dataset))
		if err != nil {
			return out, err
		}
		out = append(out, info)
	}
	return out, nil
}

// ListFiles returns name and byte size for every stored CSV, sorted by
// filename. Like Generate it warms the roster cache on first access, so
// a malformed roster surfaces here too. The directory scan itself runs
// outside the lock: files only appear via atomic rename and the listing
// skips entries deleted mid-scan, so it is safe against concurrent
// generate and reset calls.
func (s *Service) ListFiles() ([]FileInfo, error) {
	s.mu.Lock()
	_, err := s.loadedRoster()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.storage.List()
}

// ReadFile returns the raw bytes of one stored CSV, or ErrFileNotFound.
func (s *Service) ReadFile(name string) ([]byte, error) {
	return s.storage.Read(name)
}

// Reset deletes every stored CSV and drops the cached roster, returning
// the service to its cold state.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Reset(); err != nil {
		return err
	}
	s.roster = nil
	s.log.Info("storage reset, roster dropped")
	return nil
}
