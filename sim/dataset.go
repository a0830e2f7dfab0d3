package sim

import (
	"fmt"
)

// Dataset names one of the seven synthetic CSV record types.
type Dataset string

const (
	DatasetACQ                  Dataset = "ACQ"
	DatasetProductivity         Dataset = "Productivity"
	DatasetQCBS                 Dataset = "QCBS"
	DatasetRESC                 Dataset = "RESC"
	DatasetDials                Dataset = "Dials"
	DatasetIBCalls              Dataset = "IB_Calls"
	DatasetCampaignInteractions Dataset = "Campaign_Interactions"
)

// Datasets lists every dataset in canonical order.
var Datasets = []Dataset{
	DatasetACQ,
	DatasetProductivity,
	DatasetQCBS,
	DatasetRESC,
	DatasetDials,
	DatasetIBCalls,
	DatasetCampaignInteractions,
}

// RoleRules maps each dataset to the employee roles eligible to appear
// in its rows. Campaign_Interactions draws from the whole population;
// its inbound/outbound constraint lives in the row's own Initial
// Direction field instead.
var RoleRules = map[Dataset][]Role{
	DatasetACQ:                  {RoleInbound, RoleHybrid},
	DatasetProductivity:         {RoleInbound, RoleHybrid},
	DatasetQCBS:                 {RoleOutbound, RoleHybrid},
	DatasetRESC:                 {RoleInbound, RoleHybrid},
	DatasetDials:                {RoleOutbound, RoleHybrid},
	DatasetIBCalls:              {RoleInbound, RoleHybrid},
	DatasetCampaignInteractions: {RoleInbound, RoleOutbound, RoleHybrid},
}

// Row count policy shared by every generator.
const (
	MinRowCount     = 10
	MaxRowCount     = 1000
	DefaultRowCount = 50
)

// Row is one generated record, positionally aligned with the owning
// dataset's Headers.
type Row []string

// Generator synthesizes rows for one dataset.
type Generator interface {
	// Name returns the dataset this generator produces.
	Name() Dataset
	// Headers returns the ordered CSV header list.
	Headers() []string
	// RowCount resolves a requested count: requested <= 0 means the
	// default, anything else clamps to [MinRowCount, MaxRowCount].
	RowCount(requested int) int
	// GenerateRows synthesizes exactly count rows. All rows in one call
	// share a single 5-minute interval taken from the provider's clock.
	GenerateRows(count int) []Row
}

// Build composes RowCount and GenerateRows and checks the generator
// honored the computed count.
func Build(g Generator, requested int) ([]Row, error) {
	count := g.RowCount(requested)
	rows := g.GenerateRows(count)
	if len(rows) != count {
		return nil, fmt.Errorf("dataset %s: generated %d rows, want %d", g.Name(), len(rows), count)
	}
	return rows, nil
}

// clampRowCount implements the shared row-count policy.
func clampRowCount(requested int) int {
	if requested <= 0 {
		return DefaultRowCount
	}
	if requested < MinRowCount {
		return MinRowCount
	}
	if requested > MaxRowCount {
		return MaxRowCount
	}
	return requested
}

// UnknownDatasetError reports a generate request naming a dataset that
// does not exist. It maps to a client error at the HTTP boundary.
type UnknownDatasetError struct {
	Name string
}

func (e *UnknownDatasetError) Error() string {
	return fmt.Sprintf("unknown dataset %s", e.Name)
}

// generatorFactories maps dataset names to generator constructors.
var generatorFactories = map[Dataset]func(*Provider, *Roster) Generator{
	DatasetACQ:                  newACQGenerator,
	DatasetProductivity:         newProductivityGenerator,
	DatasetQCBS:                 newQCBSGenerator,
	DatasetRESC:                 newRESCGenerator,
	DatasetDials:                newDialsGenerator,
	DatasetIBCalls:              newIBCallsGenerator,
	DatasetCampaignInteractions: newCampaignInteractionsGenerator,
}

// NewGenerator resolves a dataset name to a generator bound to the
// given provider and roster. Unresolvable names return
// *UnknownDatasetError.
func NewGenerator(name string, p *Provider, roster *Roster) (Generator, error) {
	factory, ok := generatorFactories[Dataset(name)]
	if !ok {
		return nil, &UnknownDatasetError{Name: name}
	}
	return factory(p, roster), nil
}
