package sim

import (
	"strconv"
	"time"
)

// intervalLayout renders interval bounds comma-free and sortable.
const intervalLayout = "2006-01-02 15:04:05"

// IntervalLength is the reporting bucket width every batch is stamped with.
const IntervalLength = 5 * time.Minute

// datasetBase carries the state shared by every generator variant: the
// dataset identity, its bound provider and roster, and the batch
// interval stamp. One call to GenerateRows uses one interval; the
// start is the provider's current minute (seconds zeroed) and the end
// is one reporting bucket later.
type datasetBase struct {
	name    Dataset
	headers []string
	p       *Provider
	roster  *Roster
}

func (b *datasetBase) Name() Dataset     { return b.name }
func (b *datasetBase) Headers() []string { return append([]string(nil), b.headers...) }

func (b *datasetBase) RowCount(requested int) int {
	return clampRowCount(requested)
}

// interval returns the shared Interval Start/End strings for one batch.
func (b *datasetBase) interval() (string, string) {
	start := b.p.Now().Truncate(time.Minute)
	end := start.Add(IntervalLength)
	return start.Format(intervalLayout), end.Format(intervalLayout)
}

// pick selects a random employee eligible for this dataset.
func (b *datasetBase) pick() Employee {
	return b.roster.Pick(b.p, RoleRules[b.name]...)
}

func itoa(n int) string { return strconv.Itoa(n) }

// === ACQ ===

type acqGenerator struct{ datasetBase }

func newACQGenerator(p *Provider, roster *Roster) Generator {
	return &acqGenerator{datasetBase{
		name:    DatasetACQ,
		headers: []string{"Interval Start", "Interval End", "Agent Id", "Agent Name", "Handle"},
		p:       p,
		roster:  roster,
	}}
}

func (g *acqGenerator) GenerateRows(count int) []Row {
	start, end := g.interval()
	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		emp := g.pick()
		rows = append(rows, Row{start, end, emp.ID, emp.Name, itoa(g.p.RandInt(0, 25))})
	}
	return rows
}

// === Productivity ===

type productivityGenerator struct{ datasetBase }

func newProductivityGenerator(p *Provider, roster *Roster) Generator {
	return &productivityGenerator{datasetBase{
		name: DatasetProductivity,
		headers: []string{
			"Interval Start", "Interval End", "Agent Id", "Agent Name",
			"Logged In", "On Queue", "Idle", "Off Queue", "Interacting",
		},
		p:      p,
		roster: roster,
	}}
}

func (g *productivityGenerator) GenerateRows(count int) []Row {
	start, end := g.interval()
	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		emp := g.pick()
		loggedIn := g.p.RandInt(200, 480)
		// Remaining-budget sampling: each bucket draws from whatever is
		// left of Logged In, so the four can never sum past it.
		// Independent draws would overflow the total.
		budget := loggedIn
		buckets := make([]int, 4)
		for j := range buckets {
			buckets[j] = g.p.RandInt(0, budget)
			budget -= buckets[j]
		}
		rows = append(rows, Row{
			start, end, emp.ID, emp.Name,
			itoa(loggedIn), itoa(buckets[0]), itoa(buckets[1]), itoa(buckets[2]), itoa(buckets[3]),
		})
	}
	return rows
}

// === QCBS ===

type qcbsGenerator struct{ datasetBase }

func newQCBSGenerator(p *Provider, roster *Roster) Generator {
	return &qcbsGenerator{datasetBase{
		name:    DatasetQCBS,
		headers: []string{"Interval Start", "Interval End", "Agent Id", "Agent Name", "Handle"},
		p:       p,
		roster:  roster,
	}}
}

func (g *qcbsGenerator) GenerateRows(count int) []Row {
	start, end := g.interval()
	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		emp := g.pick()
		rows = append(rows, Row{start, end, emp.ID, emp.Name, itoa(g.p.RandInt(0, 25))})
	}
	return rows
}

// === RESC ===

type rescGenerator struct{ datasetBase }

func newRESCGenerator(p *Provider, roster *Roster) Generator {
	return &rescGenerator{datasetBase{
		name:    DatasetRESC,
		headers: []string{"Interval Start", "Interval End", "Agent Id", "Agent Name", "Handle"},
		p:       p,
		roster:  roster,
	}}
}

func (g *rescGenerator) GenerateRows(count int) []Row {
	start, end := g.interval()
	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		emp := g.pick()
		rows = append(rows, Row{start, end, emp.ID, emp.Name, itoa(g.p.RandInt(0, 25))})
	}
	return rows
}

// === Dials ===

type dialsGenerator struct{ datasetBase }

func newDialsGenerator(p *Provider, roster *Roster) Generator {
	return &dialsGenerator{datasetBase{
		name: DatasetDials,
		headers: []string{
			"Interval Start", "Interval End", "Agent Id", "Agent Name",
			"Handle", "Avg Talk", "Avg Hold", "Avg ACW",
			"Total Handle", "Total Talk", "Total Hold", "Total ACW",
		},
		p:      p,
		roster: roster,
	}}
}

// intervalsPerBatch scales per-call averages up to 5-minute totals.
const intervalsPerBatch = 5

func (g *dialsGenerator) GenerateRows(count int) []Row {
	start, end := g.interval()
	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		emp := g.pick()
		handle := g.p.RandInt(0, 25)
		avgTalk := g.p.RandInt(0, handle)
		avgHold := g.p.RandInt(0, handle-avgTalk)
		avgACW := g.p.RandInt(0, 10)
		rows = append(rows, Row{
			start, end, emp.ID, emp.Name,
			itoa(handle), itoa(avgTalk), itoa(avgHold), itoa(avgACW),
			itoa(handle * intervalsPerBatch), itoa(avgTalk * intervalsPerBatch),
			itoa(avgHold * intervalsPerBatch), itoa(avgACW * intervalsPerBatch),
		})
	}
	return rows
}

// === IB_Calls ===

type ibCallsGenerator struct{ datasetBase }

func newIBCallsGenerator(p *Provider, roster *Roster) Generator {
	return &ibCallsGenerator{datasetBase{
		name: DatasetIBCalls,
		headers: []string{
			"Interval Start", "Interval End", "Agent Id", "Agent Name",
			"Handle", "Avg Handle",
		},
		p:      p,
		roster: roster,
	}}
}

func (g *ibCallsGenerator) GenerateRows(count int) []Row {
	start, end := g.interval()
	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		emp := g.pick()
		handle := g.p.RandInt(0, 25)
		rows = append(rows, Row{start, end, emp.ID, emp.Name, itoa(handle), itoa(handle)})
	}
	return rows
}

// === Campaign_Interactions ===

type campaignInteractionsGenerator struct{ datasetBase }

func newCampaignInteractionsGenerator(p *Provider, roster *Roster) Generator {
	return &campaignInteractionsGenerator{datasetBase{
		name: DatasetCampaignInteractions,
		headers: []string{
			"Interval Start", "Interval End", "Users - Interacted", "Initial Direction",
		},
		p:      p,
		roster: roster,
	}}
}

// directions are the values Initial Direction may take. Hybrid is a
// roster role, not a call direction, so it never appears here.
var directions = []string{string(RoleInbound), string(RoleOutbound)}

func (g *campaignInteractionsGenerator) GenerateRows(count int) []Row {
	start, end := g.interval()
	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		emp := g.pick()
		dir := directions[g.p.Choice(len(directions))]
		rows = append(rows, Row{start, end, emp.ID, dir})
	}
	return rows
}
