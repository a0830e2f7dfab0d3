package sim

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// Role classifies which call directions an employee works.
type Role string

const (
	RoleInbound  Role = "inbound"
	RoleOutbound Role = "outbound"
	RoleHybrid   Role = "hybrid"
)

// Roster population contract: 100 employees, partitioned 40/40/20.
const (
	RosterSize    = 100
	inboundCount  = 40
	outboundCount = 40
	hybridCount   = 20
)

// rosterHeader is the exact header the roster source must carry.
var rosterHeader = []string{"uuid", "name", "role"}

//go:embed roster.csv
var defaultRosterCSV []byte

// Employee is one member of the synthetic agent population.
// Immutable once loaded.
type Employee struct {
	ID   string
	Name string
	Role Role
}

// Roster is the fixed population of synthetic employees backing every
// generated record. Loading validates the full population contract up
// front so a service never starts against a malformed identity pool.
type Roster struct {
	employees []Employee
	byRole    map[Role][]Employee
}

// LoadRoster reads and validates a roster from CSV.
// The source must carry the header uuid,name,role, exactly 100 data
// rows, parseable unique UUIDs, and a 40/40/20 inbound/outbound/hybrid
// role split. Any violation is a configuration error.
func LoadRoster(r io.Reader) (*Roster, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("roster: read header: %w", err)
	}
	for i, want := range rosterHeader {
		if header[i] != want {
			return nil, fmt.Errorf("roster: header %v, want %v", header, rosterHeader)
		}
	}

	roster := &Roster{
		employees: make([]Employee, 0, RosterSize),
		byRole:    make(map[Role][]Employee, 3),
	}
	seen := make(map[string]bool, RosterSize)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster: read row %d: %w", len(roster.employees)+1, err)
		}
		id, name, role := rec[0], rec[1], Role(rec[2])
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("roster: row %d: invalid uuid %q: %w", len(roster.employees)+1, id, err)
		}
		if seen[id] {
			return nil, fmt.Errorf("roster: duplicate uuid %q", id)
		}
		seen[id] = true
		switch role {
		case RoleInbound, RoleOutbound, RoleHybrid:
		default:
			return nil, fmt.Errorf("roster: row %d: unknown role %q", len(roster.employees)+1, role)
		}
		emp := Employee{ID: id, Name: name, Role: role}
		roster.employees = append(roster.employees, emp)
		roster.byRole[role] = append(roster.byRole[role], emp)
	}

	if got := len(roster.employees); got != RosterSize {
		return nil, fmt.Errorf("roster: %d employees, want %d", got, RosterSize)
	}
	wantSplit := map[Role]int{
		RoleInbound:  inboundCount,
		RoleOutbound: outboundCount,
		RoleHybrid:   hybridCount,
	}
	for role, want := range wantSplit {
		if got := len(roster.byRole[role]); got != want {
			return nil, fmt.Errorf("roster: %d %s employees, want %d", got, role, want)
		}
	}
	return roster, nil
}

// LoadRosterFile loads a roster from a CSV file on disk.
func LoadRosterFile(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("roster: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadRoster(f)
}

// DefaultRoster loads the embedded 100-employee roster.
func DefaultRoster() (*Roster, error) {
	return LoadRoster(bytes.NewReader(defaultRosterCSV))
}

// Employees returns the full population in source order.
func (r *Roster) Employees() []Employee {
	return r.employees
}

// Roles returns the three role names.
func (r *Roster) Roles() []Role {
	return []Role{RoleInbound, RoleOutbound, RoleHybrid}
}

// ByRole returns the employees holding any of the given roles, in
// source order. With no roles it returns the full population.
func (r *Roster) ByRole(roles ...Role) []Employee {
	if len(roles) == 0 {
		return r.employees
	}
	var out []Employee
	for _, role := range roles {
		out = append(out, r.byRole[role]...)
	}
	return out
}

// Pick selects a uniform random employee from the population filtered
// to the given roles (all roles when none are given).
func (r *Roster) Pick(p *Provider, roles ...Role) Employee {
	pool := r.ByRole(roles...)
	return pool[p.Choice(len(pool))]
}
