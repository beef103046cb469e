// internal/features/features.go
// Package features models the feature-importance table that accompanies the
// class comparison: each row carries a score, a share of the total
// contribution, and two qualitative levels rendered as colored badges.
package features

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownColumn is returned when sorting by a column the table does not have.
var ErrUnknownColumn = errors.New("unknown column")

// Badge is the color pair used to render a level.
type Badge struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// ImpactLevel grades how strongly a feature drives detection.
type ImpactLevel int

const (
	ImpactLow ImpactLevel = iota
	ImpactModerate
	ImpactHigh
)

var impactNames = []string{"Low", "Moderate", "High"}

func (l ImpactLevel) String() string {
	if l < 0 || int(l) >= len(impactNames) {
		return impactNames[0]
	}
	return impactNames[l]
}

// Badge returns the colors used for the level.
func (l ImpactLevel) Badge() Badge {
	switch l {
	case ImpactHigh:
		return Badge{Background: "#ff4d4f", Foreground: "#ffffff"}
	case ImpactModerate:
		return Badge{Background: "#faad14", Foreground: "#000000"}
	default:
		return Badge{Background: "#52c41a", Foreground: "#ffffff"}
	}
}

// ParseImpact maps a display string to an ImpactLevel.
func ParseImpact(s string) (ImpactLevel, error) {
	for i, name := range impactNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return ImpactLevel(i), nil
		}
	}
	return ImpactLow, fmt.Errorf("unknown impact level %q", s)
}

func (l ImpactLevel) MarshalJSON() ([]byte, error) { return json.Marshal(l.String()) }

func (l *ImpactLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseImpact(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Relevance grades how much a feature matters to the business.
type Relevance int

const (
	RelevanceLow Relevance = iota
	RelevanceModerate
	RelevanceHigh
	RelevanceVeryHigh
)

var relevanceNames = []string{"Low", "Moderate", "High", "Very High"}

func (r Relevance) String() string {
	if r < 0 || int(r) >= len(relevanceNames) {
		return relevanceNames[0]
	}
	return relevanceNames[r]
}

// Badge returns the colors used for the relevance.
func (r Relevance) Badge() Badge {
	switch r {
	case RelevanceVeryHigh:
		return Badge{Background: "#722ed1", Foreground: "#ffffff"}
	case RelevanceHigh:
		return Badge{Background: "#1890ff", Foreground: "#ffffff"}
	case RelevanceModerate:
		return Badge{Background: "#13c2c2", Foreground: "#000000"}
	default:
		return Badge{Background: "#d9d9d9", Foreground: "#000000"}
	}
}

// ParseRelevance maps a display string to a Relevance. "VeryHigh" and
// "very_high" are accepted alongside "Very High".
func ParseRelevance(s string) (Relevance, error) {
	norm := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.TrimSpace(s))
	for i, name := range relevanceNames {
		if strings.EqualFold(norm, strings.ReplaceAll(name, " ", "")) {
			return Relevance(i), nil
		}
	}
	return RelevanceLow, fmt.Errorf("unknown business relevance %q", s)
}

func (r Relevance) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

func (r *Relevance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseRelevance(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Row is one feature of the importance table.
type Row struct {
	Feature         string      `json:"feature"`
	ImportanceScore float64     `json:"importanceScore"`
	Contribution    float64     `json:"contribution"`
	Impact          ImpactLevel `json:"impact"`
	Relevance       Relevance   `json:"relevance"`
}

// Column names accepted by Table.Sort.
const (
	ColumnFeature      = "feature"
	ColumnImportance   = "importance"
	ColumnContribution = "contribution"
	ColumnImpact       = "impact"
	ColumnRelevance    = "relevance"
)

// Columns lists the sortable columns in display order.
func Columns() []string {
	return []string{ColumnFeature, ColumnImportance, ColumnContribution, ColumnImpact, ColumnRelevance}
}

// Table is an immutable list of rows; Sort and Filter return new tables.
type Table struct {
	rows []Row
}

// NewTable copies rows into a Table.
func NewTable(rows []Row) Table {
	cp := make([]Row, len(rows))
	copy(cp, rows)
	return Table{rows: cp}
}

// Rows returns a copy of the rows.
func (t Table) Rows() []Row {
	cp := make([]Row, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.rows) }

// Sort returns the table ordered by column. Ties keep their current order.
func (t Table) Sort(column string, descending bool) (Table, error) {
	less, err := lessFor(column)
	if err != nil {
		return Table{}, err
	}
	rows := t.Rows()
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
	return Table{rows: rows}, nil
}

// Filter keeps rows whose feature name or level labels contain query,
// ignoring case. An empty query keeps every row.
func (t Table) Filter(query string) Table {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return NewTable(t.rows)
	}
	var rows []Row
	for _, r := range t.rows {
		if strings.Contains(strings.ToLower(r.Feature), q) ||
			strings.Contains(strings.ToLower(r.Impact.String()), q) ||
			strings.Contains(strings.ToLower(r.Relevance.String()), q) {
			rows = append(rows, r)
		}
	}
	return Table{rows: rows}
}

func lessFor(column string) (func(a, b Row) bool, error) {
	switch strings.ToLower(strings.TrimSpace(column)) {
	case ColumnFeature, "":
		return func(a, b Row) bool { return strings.ToLower(a.Feature) < strings.ToLower(b.Feature) }, nil
	case ColumnImportance:
		return func(a, b Row) bool { return a.ImportanceScore < b.ImportanceScore }, nil
	case ColumnContribution:
		return func(a, b Row) bool { return a.Contribution < b.Contribution }, nil
	case ColumnImpact:
		return func(a, b Row) bool { return a.Impact < b.Impact }, nil
	case ColumnRelevance:
		return func(a, b Row) bool { return a.Relevance < b.Relevance }, nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownColumn, column, strings.Join(Columns(), ", "))
	}
}

// DefaultRows returns the built-in feature-importance table.
func DefaultRows() []Row {
	return []Row{
		{Feature: "Flow Duration", ImportanceScore: 0.182, Contribution: 18.2, Impact: ImpactHigh, Relevance: RelevanceVeryHigh},
		{Feature: "Failed Login Attempts", ImportanceScore: 0.164, Contribution: 16.4, Impact: ImpactHigh, Relevance: RelevanceVeryHigh},
		{Feature: "Packet Length Mean", ImportanceScore: 0.131, Contribution: 13.1, Impact: ImpactHigh, Relevance: RelevanceHigh},
		{Feature: "Destination Port", ImportanceScore: 0.118, Contribution: 11.8, Impact: ImpactModerate, Relevance: RelevanceHigh},
		{Feature: "Bytes per Second", ImportanceScore: 0.097, Contribution: 9.7, Impact: ImpactModerate, Relevance: RelevanceHigh},
		{Feature: "Session Count per IP", ImportanceScore: 0.089, Contribution: 8.9, Impact: ImpactModerate, Relevance: RelevanceModerate},
		{Feature: "Protocol Type", ImportanceScore: 0.074, Contribution: 7.4, Impact: ImpactModerate, Relevance: RelevanceModerate},
		{Feature: "Time of Day", ImportanceScore: 0.061, Contribution: 6.1, Impact: ImpactLow, Relevance: RelevanceModerate},
		{Feature: "User Agent Entropy", ImportanceScore: 0.049, Contribution: 4.9, Impact: ImpactLow, Relevance: RelevanceLow},
		{Feature: "Geo Distance", ImportanceScore: 0.035, Contribution: 3.5, Impact: ImpactLow, Relevance: RelevanceLow},
	}
}
