package models

// DistributionRow is one group of an aggregation over active students.
type DistributionRow struct {
	Label      string  `db:"label"`
	Count      int     `db:"count"`
	Percentage float64 `db:"percentage"`
}

// DistributionFilter narrows the population being counted.
type DistributionFilter struct {
	Search string
	Campus string
}
