package domain

import "time"

// Calculation is the complete result set for one project.
type Calculation struct {
	Input         ProjectInput
	FactorSet     string
	DeclaredUnits float64
	Origin        Coordinates
	Location      Location
	Distance      Distance
	Modules       LifecycleModules
	Total         float64
	Comparison    *Comparison
	CalculatedAt  time.Time
}
