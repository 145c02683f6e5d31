package dto

import "time"

type CalculationRequest struct {
	WallAreaSqFt     float64  `json:"wall_area_sq_ft"`
	PostalCode       string   `json:"postal_code"`
	Compare          bool     `json:"compare"`
	EPDPerCubicMeter *float64 `json:"epd_kg_co2e_per_m3"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type LocationResponse struct {
	PointResponse
	Source string `json:"source"`
}

type DistanceResponse struct {
	Kilometers float64 `json:"km"`
	Source     string  `json:"source"`
}

// Module values are kg CO2e.
type ModulesResponse struct {
	A1 float64 `json:"a1_raw_materials"`
	A2 float64 `json:"a2_upstream_transport"`
	A4 float64 `json:"a4_site_transport"`
	A5 float64 `json:"a5_installation"`
	B1 float64 `json:"b1_use_phase"`
	C  float64 `json:"c1_c4_end_of_life"`
}

type ComparisonResponse struct {
	EPDPerCubicMeter float64 `json:"epd_kg_co2e_per_m3"`
	PerDU            float64 `json:"per_du_kg_co2e"`
	Total            float64 `json:"total_kg_co2e"`
	Delta            float64 `json:"delta_kg_co2e"`
}

type CalculationResponse struct {
	WallAreaSqFt  float64             `json:"wall_area_sq_ft"`
	PostalCode    string              `json:"postal_code"`
	FactorSet     string              `json:"factor_set"`
	DeclaredUnits float64             `json:"declared_units"`
	Origin        PointResponse       `json:"origin"`
	Location      LocationResponse    `json:"location"`
	Distance      DistanceResponse    `json:"distance"`
	Modules       ModulesResponse     `json:"modules"`
	Total         float64             `json:"total_kg_co2e"`
	Comparison    *ComparisonResponse `json:"comparison,omitempty"`
	CalculatedAt  time.Time           `json:"calculated_at"`
}
