package model

// Catalog types mirror the reference data served by the placement backend.
// Only the fields the wizard screens need are modelled; anything else the
// backend sends is dropped during normalization.

type Company struct {
	CompanyID int    `json:"id"`
	Name      string `json:"name"`
}

type PlacementDrive struct {
	PlacementDriveID int    `json:"id"`
	Title            string `json:"title"`
}

type City struct {
	CityID int    `json:"id"`
	Name   string `json:"name"`
}

type Program struct {
	ProgramID    int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Degree       string `json:"degree"`
}
