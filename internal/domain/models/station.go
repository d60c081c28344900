package models

// Station identifies a DWD weather station.
//
// swagger:model Station
type Station struct {
	Name string `json:"name" example:"Osnabrück"`
	ID   string `json:"id" example:"01766"`
}
