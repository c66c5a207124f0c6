package models

type PathRequest struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Algorithm string `json:"algorithm" binding:"required"`
}

type NearestRequest struct {
	Lat      *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lng      *float64 `form:"lng" binding:"required,min=-180,max=180"`
	Kind     string   `form:"kind"`
	RadiusKm float64  `form:"radiusKm" binding:"omitempty,gt=0,max=2000"`
}
