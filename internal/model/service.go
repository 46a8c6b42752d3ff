package model

// Service is one entry of the static treatment catalog. The image path is
// relative to the host page's static assets and is passed through untouched.
//
// Fields:
//
//	Name  – display name, also the value stored on appointments.
//	Image – path of the card image shown in the catalog.
type Service struct {
	Name  string `json:"name"`  // catalog entry name
	Image string `json:"image"` // card image path
}
