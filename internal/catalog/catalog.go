// Package catalog holds the static list of treatments the clinic offers.
// The list drives the selectable service cards and is the only authority on
// which service names may appear on an appointment.
package catalog

import "github.com/ellucho77/HerbaBeauty/internal/model"

// services is fixed at build time; the business adds treatments rarely
// enough that a code change is acceptable.
var services = []model.Service{
	{Name: "Depilación láser", Image: "img/images.jpg"},
	{Name: "Limpieza facial profunda, Dermaplaning", Image: "img/limpieza-facial-profunda.jpg"},
	{Name: "Tratamiento con dermapen", Image: "img/Tratamiento con dermapen.jpg"},
	{Name: "Plasma pen", Image: "img/Plasma pen.jpg"},
	{Name: "Criolipólisis", Image: "img/criolipolisis.jpg"},
	{Name: "Mesoterapia capilar", Image: "img/Mesoterapia capilar.jpg"},
	{Name: "Plasma rico en plaquetas (Rostro, cuello, escote, manos)", Image: "img/Plasma rico en plaquetas(Rostro,cuello,escote,manos).jpg"},
}

// Services returns a copy of the catalog so callers cannot mutate it.
func Services() []model.Service {
	out := make([]model.Service, len(services))
	copy(out, services)
	return out
}

// Lookup returns the catalog entry with the given name, if any. Matching is
// exact: the selection UI sends names verbatim from Services().
func Lookup(name string) (model.Service, bool) {
	for _, s := range services {
		if s.Name == name {
			return s, true
		}
	}
	return model.Service{}, false
}
