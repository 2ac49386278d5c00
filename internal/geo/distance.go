// Package geo annotates comparables with their distance from the
// report's subject property.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"compscope/server/internal/models"
)

const metersPerMile = 1609.344

// DistanceMiles is the haversine distance in miles between two
// lat/lon pairs.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	meters := orbgeo.DistanceHaversine(orb.Point{lon1, lat1}, orb.Point{lon2, lat2})
	return meters / metersPerMile
}

// AnnotateDistances fills DistanceMiles on every comparable that has
// coordinates, rounded to hundredths. The subject's own coordinates
// missing means nothing gets annotated; records stay untouched
// otherwise. Only the annotation field is written; a record's feed
// fields are never modified.
func AnnotateDistances(subject *models.PropertyRecord, comps []*models.PropertyRecord) {
	if subject == nil || subject.Latitude == nil || subject.Longitude == nil {
		return
	}
	AnnotateDistancesFrom(*subject.Latitude, *subject.Longitude, comps)
}

// AnnotateDistancesFrom annotates against an explicit subject location.
func AnnotateDistancesFrom(lat, lon float64, comps []*models.PropertyRecord) {
	for _, rec := range comps {
		if rec == nil || rec.Latitude == nil || rec.Longitude == nil {
			continue
		}
		miles := math.Round(DistanceMiles(lat, lon, *rec.Latitude, *rec.Longitude)*100) / 100
		rec.DistanceMiles = &miles
	}
}
