package geom

import (
	"fmt"

	"github.com/paulmach/orb/geojson"
)

// Identified datasets contribute an "id" property to their feature.
type Identified interface {
	DatasetID() string
}

// ShowDatasets reprojects each dataset footprint to EPSG:4326 and collects
// them, in order, as GeoJSON features ready for display.
func ShowDatasets(dss []Dataset) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for i, ds := range dss {
		src := ds.Extent()
		ext, err := src.ToCRS(EPSG4326)
		if err != nil {
			return nil, fmt.Errorf("geom: dataset %d: %w", i, err)
		}
		f := geojson.NewFeature(ext.Geom)
		if id, ok := ds.(Identified); ok {
			f.Properties["id"] = id.DatasetID()
		}
		f.Properties["crs"] = src.CRS.String()
		fc.Append(f)
	}
	return fc, nil
}
