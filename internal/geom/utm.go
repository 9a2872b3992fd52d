package geom

import "math"

// WGS84 ellipsoid and UTM constants.
const (
	wgs84A     = 6378137.0
	wgs84F     = 1 / 298.257223563
	utmK0      = 0.9996
	utmFalseE  = 500000.0
	utmFalseNS = 10000000.0
)

var (
	wgs84E2  = wgs84F * (2 - wgs84F)
	wgs84Ep2 = wgs84E2 / (1 - wgs84E2)
)

func utmCentralMeridian(zone int) float64 {
	return float64(zone-1)*6 - 180 + 3
}

// lonLatToUTM projects degrees into a UTM zone (Snyder, USGS PP 1395).
func lonLatToUTM(lon, lat float64, zone int, north bool) (easting, northing float64) {
	e2, ep2 := wgs84E2, wgs84Ep2
	phi := lat * math.Pi / 180
	lam := (lon - utmCentralMeridian(zone)) * math.Pi / 180

	sin, cos, tan := math.Sin(phi), math.Cos(phi), math.Tan(phi)
	n := wgs84A / math.Sqrt(1-e2*sin*sin)
	t := tan * tan
	c := ep2 * cos * cos
	a := cos * lam
	m := wgs84A * ((1-e2/4-3*e2*e2/64-5*e2*e2*e2/256)*phi -
		(3*e2/8+3*e2*e2/32+45*e2*e2*e2/1024)*math.Sin(2*phi) +
		(15*e2*e2/256+45*e2*e2*e2/1024)*math.Sin(4*phi) -
		(35*e2*e2*e2/3072)*math.Sin(6*phi))

	a2, a3 := a*a, a*a*a
	easting = utmK0*n*(a+(1-t+c)*a3/6+(5-18*t+t*t+72*c-58*ep2)*a3*a2/120) + utmFalseE
	northing = utmK0 * (m + n*tan*(a2/2+(5-t+9*c+4*c*c)*a2*a2/24+(61-58*t+t*t+600*c-330*ep2)*a3*a3/720))
	if !north {
		northing += utmFalseNS
	}
	return easting, northing
}

// utmToLonLat is the inverse of lonLatToUTM.
func utmToLonLat(easting, northing float64, zone int, north bool) (lon, lat float64) {
	e2, ep2 := wgs84E2, wgs84Ep2
	x := easting - utmFalseE
	y := northing
	if !north {
		y -= utmFalseNS
	}

	m := y / utmK0
	mu := m / (wgs84A * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))
	sq := math.Sqrt(1 - e2)
	e1 := (1 - sq) / (1 + sq)
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sin, cos, tan := math.Sin(phi1), math.Cos(phi1), math.Tan(phi1)
	c1 := ep2 * cos * cos
	t1 := tan * tan
	n1 := wgs84A / math.Sqrt(1-e2*sin*sin)
	r1 := wgs84A * (1 - e2) / math.Pow(1-e2*sin*sin, 1.5)
	d := x / (n1 * utmK0)
	d2 := d * d

	phi := phi1 - (n1*tan/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d2*d2/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d2*d2*d2/720)
	lam := (d - (1+2*t1+c1)*d2*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d2*d2*d/120) / cos

	return utmCentralMeridian(zone) + lam*180/math.Pi, phi * 180 / math.Pi
}
